package commands

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/core/selection"
	"github.com/proofdeck/lemma/internal/core/styles"
	"github.com/proofdeck/lemma/internal/data/stores"
	"github.com/proofdeck/lemma/internal/tui"
	"github.com/proofdeck/lemma/pkg/logutils"
)

type ExploreCmd struct {
	flags *Flags
	app   *App

	// flags
	session string
}

// NewExploreCmd creates a new explore command
func NewExploreCmd(flags *Flags, app *App) *ExploreCmd {
	return &ExploreCmd{flags: flags, app: app}
}

// Flags returns the explore-specific flags for registration on the root command
func (cmd *ExploreCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "session",
			Aliases:     []string{"s"},
			Usage:       "session name to open (defaults to the most recent)",
			Destination: &cmd.session,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *ExploreCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ExploreCmd) run(ctx context.Context, _ *cli.Command) error {
	sess, err := cmd.resolveSession(ctx)
	if err != nil {
		return err
	}

	graph := discovery.New()
	if err := graph.Restore(sess.Snapshot); err != nil {
		return fmt.Errorf("restore session %q: %w", sess.Name, err)
	}

	palette, _ := styles.GetPalette(cmd.flags.Config.TUI.Theme)

	model := tui.New(tui.Options{
		Theme:      styles.NewTheme(palette),
		Engine:     cmd.app.Engine,
		Graph:      graph,
		Selections: selection.NewManager(),
		Store:      cmd.app.Sessions,
		SessionID:  sess.ID,
		Mouse:      cmd.flags.Config.TUI.MouseEnabled,
		Log:        logutils.Component(log.Logger, "tui"),
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cmd.flags.Config.TUI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// resolveSession loads the named session, or the most recently updated one
// when no name is given.
func (cmd *ExploreCmd) resolveSession(ctx context.Context) (stores.Session, error) {
	if cmd.session != "" {
		sess, err := cmd.app.Sessions.GetByName(ctx, cmd.session)
		if errors.Is(err, stores.ErrNotFound) {
			return stores.Session{}, fmt.Errorf("no session named %q, run 'lemma new' to create one", cmd.session)
		}
		if err != nil {
			return stores.Session{}, fmt.Errorf("load session: %w", err)
		}
		return sess, nil
	}

	list, err := cmd.app.Sessions.List(ctx)
	if err != nil {
		return stores.Session{}, fmt.Errorf("list sessions: %w", err)
	}
	if len(list) == 0 {
		return stores.Session{}, errors.New("no sessions yet, run 'lemma new' to create one")
	}

	// List omits snapshots; reload the newest in full.
	return cmd.app.Sessions.Get(ctx, list[0].ID)
}
