package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/proofdeck/lemma/pkg/iojson"
)

type SessionsCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
	match      string
	dryRun     bool
}

// NewSessionsCmd creates a new sessions command
func NewSessionsCmd(flags *Flags, app *App) *SessionsCmd {
	return &SessionsCmd{flags: flags, app: app}
}

// Register adds the sessions command group to the application
func (cmd *SessionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "sessions",
		Usage: "Manage saved exploration sessions",
		Commands: []*cli.Command{
			cmd.lsCmd(),
			cmd.pruneCmd(),
		},
	})
	return app
}

func (cmd *SessionsCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List all sessions",
		UsageText: "lemma sessions ls [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runLs,
	}
}

func (cmd *SessionsCmd) runLs(ctx context.Context, c *cli.Command) error {
	sessions, err := cmd.app.Sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(sessions) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No sessions found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, s := range sessions {
			if err := iojson.WriteLine(out, s); err != nil {
				return fmt.Errorf("encode session: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATEMENT\tSOLVED\tUPDATED")
	for _, s := range sessions {
		solved := "no"
		if s.Solved {
			solved = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			s.Name, s.Statement, solved, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (cmd *SessionsCmd) pruneCmd() *cli.Command {
	return &cli.Command{
		Name:      "prune",
		Usage:     "Delete sessions whose name matches a glob",
		UsageText: "lemma sessions prune --match <glob> [--dry-run]",
		Description: `Deletes every session whose name matches the glob pattern, e.g.
'scratch-*'. Use --dry-run to preview without deleting.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "glob pattern matched against session names",
				Required:    true,
				Destination: &cmd.match,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "print what would be deleted without deleting",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.runPrune,
	}
}

func (cmd *SessionsCmd) runPrune(ctx context.Context, c *cli.Command) error {
	if !doublestar.ValidatePattern(cmd.match) {
		return fmt.Errorf("invalid glob pattern %q", cmd.match)
	}

	sessions, err := cmd.app.Sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	out := c.Root().Writer
	deleted := 0
	for _, s := range sessions {
		ok, err := doublestar.Match(cmd.match, s.Name)
		if err != nil {
			return fmt.Errorf("match %q: %w", cmd.match, err)
		}
		if !ok {
			continue
		}

		if cmd.dryRun {
			fmt.Fprintf(out, "would delete %s\n", s.Name)
			deleted++
			continue
		}
		if err := cmd.app.Sessions.Delete(ctx, s.ID); err != nil {
			return fmt.Errorf("delete session %q: %w", s.Name, err)
		}
		fmt.Fprintf(out, "deleted %s\n", s.Name)
		deleted++
	}

	if deleted == 0 {
		fmt.Fprintf(os.Stderr, "No sessions matched %q\n", cmd.match)
	}
	return nil
}
