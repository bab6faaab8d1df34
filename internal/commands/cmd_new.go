package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/core/statement"
)

type NewCmd struct {
	flags *Flags
	app   *App

	// Command-specific flags
	name    string
	problem string
	goal    string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags, app *App) *NewCmd {
	return &NewCmd{flags: flags, app: app}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a new exploration session",
		UsageText: "lemma new [options]",
		Description: `Creates a session with an initial proof state holding one goal.

The goal text mixes prose and formulas; wrap each formula in dollar
signs, e.g. "the sum $a + b$ equals $b + a$".

When --name is omitted, an interactive form prompts for input.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "unique session name",
				Destination: &cmd.name,
			},
			&cli.StringFlag{
				Name:        "problem",
				Aliases:     []string{"p"},
				Usage:       "one-line problem statement",
				Destination: &cmd.problem,
			},
			&cli.StringFlag{
				Name:        "goal",
				Aliases:     []string{"g"},
				Usage:       "initial goal text",
				Destination: &cmd.goal,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	// Show interactive form if name not provided via flag
	if cmd.name == "" {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if err := validateName(cmd.name); err != nil {
		return err
	}
	if cmd.problem == "" {
		cmd.problem = cmd.name
	}

	state := statement.ProofState{{
		Goals: []statement.LabelledStatement{{
			Label:     "goal",
			Statement: &statement.Atomic{Text: statement.AtomicText(cmd.goal)},
		}},
	}}

	graph := discovery.New()
	graph.Initialize(cmd.problem, state)

	sess, err := cmd.app.Sessions.Create(ctx, cmd.name, graph.Snapshot())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Created session %s (%s)\n", sess.Name, sess.ID)
	fmt.Fprintf(c.Root().Writer, "Open it with 'lemma --session %s'\n", sess.Name)
	return nil
}

func (cmd *NewCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session name").
				Description("Unique name to reopen this exploration later").
				Validate(validateName).
				Value(&cmd.name),
			huh.NewInput().
				Title("Problem").
				Description("One-line statement of what you are trying to show").
				Value(&cmd.problem),
			huh.NewText().
				Title("Goal").
				Description("Initial goal; wrap formulas in $...$").
				Value(&cmd.goal),
		),
	).Run()
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name cannot be empty")
	}
	if strings.ContainsAny(name, " \t\n") {
		return errors.New("name cannot contain whitespace")
	}
	return nil
}
