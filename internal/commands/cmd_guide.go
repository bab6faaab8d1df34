package commands

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

//go:embed guide.md
var guideMD string

type GuideCmd struct {
	flags *Flags
}

// NewGuideCmd creates a new guide command
func NewGuideCmd(flags *Flags) *GuideCmd {
	return &GuideCmd{flags: flags}
}

// Register adds the guide command to the application
func (cmd *GuideCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "guide",
		Usage:     "Show the usage guide",
		UsageText: "lemma guide",
		Action:    cmd.run,
	})
	return app
}

func (cmd *GuideCmd) run(_ context.Context, c *cli.Command) error {
	wrapWidth := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < wrapWidth {
		wrapWidth = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := r.Render(guideMD)
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}

	_, err = fmt.Fprint(c.Root().Writer, rendered)
	return err
}
