package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/proofdeck/lemma/internal/core/geometry"
	"github.com/proofdeck/lemma/pkg/iojson"
)

type RenderCmd struct {
	flags *Flags
	app   *App

	// flags
	output     string
	jsonOutput bool
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags, app *App) *RenderCmd {
	return &RenderCmd{flags: flags, app: app}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Typeset a formula to a PNG",
		UsageText: "lemma render [options] <formula>",
		Description: `Compiles a single formula and writes its artwork to a PNG file.

Use --json to also emit the sub-expression bounding boxes and the
viewport, the same geometry the interactive views hit-test against.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output PNG path",
				Value:       "formula.png",
				Destination: &cmd.output,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print sub-expression boxes as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// renderOutput is the JSON output format for lemma render --json.
type renderOutput struct {
	Formula        string                   `json:"formula"`
	Output         string                   `json:"output"`
	Viewport       geometry.Viewport        `json:"viewport"`
	Subexpressions []geometry.SubExpression `json:"subexpressions"`
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	formula := c.Args().First()
	if formula == "" {
		return errors.New("render requires a formula argument")
	}

	// Unlike the interactive views, block until the engine is usable.
	select {
	case <-cmd.app.Engine.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := cmd.app.Engine.Err(); err != nil {
		return fmt.Errorf("typesetting engine: %w", err)
	}

	res, err := cmd.app.Engine.Compile(formula)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cmd.output, res.Artwork, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cmd.output, err)
	}

	if cmd.jsonOutput {
		return iojson.Write(c.Root().Writer, renderOutput{
			Formula:        formula,
			Output:         cmd.output,
			Viewport:       res.Viewport,
			Subexpressions: res.Subexpressions,
		})
	}

	fmt.Fprintf(c.Root().Writer, "wrote %s (%d boxes)\n", cmd.output, len(res.Subexpressions))
	return nil
}
