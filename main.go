package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/proofdeck/lemma/internal/commands"
	"github.com/proofdeck/lemma/internal/core/config"
	"github.com/proofdeck/lemma/internal/core/typeset"
	"github.com/proofdeck/lemma/internal/data/db"
	"github.com/proofdeck/lemma/internal/data/stores"
	"github.com/proofdeck/lemma/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		lemmaApp  = &commands.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}
	exploreCmd := commands.NewExploreCmd(flags, lemmaApp)

	app := &cli.Command{
		Name:      "lemma",
		Usage:     "Explore proofs interactively",
		UsageText: "lemma [global options] command [command options]",
		Description: `Lemma keeps a graph of proof-state snapshots connected by the moves
you made between them, so an exploration is never lost to a dead end.

Run 'lemma' with no arguments to open the most recent session.
Run 'lemma new' to create a session from a problem statement.`,
		Version: build(),
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LEMMA_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/lemma.log)",
				Sources:     cli.EnvVars("LEMMA_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LEMMA_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("LEMMA_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		}, exploreCmd.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns stdout and stderr.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "lemma.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			database, err = db.Open(cfg.DataDir, db.OpenOptions{
				BusyTimeout: cfg.Database.BusyTimeout,
			})
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			lemmaApp.Sessions = stores.NewSessionStore(database)
			lemmaApp.Engine = typeset.NewEngine(
				cfg.Render.FontSize,
				logutils.Component(logger, "typeset"),
			)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: exploreCmd.Run,
	}

	app = commands.NewNewCmd(flags, lemmaApp).Register(app)
	app = commands.NewSessionsCmd(flags, lemmaApp).Register(app)
	app = commands.NewRenderCmd(flags, lemmaApp).Register(app)
	app = commands.NewGuideCmd(flags).Register(app)

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
