package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/truecase/config"
	"github.com/revelaction/truecase/logging"
	"github.com/revelaction/truecase/render"
)

// set at build time with -ldflags
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		stop()
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "truecase: %v\n", err)
}

func run(ctx context.Context, args []string, ui UI) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app := newApp(cfg, ui)
	return app.RunContext(ctx, args)
}

func newApp(cfg config.Config, ui UI) *cli.App {
	return &cli.App{
		Name:                 "truecase",
		Usage:                "evaluate the truecasing of an NLP pipeline against the original text",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		HideVersion:          true,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: cfg.LogLevel, Usage: "log level (trace, debug, info, warn, error)"},
			&cli.StringFlag{Name: "log-format", Value: cfg.LogFormat, Usage: "log format (console, json)"},
		},
		Before: func(c *cli.Context) error {
			logging.Init(logging.Config{Level: c.String("log-level"), Format: c.String("log-format")}, ui.Err)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "eval",
				Usage:     "truecase the lowercased files and compare with the original tokens",
				ArgsUsage: "[file...]",
				Flags: append(pipelineFlags(cfg),
					&cli.BoolFlag{Name: "truncate", Usage: "compare the common prefix when the token counts differ instead of failing"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.DefaultFormat, Usage: "output format (text, json)"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "do not print the per token truecase lines"},
					&cli.BoolFlag{Name: "no-color", Value: cfg.NoColor, Usage: "do not colorize the output"},
				),
				Action: func(c *cli.Context) error {
					opts, err := parseEvalOptions(c, cfg)
					if err != nil {
						return err
					}
					return evalCommand(c.Context, opts, ui)
				},
			},
			{
				Name:      "annotate",
				Usage:     "run the pipeline on a file and print the truecase states",
				ArgsUsage: "<file>",
				Flags: append(pipelineFlags(cfg),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the annotated doc as JSON to this file"},
					&cli.BoolFlag{Name: "keep-case", Usage: "annotate the text as is instead of lowercasing it"},
				),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("annotate command needs exactly one argument: <file>")
					}
					opts := parseAnnotateOptions(c)
					return annotateCommand(c.Context, opts, c.Args().First(), ui)
				},
			},
			{
				Name:      "stat",
				Usage:     "print the truecase state distribution of the lowercased files",
				ArgsUsage: "[file...]",
				Flags:     pipelineFlags(cfg),
				Action: func(c *cli.Context) error {
					opts := parsePipelineOptions(c)
					files := c.Args().Slice()
					if len(files) == 0 {
						files = []string{cfg.Input}
					}
					return statCommand(c.Context, opts, files, ui)
				},
			},
			{
				Name:  "runs",
				Usage: "list the evaluation runs recorded in the store",
				Flags: []cli.Flag{
					storeFlag(cfg),
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "number of runs to show (0 for all)"},
				},
				Action: func(c *cli.Context) error {
					return runsCommand(c.String("store"), c.Int("limit"), ui)
				},
			},
			{
				Name:  "cache",
				Usage: "list the annotated docs cached in the store",
				Flags: []cli.Flag{storeFlag(cfg)},
				Action: func(c *cli.Context) error {
					return cacheCommand(c.String("store"), ui)
				},
			},
			{
				Name:  "repl",
				Usage: "truecase lines typed interactively",
				Flags: pipelineFlags(cfg),
				Action: func(c *cli.Context) error {
					return replCommand(c.Context, parsePipelineOptions(c), ui)
				},
			},
			{
				Name:  "bash",
				Usage: "print the bash completion script",
				Action: func(c *cli.Context) error {
					return bashCommand(ui)
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(ui)
				},
			},
		},
	}
}
