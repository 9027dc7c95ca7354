package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/truecase/config"
	"github.com/revelaction/truecase/eval"
	"github.com/revelaction/truecase/render"
)

// Option structs for subcommands that have flags
type PipelineOptions struct {
	Server     string
	Annotators string
	Language   string
	Timeout    time.Duration
	Store      string
}

type EvalOptions struct {
	PipelineOptions
	Files   []string
	Policy  eval.Policy
	Format  string
	Quiet   bool
	NoColor bool
}

type AnnotateOptions struct {
	PipelineOptions
	Output   string
	KeepCase bool
}

func storeFlag(cfg config.Config) cli.Flag {
	return &cli.StringFlag{Name: "store", Aliases: []string{"s"}, Value: cfg.Store, Usage: "directory or SQLite file caching annotations and runs"}
}

func pipelineFlags(cfg config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "server", Value: cfg.ServerURL, Usage: "CoreNLP server url, or \"mock\" for the offline annotator"},
		&cli.StringFlag{Name: "annotators", Aliases: []string{"a"}, Value: cfg.Annotators, Usage: "comma separated pipeline stages"},
		&cli.StringFlag{Name: "lang", Value: cfg.Language, Usage: "BCP 47 tag of the lowercasing rules"},
		&cli.DurationFlag{Name: "timeout", Value: cfg.Timeout, Usage: "timeout of one pipeline call (0 for none)"},
		storeFlag(cfg),
	}
}

func parsePipelineOptions(c *cli.Context) PipelineOptions {
	return PipelineOptions{
		Server:     c.String("server"),
		Annotators: c.String("annotators"),
		Language:   c.String("lang"),
		Timeout:    c.Duration("timeout"),
		Store:      c.String("store"),
	}
}

func parseEvalOptions(c *cli.Context, cfg config.Config) (EvalOptions, error) {
	opts := EvalOptions{
		PipelineOptions: parsePipelineOptions(c),
		Files:           c.Args().Slice(),
		Format:          c.String("format"),
		Quiet:           c.Bool("quiet"),
		NoColor:         c.Bool("no-color"),
	}

	if len(opts.Files) == 0 {
		opts.Files = []string{cfg.Input}
	}

	if c.Bool("truncate") {
		opts.Policy = eval.PolicyTruncate
	}

	if !isSupportedFormat(opts.Format) {
		return opts, fmt.Errorf("invalid format %q: allowed values are %s", opts.Format, strings.Join(render.SupportedFormats(), ", "))
	}

	return opts, nil
}

func parseAnnotateOptions(c *cli.Context) AnnotateOptions {
	return AnnotateOptions{
		PipelineOptions: parsePipelineOptions(c),
		Output:          c.String("output"),
		KeepCase:        c.Bool("keep-case"),
	}
}

func isSupportedFormat(f string) bool {
	for _, a := range render.SupportedFormats() {
		if a == f {
			return true
		}
	}
	return false
}
