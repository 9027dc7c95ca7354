package main

import (
	"context"

	"github.com/revelaction/truecase/repl"
)

func replCommand(ctx context.Context, opts PipelineOptions, ui UI) error {
	var pool Pool
	defer pool.Close()

	repo, err := NewRepository(&pool, opts.Store)
	if err != nil {
		return err
	}

	ann, cfg, err := NewAnnotator(opts, repo)
	if err != nil {
		return err
	}

	if err := cfg.Require("truecase"); err != nil {
		return err
	}

	return repl.NewHandler(ann, cfg, ui.Out).Run(ctx)
}
