package main

import (
	"context"
	"fmt"

	"github.com/revelaction/truecase/annotate"
	"github.com/revelaction/truecase/file"
	"github.com/revelaction/truecase/render"
	"github.com/revelaction/truecase/stat"
)

func statCommand(ctx context.Context, opts PipelineOptions, files []string, ui UI) error {
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

	hdl := stat.NewHandler()
	for _, path := range files {
		text, err := file.ReadText(path)
		if err != nil {
			return err
		}

		doc, err := ann.Annotate(ctx, annotate.Lower(text, cfg.Language))
		if err != nil {
			return fmt.Errorf("failed to annotate %s: %w", path, err)
		}

		hdl.Aggregate(doc)
	}

	render.Stats(ui.Out, hdl.Get())
	return nil
}
