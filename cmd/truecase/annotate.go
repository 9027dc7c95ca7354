package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/revelaction/truecase/annotate"
	"github.com/revelaction/truecase/file"
	"github.com/revelaction/truecase/render"
)

func annotateCommand(ctx context.Context, opts AnnotateOptions, path string, ui UI) error {
	var pool Pool
	defer pool.Close()

	repo, err := NewRepository(&pool, opts.Store)
	if err != nil {
		return err
	}

	ann, cfg, err := NewAnnotator(opts.PipelineOptions, repo)
	if err != nil {
		return err
	}

	text, err := file.ReadText(path)
	if err != nil {
		return err
	}

	if !opts.KeepCase {
		text = annotate.Lower(text, cfg.Language)
	}

	doc, err := ann.Annotate(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to annotate %s: %w", path, err)
	}
	doc.Title = filepath.Base(path)

	if err := render.NewTextRenderer(ui.Out).TrueCase(doc); err != nil {
		return err
	}

	if opts.Output == "" {
		return nil
	}

	if err := file.WriteDoc(opts.Output, doc); err != nil {
		return err
	}

	fmt.Fprintf(ui.Err, "Wrote %d sentences to %s\n", len(doc.Sentences), opts.Output)
	return nil
}
