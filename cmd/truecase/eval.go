package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/rs/zerolog"

	"github.com/revelaction/truecase/annotate"
	"github.com/revelaction/truecase/eval"
	"github.com/revelaction/truecase/file"
	"github.com/revelaction/truecase/logging"
	"github.com/revelaction/truecase/render"
	sent "github.com/revelaction/truecase/sentence"
	"github.com/revelaction/truecase/storage"
)

func evalCommand(ctx context.Context, opts EvalOptions, ui UI) error {
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

	if err := cfg.Require("truecase"); err != nil {
		return err
	}

	var r render.Renderer
	switch opts.Format {
	case "json":
		r = render.NewJSONRenderer(ui.Out)
	default:
		tr := render.NewTextRenderer(ui.Out)
		tr.HasColor = !opts.NoColor
		tr.Quiet = opts.Quiet
		r = tr
	}

	// Start progress indicator for several inputs
	var bar *uiprogress.Bar
	if len(opts.Files) > 1 {
		progress := uiprogress.New()
		progress.SetOut(ui.Err)
		progress.Start()
		defer progress.Stop()

		bar = progress.AddBar(len(opts.Files))
		bar.AppendCompleted()
		bar.PrependElapsed()
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			if b.Current() >= len(opts.Files) {
				return ""
			}
			return filepath.Base(opts.Files[b.Current()])
		})
	}

	for _, path := range opts.Files {
		runId := uuid.NewString()
		log := logging.WithInput(path, runId)

		text, err := file.ReadText(path)
		if err != nil {
			return err
		}

		rep, err := evaluateText(ctx, ann, cfg, opts.Policy, text, log)
		rep.RunId = runId
		rep.Input = path
		rep.Pipeline = opts.Server
		if err != nil {
			if errors.Is(err, eval.ErrLengthMismatch) {
				if rerr := r.Failure(rep, err); rerr != nil {
					return rerr
				}
			}
			return fmt.Errorf("%s: %w", path, err)
		}

		if err := r.Render(rep); err != nil {
			return err
		}

		if repo != nil {
			if err := repo.WriteRun(newRun(rep, cfg)); err != nil {
				return fmt.Errorf("failed to store run: %w", err)
			}
			log.Debug().Msg("run stored")
		}

		if bar != nil {
			bar.Incr()
		}
	}

	return nil
}

// evaluateText annotates the lowercased text and the original text, one
// after the other, and compares the truecased tokens of the first with the
// tokens of the second.
func evaluateText(ctx context.Context, ann annotate.Annotator, cfg annotate.Config, policy eval.Policy, text string, log zerolog.Logger) (render.Report, error) {
	rep := render.Report{Annotators: cfg.Annotators}

	rep.Language = annotate.DetectLanguage(text)
	if rep.Language != "" && rep.Language != "en" {
		log.Warn().Str("lang", rep.Language).Msg("input does not look English, the truecase model may not apply")
	}

	start := time.Now()
	tc, err := ann.Annotate(ctx, annotate.Lower(text, cfg.Language))
	if err != nil {
		return rep, fmt.Errorf("failed to annotate lowercased text: %w", err)
	}
	log.Info().Int("sentences", len(tc.Sentences)).Dur("elapsed", time.Since(start)).Msg("lowercased text annotated")
	rep.TrueCased = tc

	start = time.Now()
	orig, err := ann.Annotate(ctx, text)
	if err != nil {
		return rep, fmt.Errorf("failed to annotate original text: %w", err)
	}
	log.Info().Int("sentences", len(orig.Sentences)).Dur("elapsed", time.Since(start)).Msg("original text annotated")

	res, err := eval.Evaluate(orig.Words(sent.FieldText), tc.Words(sent.FieldTrueCaseText), policy)
	if err != nil {
		return rep, err
	}
	rep.Result = res

	if res.Truncated {
		log.Warn().Int("original", res.ExpectedLen).Int("truecased", res.ActualLen).Msg("token counts differ, comparison truncated")
	}

	return rep, nil
}

func newRun(rep render.Report, cfg annotate.Config) storage.Run {
	return storage.Run{
		Id:         rep.RunId,
		Input:      rep.Input,
		Pipeline:   rep.Pipeline,
		Annotators: strings.Join(cfg.Annotators, ","),
		Total:      rep.Result.Total,
		Matches:    rep.Result.Matches,
		ErrorRate:  rep.Result.ErrorRate,
		Truncated:  rep.Result.Truncated,
		CreatedAt:  time.Now().UTC(),
	}
}
