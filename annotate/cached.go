package annotate

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	sent "github.com/revelaction/truecase/sentence"
	"github.com/revelaction/truecase/storage"
)

// Cached serves annotations from a doc repository and only calls the
// wrapped annotator on a miss. Docs are keyed by pipeline so results of
// different servers never mix.
type Cached struct {
	next       Annotator
	pipeline   string
	repo       storage.DocRepository
	annotators []string
	log        zerolog.Logger
}

var _ Annotator = (*Cached)(nil)

// NewCached wraps next, the annotator of the pipeline identified by
// pipeline (its server url or offline name).
func NewCached(next Annotator, pipeline string, repo storage.DocRepository, annotators []string, log zerolog.Logger) *Cached {
	return &Cached{next: next, pipeline: pipeline, repo: repo, annotators: annotators, log: log}
}

func (c *Cached) Annotate(ctx context.Context, text string) (sent.Doc, error) {
	key := Key(c.pipeline, c.annotators, text)

	doc, err := c.repo.Read(key)
	if err == nil {
		c.log.Debug().Str("key", key[:12]).Msg("annotation cache hit")
		return doc, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return sent.Doc{}, err
	}

	doc, err = c.next.Annotate(ctx, text)
	if err != nil {
		return sent.Doc{}, err
	}

	doc.Key = key
	doc.Pipeline = c.pipeline
	doc.Text = text
	if doc.Title == "" {
		doc.Title = excerpt(text, 40)
	}
	doc.Annotators = c.annotators
	if err := c.repo.Write(doc); err != nil {
		return sent.Doc{}, err
	}

	c.log.Debug().Str("key", key[:12]).Msg("annotation cached")
	return doc, nil
}

// excerpt returns the first line of text cut to n runes.
func excerpt(text string, n int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	r := []rune(line)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return line
}
