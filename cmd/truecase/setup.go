package main

import (
	"errors"
	"io/fs"
	"os"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/truecase/annotate"
	"github.com/revelaction/truecase/annotate/corenlp"
	"github.com/revelaction/truecase/annotate/mock"
	"github.com/revelaction/truecase/logging"
	"github.com/revelaction/truecase/storage"
	"github.com/revelaction/truecase/storage/filesystem"
	"github.com/revelaction/truecase/storage/sqlite/zombiezen"
)

type Pool struct {
	p *sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p != nil {
		return p.p.Close()
	}
	return nil
}

// NewRepository opens the store at path: a directory is a filesystem
// store, anything else an SQLite file that is created when missing. An
// empty path means no store.
func NewRepository(p *Pool, path string) (storage.Repository, error) {
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err == nil && info.IsDir() {
		return filesystem.NewStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewStore(pool), nil
}

// NewAnnotator builds the annotator for the options, cached in repo when
// repo is not nil.
func NewAnnotator(opts PipelineOptions, repo storage.DocRepository) (annotate.Annotator, annotate.Config, error) {
	cfg := annotate.Config{
		Annotators: annotate.ParseAnnotators(opts.Annotators),
		Language:   opts.Language,
	}

	var (
		a   annotate.Annotator
		err error
	)

	if opts.Server == mock.URL {
		a, err = mock.New(cfg, nil)
	} else {
		a, err = corenlp.New(opts.Server, cfg, opts.Timeout, logging.WithComponent("corenlp"))
	}
	if err != nil {
		return nil, cfg, err
	}

	if repo != nil {
		a = annotate.NewCached(a, opts.Server, repo, cfg.Annotators, logging.WithComponent("cache"))
	}

	return a, cfg, nil
}
