package main

import (
	"errors"
	"fmt"

	"github.com/revelaction/truecase/render"
)

var errNoStore = errors.New("store must be specified via --store or TRUECASE_STORE")

func runsCommand(store string, limit int, ui UI) error {
	if store == "" {
		return errNoStore
	}

	var pool Pool
	defer pool.Close()

	repo, err := NewRepository(&pool, store)
	if err != nil {
		return err
	}

	runs, err := repo.Runs(limit)
	if err != nil {
		return err
	}

	render.Runs(ui.Out, runs)
	return nil
}

func cacheCommand(store string, ui UI) error {
	if store == "" {
		return errNoStore
	}

	var pool Pool
	defer pool.Close()

	repo, err := NewRepository(&pool, store)
	if err != nil {
		return err
	}

	docs, err := repo.List()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(ui.Out, "📖 %d %.12s %s %q %v\n", doc.Id, doc.Key, doc.Pipeline, doc.Title, doc.Annotators)
	}

	return nil
}
