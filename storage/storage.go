package storage

import (
	"errors"
	"time"

	sent "github.com/revelaction/truecase/sentence"
)

var ErrNotFound = errors.New("not found")

// DocReader defines read operations for annotated document storage
type DocReader interface {
	// Read returns the annotated document stored under key, or ErrNotFound
	Read(key string) (sent.Doc, error)

	// List returns the metadata (Id, Key, Title, Annotators) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Doc, error)
}

// DocWriter defines write operations for annotated document storage
type DocWriter interface {
	// Write persists a document and its sentences, replacing any document
	// with the same key
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Run is the summary of one evaluation.
type Run struct {
	Id         string    `json:"id"`
	Input      string    `json:"input"`
	Pipeline   string    `json:"pipeline"`
	Annotators string    `json:"annotators"`
	Total      int       `json:"total"`
	Matches    int       `json:"matches"`
	ErrorRate  float64   `json:"error_rate"`
	Truncated  bool      `json:"truncated"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunRepository stores evaluation runs
type RunRepository interface {
	WriteRun(run Run) error

	// Runs returns the most recent runs first. A limit <= 0 returns all.
	Runs(limit int) ([]Run, error)
}

// Repository is a store for both annotated docs and runs
type Repository interface {
	DocRepository
	RunRepository
}
