package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/truecase/file"
	sent "github.com/revelaction/truecase/sentence"
	"github.com/revelaction/truecase/storage"
)

const runDir = "runs"

// Store keeps annotated docs as <key>.json files and runs as
// runs/<id>.json files below a root directory.
type Store struct {
	root string
}

var _ storage.Repository = (*Store)(nil)

// NewStore creates a filesystem store. The root directory must exist.
func NewStore(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{root: root}, nil
}

func (s *Store) docPath(key string) string {
	return filepath.Join(s.root, key+".json")
}

func (s *Store) Read(key string) (sent.Doc, error) {
	doc, err := file.ReadDoc(s.docPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return sent.Doc{}, fmt.Errorf("doc %s: %w", key, storage.ErrNotFound)
	}
	return doc, err
}

func (s *Store) Write(doc sent.Doc) error {
	if doc.Key == "" {
		return errors.New("doc has no key")
	}
	return file.WriteDoc(s.docPath(doc.Key), doc)
}

// List returns the docs sorted by key, without their sentences.
func (s *Store) List() ([]sent.Doc, error) {
	files, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	docs := []sent.Doc{}
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}

		doc, err := file.ReadDoc(filepath.Join(s.root, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}

		docs = append(docs, sent.Doc{
			Id:         len(docs),
			Key:        strings.TrimSuffix(f.Name(), ".json"),
			Title:      doc.Title,
			Annotators: doc.Annotators,
			Pipeline:   doc.Pipeline,
		})
	}

	return docs, nil
}

func (s *Store) WriteRun(run storage.Run) error {
	dir := filepath.Join(s.root, runDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, run.Id+".json"), data, 0644)
}

func (s *Store) Runs(limit int) ([]storage.Run, error) {
	files, err := os.ReadDir(filepath.Join(s.root, runDir))
	if errors.Is(err, fs.ErrNotExist) {
		return []storage.Run{}, nil
	}
	if err != nil {
		return nil, err
	}

	runs := []storage.Run{}
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.root, runDir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("IO error: %w", err)
		}

		var run storage.Run
		if err := json.Unmarshal(data, &run); err != nil {
			return nil, fmt.Errorf("JSON decoding error in %s: %w", f.Name(), err)
		}
		runs = append(runs, run)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	return runs, nil
}
