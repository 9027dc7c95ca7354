package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	sent "github.com/revelaction/truecase/sentence"
)

// DefaultInput is the text file evaluated when no file is given.
const DefaultInput = "sample-content.txt"

var ErrNotUTF8 = errors.New("input is not valid UTF-8")

// ReadText reads the whole file at path as UTF-8 text.
func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("IO error: %w", err)
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}

	return string(b), nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

// WriteDoc writes doc as indented JSON to path.
func WriteDoc(path string, doc sent.Doc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
