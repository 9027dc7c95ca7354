package render

import (
	"encoding/json"
	"fmt"
	"io"

	sent "github.com/revelaction/truecase/sentence"
)

// JSONRenderer writes reports as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

type jsonReport struct {
	Report
	Tokens []sent.Token `json:"tokens"`
	Error  string       `json:"error,omitempty"`
}

// Render serializes the report and the truecased tokens as a single JSON
// object per line.
func (r *JSONRenderer) Render(rep Report) error {
	return r.encode(jsonReport{Report: rep, Tokens: tokens(rep)})
}

// Failure serializes the report with the error message.
func (r *JSONRenderer) Failure(rep Report, err error) error {
	return r.encode(jsonReport{Report: rep, Tokens: tokens(rep), Error: err.Error()})
}

func (r *JSONRenderer) encode(jr jsonReport) error {
	if err := json.NewEncoder(r.W).Encode(jr); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

func tokens(rep Report) []sent.Token {
	t := rep.TrueCased.Tokens()
	if t == nil {
		return []sent.Token{}
	}
	return t
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
