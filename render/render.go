package render

import (
	"fmt"
	"io"

	"github.com/gookit/color"

	"github.com/revelaction/truecase/eval"
	sent "github.com/revelaction/truecase/sentence"
)

const DefaultFormat = "text"

func SupportedFormats() []string {
	return []string{"text", "json"}
}

// Report is everything known about the evaluation of one input.
type Report struct {
	RunId      string   `json:"run_id"`
	Input      string   `json:"input"`
	Pipeline   string   `json:"pipeline"`
	Annotators []string `json:"annotators"`

	// Language detected in the input, empty if unknown
	Language string `json:"language,omitempty"`

	// TrueCased is the document annotated from the lowercased input
	TrueCased sent.Doc    `json:"-"`
	Result    eval.Result `json:"result"`
}

// Renderer writes a Report.
type Renderer interface {
	Render(r Report) error

	// Failure writes what is known of a report whose evaluation failed
	// with err.
	Failure(r Report, err error) error
}

// TextRenderer writes the line oriented console output.
type TextRenderer struct {
	W io.Writer

	HasColor bool

	// Quiet omits the per token truecase lines
	Quiet bool
}

var _ Renderer = (*TextRenderer)(nil)

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w}
}

func (r *TextRenderer) Render(rep Report) error {
	if !r.Quiet {
		if err := r.TrueCase(rep.TrueCased); err != nil {
			return err
		}
	}
	return r.Evaluation(rep.Result)
}

// Failure writes the truecase lines, which show where the token streams
// drift apart. The error itself is left to the caller.
func (r *TextRenderer) Failure(rep Report, err error) error {
	if r.Quiet {
		return nil
	}
	return r.TrueCase(rep.TrueCased)
}

// TrueCase writes one line per token with the token, its truecase state and
// the truecased text.
func (r *TextRenderer) TrueCase(doc sent.Doc) error {
	ew := &errWriter{w: r.W}
	ew.println("------ begin truecase output -----")
	for _, sentence := range doc.Sentences {
		for _, token := range sentence.Tokens {
			ew.printf("input:%s state:%s output:%s\n", token.Text, r.state(token.TrueCase), token.TrueCaseText)
		}
	}
	ew.println("------ end truecase output -----")
	return ew.err
}

// Evaluation writes the mismatches and the error rate.
func (r *TextRenderer) Evaluation(res eval.Result) error {
	ew := &errWriter{w: r.W}
	ew.println("------ begin evaluation output -----")

	for _, m := range res.Mismatches {
		line := fmt.Sprintf("Truecase mismatch: input:'%s' output:'%s' @ %d", m.Expected, m.Actual, m.Index)
		if r.HasColor {
			line = color.Red.Sprint(line)
		}
		ew.println(line)
	}

	if res.Truncated {
		ew.printf("Truecase length mismatch: %d original tokens, %d truecased tokens, compared first %d\n",
			res.ExpectedLen, res.ActualLen, res.Total)
	}

	rate := fmt.Sprintf("Error Rate: %v", res.ErrorRate)
	if r.HasColor {
		if res.ErrorRate == 0 {
			rate = color.Green.Sprint(rate)
		} else {
			rate = color.Yellow.Sprint(rate)
		}
	}
	ew.println(rate)

	ew.println("------ end evaluation output -----")
	return ew.err
}

func (r *TextRenderer) state(s string) string {
	if !r.HasColor {
		return s
	}

	switch s {
	case "UPPER":
		return color.Magenta.Sprint(s)
	case "INIT_UPPER":
		return color.Cyan.Sprint(s)
	case "LOWER":
		return color.Gray.Sprint(s)
	}
	return s
}

// errWriter keeps the first write error and skips the writes after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) println(s string) {
	ew.printf("%s\n", s)
}
