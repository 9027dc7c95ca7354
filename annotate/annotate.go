// Package annotate drives an external NLP pipeline that tokenizes, splits,
// tags, lemmatizes and truecases text.
package annotate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	sent "github.com/revelaction/truecase/sentence"
)

// Annotator runs the configured pipeline over text and returns the
// annotated document.
type Annotator interface {
	Annotate(ctx context.Context, text string) (sent.Doc, error)
}

// DefaultAnnotators is the stage list needed for truecasing.
func DefaultAnnotators() []string {
	return []string{"tokenize", "ssplit", "pos", "lemma", "truecase"}
}

// requires lists for each known stage the stages that must run before it.
var requires = map[string][]string{
	"tokenize": nil,
	"cleanxml": {"tokenize"},
	"ssplit":   {"tokenize"},
	"pos":      {"tokenize", "ssplit"},
	"lemma":    {"tokenize", "ssplit", "pos"},
	"ner":      {"tokenize", "ssplit", "pos", "lemma"},
	"truecase": {"tokenize", "ssplit", "pos", "lemma"},
	"parse":    {"tokenize", "ssplit"},
	"depparse": {"tokenize", "ssplit", "pos"},
}

// Stages returns the known stage names in pipeline order.
func Stages() []string {
	return []string{"tokenize", "cleanxml", "ssplit", "pos", "lemma", "ner", "truecase", "parse", "depparse"}
}

type Config struct {
	Annotators []string `validate:"required,min=1,dive,oneof=tokenize cleanxml ssplit pos lemma ner truecase parse depparse"`

	// Language is the BCP 47 tag used to lowercase the input
	Language string `validate:"omitempty,bcp47_language_tag"`
}

func DefaultConfig() Config {
	return Config{Annotators: DefaultAnnotators(), Language: "und"}
}

var validate = validator.New()

// Validate checks that all stages are known and that every stage comes
// after the stages it depends on.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid annotator config: %w", err)
	}

	seen := map[string]bool{}
	for _, a := range c.Annotators {
		if seen[a] {
			return fmt.Errorf("annotator %q given twice", a)
		}
		for _, req := range requires[a] {
			if !seen[req] {
				return fmt.Errorf("annotator %q requires %q earlier in the pipeline", a, req)
			}
		}
		seen[a] = true
	}

	return nil
}

// Has reports whether the stage is part of the pipeline.
func (c Config) Has(stage string) bool {
	for _, a := range c.Annotators {
		if a == stage {
			return true
		}
	}
	return false
}

var ErrMissingStage = errors.New("missing pipeline stage")

// Require returns an error matching ErrMissingStage when stage is not part
// of the pipeline.
func (c Config) Require(stage string) error {
	if !c.Has(stage) {
		return fmt.Errorf("%w: %q is not in %q", ErrMissingStage, stage, c.String())
	}
	return nil
}

// String returns the comma separated stage list as the pipeline expects it.
func (c Config) String() string {
	return strings.Join(c.Annotators, ",")
}

// ParseAnnotators splits a comma separated stage list.
func ParseAnnotators(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Lower returns text lowercased with the rules of the language tag. An
// empty or unparsable tag falls back to language-neutral rules.
func Lower(text, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return cases.Lower(tag).String(text)
}

// DetectLanguage returns the ISO 639-1 code of the language of text, or ""
// when the detection is not reliable.
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}

// Key identifies the result of running the stages of the pipeline at
// server (a url, or the name of an offline annotator) over text.
func Key(server string, annotators []string, text string) string {
	h := sha256.New()
	h.Write([]byte(server))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(annotators, ",")))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
