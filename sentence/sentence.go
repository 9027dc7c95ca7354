package sentence

import (
	"github.com/samber/lo"
)

// Doc is a text annotated by the pipeline.
type Doc struct {
	Id int `json:"id"`

	// Key identifies the (pipeline, annotators, text) triple the doc was
	// produced from.
	Key string `json:"key"`

	// Pipeline is the server url or offline annotator that produced the doc
	Pipeline string `json:"pipeline,omitempty"`

	Title string `json:"title"`

	// Text is the raw text given to the pipeline
	Text string `json:"text"`

	Annotators []string   `json:"annotators"`
	Sentences  []Sentence `json:"sentences"`
}

// Sentence is an ordered sequence of tokens produced by the sentence splitter.
type Sentence struct {
	Id     int     `json:"id"`
	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and truecase metadata.
type Token struct {
	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`

	// The unmodified word
	Text string `json:"text"`

	// The truecase state label decided by the model (UPPER, LOWER, INIT_UPPER, O)
	TrueCase string `json:"truecase"`

	// The word with the casing restored
	TrueCaseText string `json:"truecase_text"`

	// The lemma of the word
	Lemma string `json:"lemma"`
	Pos   string `json:"pos"`

	// character offsets of the token in the doc text
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Field selects which token text Words extracts.
type Field int

const (
	FieldText Field = iota
	FieldTrueCaseText
)

func (f Field) String() string {
	switch f {
	case FieldText:
		return "text"
	case FieldTrueCaseText:
		return "truecase_text"
	}
	return "unknown"
}

func (f Field) value(t Token) string {
	if f == FieldTrueCaseText {
		return t.TrueCaseText
	}
	return t.Text
}

// Words flattens the doc into the ordered list of the given token field,
// walking sentences in order and tokens in order within each sentence.
func (d Doc) Words(f Field) []string {
	words := lo.FlatMap(d.Sentences, func(s Sentence, _ int) []string {
		return lo.Map(s.Tokens, func(t Token, _ int) string {
			return f.value(t)
		})
	})

	if words == nil {
		return []string{}
	}
	return words
}

// Tokens returns all tokens of the doc in order.
func (d Doc) Tokens() []Token {
	return lo.FlatMap(d.Sentences, func(s Sentence, _ int) []Token {
		return s.Tokens
	})
}

// NumTokens returns the number of tokens of all sentences.
func (d Doc) NumTokens() int {
	return lo.SumBy(d.Sentences, func(s Sentence) int {
		return len(s.Tokens)
	})
}

// Library is a collection of Doc
type Library []Doc
