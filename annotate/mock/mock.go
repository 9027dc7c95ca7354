// Package mock provides an offline annotator with a tiny rule based
// truecaser. It tokenizes and splits like a simplified pipeline so the
// evaluation can run without a server.
package mock

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/revelaction/truecase/annotate"
	sent "github.com/revelaction/truecase/sentence"
)

// URL selects this annotator where a server url is expected.
const URL = "mock"

// truecase state labels
const (
	Upper     = "UPPER"
	Lower     = "LOWER"
	InitUpper = "INIT_UPPER"
	Other     = "O"
)

// DefaultLexicon holds words whose casing is not derived from position.
var DefaultLexicon = []string{
	"I", "NASA", "UN", "EU", "USA", "iPhone", "McDonald",
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	"January", "February", "March", "April", "June", "July", "August",
	"September", "October", "November", "December",
	"English", "French", "German", "Spanish",
	"London", "Paris", "Berlin", "California", "Stanford", "America",
}

type Annotator struct {
	cfg     annotate.Config
	lexicon map[string]string
}

var _ annotate.Annotator = (*Annotator)(nil)

// New returns a mock annotator knowing lexicon. A nil lexicon uses
// DefaultLexicon.
func New(cfg annotate.Config, lexicon []string) (*Annotator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if lexicon == nil {
		lexicon = DefaultLexicon
	}

	lex := make(map[string]string, len(lexicon))
	for _, w := range lexicon {
		lex[strings.ToLower(w)] = w
	}

	return &Annotator{cfg: cfg, lexicon: lex}, nil
}

func (a *Annotator) Annotate(ctx context.Context, text string) (sent.Doc, error) {
	if err := ctx.Err(); err != nil {
		return sent.Doc{}, err
	}

	doc := sent.Doc{Text: text, Annotators: a.cfg.Annotators, Sentences: []sent.Sentence{}}

	var cur sent.Sentence
	flush := func() {
		if len(cur.Tokens) == 0 {
			return
		}
		cur.Id = len(doc.Sentences)
		doc.Sentences = append(doc.Sentences, cur)
		cur = sent.Sentence{}
	}

	for _, tk := range tokenize(text) {
		tk.Index = len(cur.Tokens)
		if a.cfg.Has("lemma") {
			tk.Lemma = strings.ToLower(tk.Text)
		}
		if a.cfg.Has("truecase") {
			a.truecase(&tk, tk.Index == 0)
		}
		cur.Tokens = append(cur.Tokens, tk)

		if tk.Text == "." || tk.Text == "!" || tk.Text == "?" {
			flush()
		}
	}
	flush()

	return doc, nil
}

func (a *Annotator) truecase(t *sent.Token, first bool) {
	lower := strings.ToLower(t.Text)

	r, _ := utf8.DecodeRuneInString(t.Text)
	if !unicode.IsLetter(r) {
		t.TrueCase = Other
		t.TrueCaseText = t.Text
		return
	}

	if form, ok := a.lexicon[lower]; ok {
		t.TrueCaseText = form
		t.TrueCase = state(form)
		return
	}

	if first {
		t.TrueCaseText = initUpper(lower)
		t.TrueCase = InitUpper
		return
	}

	t.TrueCaseText = lower
	t.TrueCase = Lower
}

func state(form string) string {
	switch {
	case form == strings.ToLower(form):
		return Lower
	case form == strings.ToUpper(form):
		return Upper
	case form == initUpper(strings.ToLower(form)):
		return InitUpper
	}
	return Other
}

func initUpper(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// tokenize splits text into words (letters, digits, apostrophes and inner
// dots) and single punctuation characters.
func tokenize(text string) []sent.Token {
	var tokens []sent.Token

	start := -1
	emit := func(end int) {
		if start >= 0 {
			tokens = append(tokens, sent.Token{Text: text[start:end], Begin: start, End: end})
			start = -1
		}
	}

	for i, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			if start < 0 {
				start = i
			}
		case r == '.' && start >= 0 && followedByLetter(text[i+1:]):
			// abbreviation dot as in u.s.
		case unicode.IsSpace(r):
			emit(i)
		default:
			emit(i)
			end := i + utf8.RuneLen(r)
			tokens = append(tokens, sent.Token{Text: text[i:end], Begin: i, End: end})
		}
	}
	emit(len(text))

	return tokens
}

func followedByLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}
