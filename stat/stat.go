package stat

import (
	"sort"

	sent "github.com/revelaction/truecase/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// number of tokens per truecase state label
	StateDis map[string]int

	// tokens whose truecased text differs from the token text
	NumRecased int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}, StateDis: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences and tokens of doc to the stats. It can be
// called for several docs.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumSentences += len(doc.Sentences)
	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++

		for _, token := range sentence.Tokens {
			h.stats.StateDis[token.TrueCase]++
			if token.TrueCaseText != token.Text {
				h.stats.NumRecased++
			}
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}

// States returns the state labels seen, sorted by descending count then name.
func (s Stats) States() []string {
	states := make([]string, 0, len(s.StateDis))
	for st := range s.StateDis {
		states = append(states, st)
	}

	sort.Slice(states, func(i, j int) bool {
		if s.StateDis[states[i]] != s.StateDis[states[j]] {
			return s.StateDis[states[i]] > s.StateDis[states[j]]
		}
		return states[i] < states[j]
	})

	return states
}

// SentenceLengths returns the token counts seen in sentences, ascending.
func (s Stats) SentenceLengths() []int {
	lengths := make([]int, 0, len(s.TokensPerSentenceDis))
	for n := range s.TokensPerSentenceDis {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	return lengths
}
