// Package eval compares the truecased token stream of a document against
// its original tokens.
package eval

import (
	"errors"
	"fmt"
)

// Policy decides what Evaluate does when the two streams differ in length.
type Policy int

const (
	// PolicyStrict refuses to compare streams of different length.
	PolicyStrict Policy = iota

	// PolicyTruncate compares only the common prefix of both streams.
	PolicyTruncate
)

var ErrLengthMismatch = errors.New("token count mismatch")

// LengthError reports streams of different length under PolicyStrict.
type LengthError struct {
	Expected int
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: %d original tokens, %d truecased tokens", ErrLengthMismatch, e.Expected, e.Actual)
}

func (e *LengthError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// Mismatch is a position where the truecased token differs from the original.
type Mismatch struct {
	Index    int    `json:"index"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

type Result struct {
	Total      int        `json:"total"`
	Matches    int        `json:"matches"`
	Mismatches []Mismatch `json:"mismatches"`
	ErrorRate  float64    `json:"error_rate"`

	// Truncated is set when the streams differed in length and only the
	// common prefix was compared.
	Truncated   bool `json:"truncated"`
	ExpectedLen int  `json:"expected_len"`
	ActualLen   int  `json:"actual_len"`
}

// Evaluate compares expected (original) and actual (truecased) tokens
// position by position with exact string equality.
func Evaluate(expected, actual []string, policy Policy) (Result, error) {
	res := Result{
		ExpectedLen: len(expected),
		ActualLen:   len(actual),
		Mismatches:  []Mismatch{},
	}

	n := len(expected)
	if len(expected) != len(actual) {
		if policy != PolicyTruncate {
			return res, &LengthError{Expected: len(expected), Actual: len(actual)}
		}
		n = min(len(expected), len(actual))
		res.Truncated = true
	}

	for i := 0; i < n; i++ {
		if expected[i] == actual[i] {
			res.Matches++
			continue
		}
		res.Mismatches = append(res.Mismatches, Mismatch{Index: i, Expected: expected[i], Actual: actual[i]})
	}

	res.Total = n
	res.ErrorRate = ErrorRate(n, res.Matches)
	return res, nil
}

// ErrorRate returns (total - matches) / total, and 0 for an empty stream.
func ErrorRate(total, matches int) float64 {
	if total == 0 {
		return 0
	}
	return float64(total-matches) / float64(total)
}
