package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateOneMismatch(t *testing.T) {
	res, err := Evaluate([]string{"The", "Cat", "sat"}, []string{"The", "cat", "sat"}, PolicyStrict)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Matches)
	assert.InDelta(t, 1.0/3.0, res.ErrorRate, 1e-9)
	assert.Equal(t, []Mismatch{{Index: 1, Expected: "Cat", Actual: "cat"}}, res.Mismatches)
	assert.False(t, res.Truncated)
}

func TestEvaluateRoundTrip(t *testing.T) {
	tokens := []string{"Stanford", "is", "in", "California", "."}

	res, err := Evaluate(tokens, tokens, PolicyStrict)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Matches)
	assert.Zero(t, res.ErrorRate)
	assert.Empty(t, res.Mismatches)
}

func TestEvaluateEmpty(t *testing.T) {
	res, err := Evaluate(nil, []string{}, PolicyStrict)
	require.NoError(t, err)

	assert.Zero(t, res.Total)
	assert.Zero(t, res.ErrorRate)
	assert.NotNil(t, res.Mismatches)
}

func TestEvaluateFirstAndLastPosition(t *testing.T) {
	res, err := Evaluate([]string{"Paris", "is", "big", "Today"}, []string{"paris", "is", "big", "today"}, PolicyStrict)
	require.NoError(t, err)

	require.Len(t, res.Mismatches, 2)
	assert.Equal(t, 0, res.Mismatches[0].Index)
	assert.Equal(t, "Paris", res.Mismatches[0].Expected)
	assert.Equal(t, "paris", res.Mismatches[0].Actual)
	assert.Equal(t, 3, res.Mismatches[1].Index)
	assert.Equal(t, 0.5, res.ErrorRate)
}

func TestEvaluateLengthMismatchStrict(t *testing.T) {
	_, err := Evaluate([]string{"a", "b", "c"}, []string{"a", "b"}, PolicyStrict)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrLengthMismatch))

	var lerr *LengthError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 3, lerr.Expected)
	assert.Equal(t, 2, lerr.Actual)
}

func TestEvaluateLengthMismatchTruncate(t *testing.T) {
	res, err := Evaluate([]string{"A", "b"}, []string{"a", "b", "c", "d"}, PolicyTruncate)
	require.NoError(t, err)

	assert.True(t, res.Truncated)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Matches)
	assert.Equal(t, 2, res.ExpectedLen)
	assert.Equal(t, 4, res.ActualLen)
	assert.Equal(t, 0.5, res.ErrorRate)
}

func TestEvaluateTruncateToEmpty(t *testing.T) {
	res, err := Evaluate([]string{}, []string{"a"}, PolicyTruncate)
	require.NoError(t, err)

	assert.Zero(t, res.Total)
	assert.Zero(t, res.ErrorRate)
}

func TestEvaluateIsCaseSensitive(t *testing.T) {
	res, err := Evaluate([]string{"NASA"}, []string{"Nasa"}, PolicyStrict)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.ErrorRate)
}

func TestErrorRate(t *testing.T) {
	assert.Zero(t, ErrorRate(0, 0))
	assert.Equal(t, 0.25, ErrorRate(4, 3))
}
