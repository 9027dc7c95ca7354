package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/truecase/annotate"
	"github.com/revelaction/truecase/config"
	"github.com/revelaction/truecase/eval"
	"github.com/revelaction/truecase/file"
)

const sample = "The Cat sat. The NASA team met in Paris."

func testConfig() config.Config {
	return config.Config{
		ServerURL:  "mock",
		Annotators: "tokenize,ssplit,pos,lemma,truecase",
		Language:   "und",
		Input:      "sample-content.txt",
		NoColor:    true,
		LogLevel:   "error",
		LogFormat:  "json",
	}
}

func runApp(t *testing.T, cfg config.Config, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(cfg, UI{Out: &out, Err: &errOut})
	err := app.RunContext(context.Background(), append([]string{"truecase"}, args...))
	return out.String(), errOut.String(), err
}

func writeSample(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample-content.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestEvalCommand(t *testing.T) {
	path := writeSample(t, sample)

	out, _, err := runApp(t, testConfig(), "eval", path)
	require.NoError(t, err)

	assert.Contains(t, out, "------ begin truecase output -----\n")
	assert.Contains(t, out, "input:cat state:LOWER output:cat\n")
	assert.Contains(t, out, "input:nasa state:UPPER output:NASA\n")
	assert.Contains(t, out, "Truecase mismatch: input:'Cat' output:'cat' @ 1\n")
	assert.Contains(t, out, fmt.Sprintf("Error Rate: %v\n", 1.0/11.0))
	assert.True(t, strings.HasSuffix(out, "------ end evaluation output -----\n"))
}

func TestEvalCommandDefaultInput(t *testing.T) {
	cfg := testConfig()
	cfg.Input = writeSample(t, "Hello world.")

	out, _, err := runApp(t, cfg, "eval", "-q")
	require.NoError(t, err)

	assert.NotContains(t, out, "begin truecase output")
	assert.Contains(t, out, "Error Rate: 0\n")
}

func TestEvalCommandEmptyInput(t *testing.T) {
	path := writeSample(t, "")

	out, _, err := runApp(t, testConfig(), "eval", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Error Rate: 0\n")
}

func TestEvalCommandJSON(t *testing.T) {
	path := writeSample(t, sample)

	out, _, err := runApp(t, testConfig(), "eval", "--format", "json", path)
	require.NoError(t, err)

	var rep struct {
		RunId  string      `json:"run_id"`
		Input  string      `json:"input"`
		Result eval.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.NotEmpty(t, rep.RunId)
	assert.Equal(t, path, rep.Input)
	assert.Equal(t, 11, rep.Result.Total)
	assert.Equal(t, 10, rep.Result.Matches)
}

func TestEvalCommandInvalidFormat(t *testing.T) {
	_, _, err := runApp(t, testConfig(), "eval", "--format", "xml", writeSample(t, sample))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestEvalCommandMissingFile(t *testing.T) {
	_, _, err := runApp(t, testConfig(), "eval", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IO error")
}

func TestEvalCommandInvalidAnnotators(t *testing.T) {
	_, _, err := runApp(t, testConfig(), "eval", "--annotators", "tokenize,truecase", writeSample(t, sample))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires")
}

// caseSensitiveServer splits capitalized words in two tokens so that the
// lowercased and the original text give different token counts.
func caseSensitiveServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)

		type token struct {
			Word         string `json:"word"`
			TrueCase     string `json:"truecase"`
			TrueCaseText string `json:"truecaseText"`
		}
		var tokens []token
		for _, word := range strings.Fields(string(b)) {
			if word != strings.ToLower(word) {
				tokens = append(tokens, token{Word: word[:1], TrueCase: "UPPER", TrueCaseText: word[:1]})
				word = word[1:]
			}
			tokens = append(tokens, token{Word: word, TrueCase: "LOWER", TrueCaseText: word})
		}

		resp := map[string]interface{}{
			"sentences": []interface{}{map[string]interface{}{"index": 0, "tokens": tokens}},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestEvalCommandLengthMismatch(t *testing.T) {
	srv := caseSensitiveServer(t)
	defer srv.Close()

	path := writeSample(t, "Big cat")

	out, _, err := runApp(t, testConfig(), "eval", "--server", srv.URL, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, eval.ErrLengthMismatch))

	// the truecase lines are still printed to locate the drift
	assert.Contains(t, out, "------ begin truecase output -----\n")
	assert.Contains(t, out, "input:big state:LOWER output:big\n")
	assert.NotContains(t, out, "Error Rate")

	out, _, err = runApp(t, testConfig(), "eval", "--server", srv.URL, "--truncate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Truecase length mismatch: 3 original tokens, 2 truecased tokens, compared first 2")
}

// echoServer returns one token per whitespace separated word, truecased
// as is, and counts its requests.
func echoServer(t *testing.T, hits *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		b, _ := io.ReadAll(r.Body)

		var tokens []map[string]string
		for _, word := range strings.Fields(string(b)) {
			tokens = append(tokens, map[string]string{"word": word, "truecase": "LOWER", "truecaseText": word})
		}

		resp := map[string]interface{}{
			"sentences": []interface{}{map[string]interface{}{"index": 0, "tokens": tokens}},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestEvalCommandStoreKeepsPipelinesApart(t *testing.T) {
	var hits int32
	srv := echoServer(t, &hits)
	defer srv.Close()

	store := t.TempDir()
	path := writeSample(t, sample)

	out, _, err := runApp(t, testConfig(), "eval", "-q", "--store", store, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Truecase mismatch: input:'Cat' output:'cat' @ 1\n")

	out, _, err = runApp(t, testConfig(), "eval", "-q", "--store", store, "--server", srv.URL, path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Contains(t, out, "Truecase mismatch: input:'The' output:'the' @ 0\n")

	// the server results are cached too
	_, _, err = runApp(t, testConfig(), "eval", "-q", "--store", store, "--server", srv.URL, path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))

	out, _, err = runApp(t, testConfig(), "runs", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, srv.URL)
	assert.Contains(t, out, "mock")
}

func TestEvalCommandWithoutTrueCaseStage(t *testing.T) {
	var hits int32
	srv := echoServer(t, &hits)
	defer srv.Close()

	path := writeSample(t, sample)

	for _, server := range []string{"mock", srv.URL} {
		out, _, err := runApp(t, testConfig(), "eval", "--server", server, "--annotators", "tokenize,ssplit,pos,lemma", path)
		assert.ErrorIs(t, err, annotate.ErrMissingStage)
		assert.Empty(t, out)
	}
	assert.Zero(t, atomic.LoadInt32(&hits))

	_, _, err := runApp(t, testConfig(), "stat", "--annotators", "tokenize,ssplit,pos,lemma", path)
	assert.ErrorIs(t, err, annotate.ErrMissingStage)
}

func TestEvalCommandServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := runApp(t, testConfig(), "eval", "--server", url, writeSample(t, sample))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to annotate lowercased text")
}

func TestEvalCommandStores(t *testing.T) {
	stores := map[string]string{
		"sqlite":     filepath.Join(t.TempDir(), "truecase.db"),
		"filesystem": t.TempDir(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			path := writeSample(t, sample)

			_, _, err := runApp(t, testConfig(), "eval", "-q", "--store", store, path)
			require.NoError(t, err)

			// the second run is served from the cache
			_, _, err = runApp(t, testConfig(), "eval", "-q", "--store", store, path)
			require.NoError(t, err)

			out, _, err := runApp(t, testConfig(), "runs", "--store", store)
			require.NoError(t, err)
			assert.Equal(t, 2, strings.Count(out, path))
			assert.Contains(t, out, "0.0909")

			out, _, err = runApp(t, testConfig(), "cache", "--store", store)
			require.NoError(t, err)
			assert.Equal(t, 2, strings.Count(out, "📖"))
			assert.Contains(t, out, "the cat sat. the nasa team met in paris.")
		})
	}
}

func TestEvalCommandSeveralFiles(t *testing.T) {
	a := writeSample(t, "Hello world.")
	b := writeSample(t, sample)

	out, _, err := runApp(t, testConfig(), "eval", "-q", a, b)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "------ end evaluation output -----"))
}

func TestRunsCommandNoStore(t *testing.T) {
	_, _, err := runApp(t, testConfig(), "runs")
	assert.ErrorIs(t, err, errNoStore)
}

func TestAnnotateCommand(t *testing.T) {
	path := writeSample(t, sample)
	output := filepath.Join(t.TempDir(), "doc.json")

	out, _, err := runApp(t, testConfig(), "annotate", "-o", output, path)
	require.NoError(t, err)
	assert.Contains(t, out, "input:paris state:INIT_UPPER output:Paris\n")

	doc, err := file.ReadDoc(output)
	require.NoError(t, err)
	assert.Equal(t, "sample-content.txt", doc.Title)
	assert.Len(t, doc.Sentences, 2)
}

func TestAnnotateCommandKeepCase(t *testing.T) {
	out, _, err := runApp(t, testConfig(), "annotate", "--keep-case", writeSample(t, sample))
	require.NoError(t, err)
	assert.Contains(t, out, "input:Cat state:LOWER output:cat\n")
}

func TestAnnotateCommandNoArgs(t *testing.T) {
	_, _, err := runApp(t, testConfig(), "annotate")
	assert.Error(t, err)
}

func TestStatCommand(t *testing.T) {
	out, _, err := runApp(t, testConfig(), "stat", writeSample(t, sample))
	require.NoError(t, err)

	assert.Contains(t, out, "Num sentences 2, num tokens 11")
	assert.Contains(t, out, "INIT_UPPER")
	assert.Contains(t, out, "TOKENS PER SENTENCE")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runApp(t, testConfig(), "version")
	require.NoError(t, err)
	assert.Equal(t, "truecase version dev (commit: none)\n", out)
}

func TestBashCommand(t *testing.T) {
	out, _, err := runApp(t, testConfig(), "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -o default -F _truecase_autocomplete truecase")
}
