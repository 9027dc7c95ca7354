// Package corenlp annotates text with a Stanford CoreNLP server.
package corenlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revelaction/truecase/annotate"
	sent "github.com/revelaction/truecase/sentence"
)

const DefaultURL = "http://localhost:9000"

// maxErrorBody bounds the server error text kept in a ServerError.
const maxErrorBody = 4096

// ServerError is returned when the server answers with a non 2xx status.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("corenlp server returned %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	cfg        annotate.Config
	httpClient *http.Client
	log        zerolog.Logger
}

var _ annotate.Annotator = (*Client)(nil)

// New returns a client for the server at baseURL. A zero timeout means the
// request blocks until the server answers or ctx is done.
func New(baseURL string, cfg annotate.Config, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid corenlp server url %q", baseURL)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

type properties struct {
	Annotators   string `json:"annotators"`
	OutputFormat string `json:"outputFormat"`
}

// response mirrors the json outputter of the server.
type response struct {
	Sentences []struct {
		Index  int `json:"index"`
		Tokens []struct {
			Index        int    `json:"index"`
			Word         string `json:"word"`
			OriginalText string `json:"originalText"`
			Lemma        string `json:"lemma"`
			Pos          string `json:"pos"`
			Begin        int    `json:"characterOffsetBegin"`
			End          int    `json:"characterOffsetEnd"`
			TrueCase     string `json:"truecase"`
			TrueCaseText string `json:"truecaseText"`
		} `json:"tokens"`
	} `json:"sentences"`
}

func (c *Client) requestURL() (string, error) {
	props, err := json.Marshal(properties{Annotators: c.cfg.String(), OutputFormat: "json"})
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("properties", string(props))
	return c.baseURL + "/?" + q.Encode(), nil
}

// Annotate sends text to the server and converts the answer into a Doc.
func (c *Client) Annotate(ctx context.Context, text string) (sent.Doc, error) {
	u, err := c.requestURL()
	if err != nil {
		return sent.Doc{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBufferString(text))
	if err != nil {
		return sent.Doc{}, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("corenlp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return sent.Doc{}, &ServerError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	doc := toDoc(r)
	doc.Text = text
	doc.Annotators = c.cfg.Annotators

	c.log.Debug().
		Int("sentences", len(doc.Sentences)).
		Dur("elapsed", time.Since(start)).
		Msg("corenlp annotation done")

	return doc, nil
}

func toDoc(r response) sent.Doc {
	doc := sent.Doc{Sentences: make([]sent.Sentence, 0, len(r.Sentences))}

	for i, s := range r.Sentences {
		sentence := sent.Sentence{Id: i, Tokens: make([]sent.Token, 0, len(s.Tokens))}
		for j, t := range s.Tokens {
			sentence.Tokens = append(sentence.Tokens, sent.Token{
				// server token indexes start at 1
				Index:        j,
				Text:         t.Word,
				TrueCase:     t.TrueCase,
				TrueCaseText: t.TrueCaseText,
				Lemma:        t.Lemma,
				Pos:          t.Pos,
				Begin:        t.Begin,
				End:          t.End,
			})
		}
		doc.Sentences = append(doc.Sentences, sentence)
	}

	return doc
}
