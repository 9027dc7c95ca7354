package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDefaults(t *testing.T) {
	cfg, err := Process()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.ServerURL)
	assert.Equal(t, "tokenize,ssplit,pos,lemma,truecase", cfg.Annotators)
	assert.Equal(t, "sample-content.txt", cfg.Input)
	assert.Equal(t, "und", cfg.Language)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestProcessEnv(t *testing.T) {
	t.Setenv("TRUECASE_SERVER_URL", "mock")
	t.Setenv("TRUECASE_TIMEOUT", "30s")
	t.Setenv("TRUECASE_LOG_FORMAT", "json")
	t.Setenv("TRUECASE_STORE", "/tmp/truecase.db")

	cfg, err := Process()
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/truecase.db", cfg.Store)
}

func TestProcessInvalid(t *testing.T) {
	cases := map[string][2]string{
		"server url": {"TRUECASE_SERVER_URL", "not a url"},
		"log level":  {"TRUECASE_LOG_LEVEL", "loud"},
		"language":   {"TRUECASE_LANGUAGE", "??"},
		"timeout":    {"TRUECASE_TIMEOUT", "soon"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])

			_, err := Process()
			assert.Error(t, err)
		})
	}
}
