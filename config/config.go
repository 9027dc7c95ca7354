// Package config loads the settings of truecase from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of all environment variables, e.g. TRUECASE_SERVER_URL.
const Prefix = "TRUECASE"

type Config struct {
	// ServerURL is the CoreNLP server, or "mock" for the offline annotator
	ServerURL  string        `envconfig:"SERVER_URL" default:"http://localhost:9000" validate:"required,url|eq=mock"`
	Annotators string        `envconfig:"ANNOTATORS" default:"tokenize,ssplit,pos,lemma,truecase" validate:"required"`
	Language   string        `envconfig:"LANGUAGE" default:"und" validate:"bcp47_language_tag"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"0s" validate:"gte=0"`

	// Input is the file evaluated when no file is given
	Input string `envconfig:"INPUT" default:"sample-content.txt" validate:"required"`

	// Store is a directory or an SQLite file for cached annotations and runs
	Store string `envconfig:"STORE"`

	NoColor   bool   `envconfig:"NO_COLOR"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn" validate:"oneof=trace debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=console json"`
}

var validate = validator.New()

// Load reads an optional .env file and then the TRUECASE_* variables.
func Load() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()
	return Process()
}

// Process reads the TRUECASE_* variables of the current environment.
func Process() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
