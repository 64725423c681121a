package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. WORDLEBOT_OPENER.
const EnvPrefix = "WORDLEBOT_"

// Config holds wordlebot settings for the CLI.
type Config struct {
	// Word lists, one lowercase five-letter word per line.
	AnswersPath string `yaml:"answers_path" env:"ANSWERS_PATH"`
	GuessesPath string `yaml:"guesses_path" env:"GUESSES_PATH"`

	// Opener is the first guess. Empty selects the best-scoring answer.
	Opener string `yaml:"opener" env:"OPENER"`

	// Offline artifacts.
	LookupPath  string `yaml:"lookup_path" env:"LOOKUP_PATH"`
	RankingPath string `yaml:"ranking_path" env:"RANKING_PATH"`

	// HistoryPath is the sqlite database holding bot run summaries.
	HistoryPath string `yaml:"history_path" env:"HISTORY_PATH"`

	Workers   int   `yaml:"workers" env:"WORKERS"`
	MaxRounds int   `yaml:"max_rounds" env:"MAX_ROUNDS"`
	Seed      int64 `yaml:"seed" env:"SEED"`
	Games     int   `yaml:"games" env:"GAMES"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		AnswersPath: "data/answers.txt",
		GuessesPath: "data/guesses.txt",
		Opener:      "trace",
		LookupPath:  "data/next_guess.txt",
		RankingPath: "data/first_guess.txt",
		HistoryPath: "wordlebot.db",
		Games:       100,
	}
}

// Load applies the YAML file at path over the defaults, then environment
// overrides. A missing file keeps the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.AnswersPath == "" {
		return fmt.Errorf("answers_path is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must not be negative, got %d", c.MaxRounds)
	}
	if c.Games < 0 {
		return fmt.Errorf("games must not be negative, got %d", c.Games)
	}
	return nil
}
