package nakama

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings configure the solver runtime module. They are read from the
// Nakama runtime environment (runtime.env in the server config).
type Settings struct {
	AnswersPath string `env:"solver_answers_path" envDefault:"data/answers.txt"`
	GuessesPath string `env:"solver_guesses_path" envDefault:"data/guesses.txt"`
	// LookupPath seeds the solver_lookup collection at startup. Empty skips seeding.
	LookupPath string `env:"solver_lookup_path" envDefault:"data/next_guess.txt"`
	Opener     string `env:"solver_opener" envDefault:"trace"`

	ResumeSecret string        `env:"solver_resume_secret"`
	ResumeIssuer string        `env:"solver_resume_issuer"`
	ResumeTTL    time.Duration `env:"solver_resume_ttl" envDefault:"1h"`

	MaxRounds   int `env:"solver_max_rounds"`
	Workers     int `env:"solver_workers"`
	BotMaxGames int `env:"solver_bot_max_games" envDefault:"500"`
}

// LoadSettings parses settings from the runtime environment map.
func LoadSettings(vars map[string]string) (Settings, error) {
	var s Settings
	if vars == nil {
		vars = map[string]string{}
	}
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return Settings{}, fmt.Errorf("parse runtime env: %w", err)
	}
	if s.AnswersPath == "" {
		return Settings{}, fmt.Errorf("solver_answers_path is required")
	}
	for key, v := range map[string]int{
		"solver_max_rounds":    s.MaxRounds,
		"solver_workers":       s.Workers,
		"solver_bot_max_games": s.BotMaxGames,
	} {
		if v < 0 {
			return Settings{}, fmt.Errorf("%s must not be negative, got %d", key, v)
		}
	}
	return s, nil
}
