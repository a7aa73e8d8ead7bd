// Package config loads deepwordle settings from the environment.
//
// An optional .env file in the working directory is loaded first; variables
// already present in the environment win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/daily"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/words"
)

// DefaultShareFooter is appended to shared results.
const DefaultShareFooter = "This result was generated by #deepwordle: a wordle clone game for the terminal."

// Config holds every tunable of the CLI and the HTTP surface.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Port     string `env:"PORT"      envDefault:"5175"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`

	// EpochDate is the YYYY-MM-DD day counted as day index 0.
	EpochDate string `env:"DEEPWORDLE_EPOCH" envDefault:"2021-06-19"`
	DailySalt string `env:"DAILY_SALT"       envDefault:"local_dev_salt"`

	JWTSecret string        `env:"JWT_SECRET"        envDefault:"dev_secret_change_me"`
	TokenTTL  time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`

	ListenDuration time.Duration `env:"LISTEN_DURATION" envDefault:"2s"`
	ShareFooter    string        `env:"SHARE_FOOTER"`

	epoch time.Time
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	epoch, err := daily.ParseDate(cfg.EpochDate)
	if err != nil {
		return Config{}, err
	}
	cfg.epoch = epoch
	if cfg.ShareFooter == "" {
		cfg.ShareFooter = DefaultShareFooter
	}
	if cfg.ListenDuration <= 0 {
		return Config{}, fmt.Errorf("LISTEN_DURATION must be positive, got %s", cfg.ListenDuration)
	}
	return cfg, nil
}

// Epoch returns the parsed EpochDate.
func (c Config) Epoch() time.Time {
	if c.epoch.IsZero() {
		return daily.DefaultEpoch
	}
	return c.epoch
}

// Words returns the word list source described by the config.
func (c Config) Words() words.Source {
	return words.Source{AnswersFile: c.AnswersFile, AllowedFile: c.AllowedFile}
}
