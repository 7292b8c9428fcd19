// Package config reads the table server's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/minaorangina/sheepshead/game"
)

var ErrWeakSecret = errors.New("TOKEN_SECRET must be set to at least 16 bytes")

type Config struct {
	Port int    `env:"PORT,default=8000"`
	Host string `env:"HOST"`

	// RequirePickerHasSuitToCall is on for served tables.
	RequirePickerHasSuitToCall bool `env:"REQUIRE_PICKER_HAS_SUIT_TO_CALL,default=true"`

	// TokenSecret signs seat tokens and has no default.
	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,default=12h"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
	LogDev   bool   `env:"LOG_DEV,default=false"`

	StaticDir string `env:"STATIC_DIR"`
}

// Load reads envFiles (missing files are skipped) and then decodes the
// environment. Variables already set win over the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("could not load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}

	if len(cfg.TokenSecret) < 16 {
		return Config{}, ErrWeakSecret
	}
	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Rules is the ruleset every new table is created with.
func (c Config) Rules() game.Ruleset {
	rules := game.DefaultRuleset()
	rules.RequirePickerHasSuitToCall = c.RequirePickerHasSuitToCall
	return rules
}
