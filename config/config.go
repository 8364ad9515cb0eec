// Package config reads arcade settings from the environment
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port int `env:"ARCADE_PORT,default=8000"`
	// FrameInterval is how often a running game's frame callbacks tick
	FrameInterval time.Duration `env:"ARCADE_FRAME_INTERVAL,default=16ms"`
	// IdleTimeout closes an arcade nobody is connected to
	IdleTimeout time.Duration `env:"ARCADE_IDLE_TIMEOUT,default=5m"`
	// ResultsDB is a SQLite file for the win log. Wins are kept in memory
	// when it is empty.
	ResultsDB      string   `env:"ARCADE_RESULTS_DB"`
	AllowedOrigins []string `env:"ARCADE_ALLOWED_ORIGINS,default=*"`
	// Seed fixes the random source; 0 seeds each arcade freshly
	Seed    int64 `env:"ARCADE_SEED"`
	NoColor bool  `env:"ARCADE_NO_COLOR"`
}

// Load decodes the environment over the defaults
func Load() (Config, error) {
	var cfg Config
	err := envdecode.Decode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval %s", ErrInvalidConfig, c.FrameInterval)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle timeout %s", ErrInvalidConfig, c.IdleTimeout)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowsAnyOrigin reports whether cross-origin requests are open to all
func (c Config) AllowsAnyOrigin() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}
