// Package config loads engine-wide tunables from the environment, the way
// the teacher's internal/platform/config package wraps caarlos0/env for its
// own service configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Engine holds the engine-wide tunables handed to the handler families at
// startup. The dice package does not read AttackSkillMultiplier from here;
// it uses its own package constant. Defaults match the values spec.md states
// inline (MAX_STAT, ATTACK_SKILL_MULTIPLIER, MAX_SAFE credit amount).
type Engine struct {
	MaxStat               int     `env:"FLUXCORE_MAX_STAT" envDefault:"100"`
	AttackSkillMultiplier float64 `env:"FLUXCORE_ATTACK_SKILL_MULTIPLIER" envDefault:"0.8"`
	MaxSafeCreditAmount   int64   `env:"FLUXCORE_MAX_SAFE_CREDIT_AMOUNT" envDefault:"9007199254740991"`
	DefaultLocale         string  `env:"FLUXCORE_DEFAULT_LOCALE" envDefault:"en-US"`
	AllowedCurrencies      []string `env:"FLUXCORE_ALLOWED_CURRENCIES" envDefault:"gold,credits,scrip" envSeparator:","`
}

// Load parses Engine configuration from the current environment.
func Load() (Engine, error) {
	var cfg Engine
	if err := env.Parse(&cfg); err != nil {
		return Engine{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// AllowsCurrency reports whether currency is in the configured allowed set.
func (e Engine) AllowsCurrency(currency string) bool {
	for _, c := range e.AllowedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}
