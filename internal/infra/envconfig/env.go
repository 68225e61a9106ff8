package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Overrides are settings that may come from the environment. Flags take
// precedence over them.
type Overrides struct {
	Root    string `env:"KATZEFIX_ROOT"`
	Debug   bool   `env:"KATZEFIX_DEBUG"`
	BaseURL string `env:"KATZEFIX_BASE_URL"`
}

// Parse loads Overrides from the process environment.
func Parse() (Overrides, error) {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}
