/*
Package config defines server configuration and its loading order.

PURPOSE:
  Carries everything the dev server needs: listen address, optional
  snapshot database path, CORS origins, the default weight configuration,
  and the award amounts. The core engine never reads configuration
  directly - values are injected where needed.

LOADING ORDER (low -> high):
  1. defaults (Default())
  2. YAML file, if PERFORM_CONFIG points at one
  3. environment variables with prefix PERFORM_

SEE ALSO:
  - cmd/server/main.go: Consumes the loaded config
*/
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
)

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite snapshot path. Empty disables persistence;
	// ":memory:" keeps the database in memory.
	DBPath string `koanf:"db_path"`

	// AllowedOrigins lists CORS origins for the frontend.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// Weights is the initial weight configuration, keyed by metric name.
	Weights map[string]float64 `koanf:"weights"`

	// AwardAmounts are the top-N award sizes, best rank first.
	AwardAmounts []int `koanf:"award_amounts"`

	// SeedDemo loads the stock demo roster when the store starts empty.
	SeedDemo bool `koanf:"seed_demo"`
}

// Default returns the stock configuration.
func Default() *Config {
	weights := make(map[string]float64)
	for k, v := range perform.DefaultWeights() {
		weights[string(k)] = v
	}
	return &Config{
		Addr:           ":8080",
		DBPath:         "",
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		Weights:        weights,
		AwardAmounts:   append([]int(nil), rewards.DefaultAwardAmounts...),
		SeedDemo:       true,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
func Load() (*Config, error) {
	base := Default()
	k := koanf.New(".")

	if path := os.Getenv("PERFORM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// PERFORM_ADDR -> addr, PERFORM_DB_PATH -> db_path, ...
	envProvider := env.Provider("PERFORM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "perform_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	return &cfg, nil
}

// WeightConfig converts the configured weight map to the engine type.
func (c *Config) WeightConfig() perform.WeightConfig {
	w := make(perform.WeightConfig, len(c.Weights))
	for k, v := range c.Weights {
		w[perform.Metric(k)] = v
	}
	return w
}
