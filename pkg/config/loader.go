package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the struct pointed to by cfg,
// honoring `env` and `envDefault` tags:
//
//	type Config struct {
//	    HTTPPort int    `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
func Load(cfg any) error {
	return LoadWithPrefix("", cfg)
}

// LoadWithPrefix is like Load but only reads variables starting with prefix,
// e.g. "STOREFRONT_" so that HTTP_PORT is read from STOREFRONT_HTTP_PORT.
func LoadWithPrefix(prefix string, cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
