// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// legacyEnv holds the unprefixed variable names that existing deployments
// of the membership backend already export. They only fill fields left
// empty by the prefixed names.
type legacyEnv struct {
	DatabaseURL  string `env:"DATABASE_URL"`
	JWTSecret    string `env:"JWT_SECRET"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	RedisAddress string `env:"REDIS_ADDRESS"`
}

// parseEnv populates cfg from the `env`/`envPrefix` tags of
// [StructuredConfig] and then applies [legacyEnv] fallbacks.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	legacy, err := env.ParseAs[legacyEnv]()
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	fillEmpty(&cfg.Storage.DB.DSN, legacy.DatabaseURL)
	fillEmpty(&cfg.App.TokenSignKey, legacy.JWTSecret)
	fillEmpty(&cfg.AI.APIKey, legacy.GeminiAPIKey)
	fillEmpty(&cfg.Storage.Redis.Address, legacy.RedisAddress)

	return nil
}

func fillEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
