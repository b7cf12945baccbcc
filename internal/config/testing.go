package config

import (
	"fmt"

	"github.com/rezkam/catalog/internal/env"
)

// TestConfig holds configuration for PostgreSQL integration tests.
type TestConfig struct {
	DSN string `env:"CATALOG_TEST_DB_DSN"`
}

// LoadTestConfig loads test configuration from environment.
// An empty DSN means integration tests should be skipped.
func LoadTestConfig() (*TestConfig, error) {
	cfg := &TestConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	return cfg, nil
}
