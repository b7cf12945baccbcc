package config

import (
	"fmt"

	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/env"
)

// APIKeyConfig holds API key format configuration.
type APIKeyConfig struct {
	KeyType     string `env:"CATALOG_API_KEY_TYPE" default:"sk"`
	ServiceName string `env:"CATALOG_API_SERVICE_NAME" default:"catalog"`
	Version     string `env:"CATALOG_API_VERSION" default:"v1"`
}

// APIKeyGenConfig holds all configuration for the apikey binary.
type APIKeyGenConfig struct {
	Database DatabaseConfig
	Key      APIKeyConfig

	Name      string
	AccountID string
	Role      domain.Role
	DaysValid int
}

// LoadAPIKeyGenConfig loads and validates apikey generation configuration.
// Flags supply the key metadata, the environment supplies the rest.
func LoadAPIKeyGenConfig(name, accountID, role string, daysValid int) (*APIKeyGenConfig, error) {
	r, err := domain.NewRole(role)
	if err != nil {
		return nil, err
	}

	cfg := &APIKeyGenConfig{
		Name:      name,
		AccountID: accountID,
		Role:      r,
		DaysValid: daysValid,
	}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load apikey config: %w", err)
	}

	return cfg, nil
}

// Validate validates apikey generation configuration.
func (c *APIKeyGenConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required (use -name flag)")
	}

	if c.Role == domain.RoleUser && c.AccountID == "" {
		return fmt.Errorf("account is required for user keys (use -account flag)")
	}

	if c.DaysValid < 0 {
		return fmt.Errorf("days must be >= 0 (0 = never expires)")
	}

	return nil
}
