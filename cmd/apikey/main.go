package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/config"
	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/persistence/sqlstore"
)

// Command-line tool that creates an API key bound to an account and role.
// Meant for operators bootstrapping a deployment; there is no key management UI.
func main() {
	name := flag.String("name", "", "Name/description for the API key (required)")
	account := flag.String("account", "", "Account the key acts for (required for user keys)")
	role := flag.String("role", string(domain.RoleUser), "Role: admin or user")
	days := flag.Int("days", 0, "Number of days until expiration (0 = never expires)")

	flag.Parse()

	cfg, err := config.LoadAPIKeyGenConfig(*name, *account, *role, *days)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		log.Fatal(err)
	}

	ctx := context.Background()

	store, err := sqlstore.Open(ctx, sqlstore.DBConfig{
		Dialect:         sqlstore.Dialect(cfg.Database.Driver),
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
		SkipMigrations:  !cfg.Database.AutoMigrate,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	var expiresAt *time.Time
	if cfg.DaysValid > 0 {
		expiry := time.Now().UTC().AddDate(0, 0, cfg.DaysValid)
		expiresAt = &expiry
	}

	apiKey, err := auth.CreateAPIKey(ctx, store, auth.CreateParams{
		KeyType:   cfg.Key.KeyType,
		Service:   cfg.Key.ServiceName,
		Version:   cfg.Key.Version,
		Name:      cfg.Name,
		AccountID: cfg.AccountID,
		Role:      cfg.Role,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		log.Fatalf("Failed to create API key: %v", err)
	}

	fmt.Println("\n API Key created successfully!")
	fmt.Println("----------------------------------------")
	fmt.Printf("Name: %s\n", cfg.Name)
	fmt.Printf("Role: %s\n", cfg.Role)
	if cfg.AccountID != "" {
		fmt.Printf("Account: %s\n", cfg.AccountID)
	}
	fmt.Printf("Format: %s-%s-%s-{short}-{long}\n", cfg.Key.KeyType, cfg.Key.ServiceName, cfg.Key.Version)
	if expiresAt != nil {
		fmt.Printf("Expires: %s (%d days)\n", expiresAt.Format(time.RFC3339), cfg.DaysValid)
	} else {
		fmt.Println("Expires: Never")
	}
	fmt.Println("----------------------------------------")
	fmt.Printf("\nAPI Key: %s\n\n", apiKey)
	fmt.Println("IMPORTANT: Save this key now! It will not be shown again.")
	fmt.Println("----------------------------------------")
	fmt.Println("Usage example:")
	fmt.Printf("  curl -H \"Authorization: Bearer %s\" http://localhost:8080/api/v1/movies\n", apiKey)
}
