package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// Dialect selects the SQL flavour and driver.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) gooseDialect() goose.Dialect {
	if d == Postgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// DBConfig holds database connection configuration.
type DBConfig struct {
	Dialect         Dialect
	DSN             string        // connection string or SQLite file path
	MaxOpenConns    int           // Maximum open connections (default: 25, SQLite: 1)
	MaxIdleConns    int           // Maximum idle connections (default: 5)
	ConnMaxLifetime time.Duration // Connection max lifetime (default: 5min)
	ConnMaxIdleTime time.Duration // Connection max idle time (default: 1min)
	// SkipMigrations leaves the schema untouched.
	SkipMigrations bool
}

// sqlitePragmas are applied on the single SQLite connection. modernc.org/sqlite
// takes them as statements rather than DSN parameters.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA cache_size=-20000",
}

// Open connects to the configured database, applies migrations and
// returns a Store.
func Open(ctx context.Context, cfg DBConfig) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Dialect {
	case Postgres, "":
		cfg.Dialect = Postgres
		db, err = openPostgres(cfg)
	case SQLite:
		db, err = openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", cfg.Dialect)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		closeDB(ctx, db)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if !cfg.SkipMigrations {
		if err := runMigrations(ctx, db, cfg.Dialect); err != nil {
			closeDB(ctx, db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return NewStore(db, cfg.Dialect), nil
}

func openPostgres(cfg DBConfig) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// Set timezone to UTC for all connections to ensure consistent timestamp handling
	db := stdlib.OpenDB(*connConfig, stdlib.OptionAfterConnect(func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, "SET TIMEZONE='UTC'")
		return err
	}))

	// Configure connection pool with defaults if not set
	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 25
	}
	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	connMaxIdleTime := cfg.ConnMaxIdleTime
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 1 * time.Minute
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	return db, nil
}

func openSQLite(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps pragmas and
	// in-memory databases alive for the life of the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	for _, p := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			closeDB(ctx, db)
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return db, nil
}

// runMigrations applies the embedded migrations for dialect using goose.
func runMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	fsys, err := fs.Sub(embedMigrations, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect.gooseDialect(), db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.InfoContext(ctx, "applied migration",
			"dialect", string(dialect),
			"version", r.Source.Version,
			"duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

func closeDB(ctx context.Context, db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.ErrorContext(ctx, "failed to close database connection", "error", err)
	}
}
