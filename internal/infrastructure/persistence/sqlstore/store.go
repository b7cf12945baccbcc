// Package sqlstore persists the catalog through database/sql. PostgreSQL is
// reached via the pgx stdlib driver and SQLite via modernc.org/sqlite; both
// share one set of queries written with ? placeholders.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/domain"
)

const instrumentationName = "github.com/rezkam/catalog/internal/infrastructure/persistence/sqlstore"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements catalog.Repository and auth.Repository.
type Store struct {
	db      *sql.DB
	q       querier
	inTx    bool
	dialect Dialect
	tracer  trace.Tracer
}

// Compile-time verification that Store implements all repository interfaces.
var (
	_ catalog.Repository = (*Store)(nil)
	_ auth.Repository    = (*Store)(nil)
)

// NewStore wraps an open database.
func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		q:       db,
		dialect: dialect,
		tracer:  otel.Tracer(instrumentationName),
	}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL dialect in use.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.q.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.q.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.q.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

// expected reports whether err is a caller error rather than a storage fault.
func expected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrMoveBoundary) ||
		errors.Is(err, domain.ErrCheatExists)
}

// finalizeTx handles transaction cleanup for normal error/success cases.
// Rolls back on error, commits on success.
// Panics are handled separately in the defer blocks before finalizeTx is called.
func finalizeTx(ctx context.Context, tx *sql.Tx, err *error) {
	if *err != nil {
		if expected(*err) {
			slog.DebugContext(ctx, "transaction rejected, rolling back", "error", *err)
		} else {
			slog.ErrorContext(ctx, "transaction failed, rolling back", "error", *err)
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed",
				"original_error", *err,
				"rollback_error", rbErr)
			*err = fmt.Errorf("transaction failed: %w (rollback error: %v)", *err, rbErr)
		}
		return
	}
	if *err = tx.Commit(); *err != nil {
		slog.ErrorContext(ctx, "transaction commit failed", "error", *err)
	}
}

// executeInTransaction runs fn within a transaction with logging, tracing and
// panic recovery. A store already inside a transaction runs fn directly.
func (s *Store) executeInTransaction(ctx context.Context, operationName string, fn func(txStore *Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	start := time.Now().UTC()
	ctx, span := s.tracer.Start(ctx, "sqlstore."+operationName,
		trace.WithAttributes(attribute.String("db.system", string(s.dialect))))
	defer func() {
		if err != nil && !expected(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "transaction failed")
		}
		span.End()
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to begin transaction",
			"operation", operationName,
			"error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			slog.ErrorContext(ctx, "transaction panic, rolling back",
				"operation", operationName,
				"panic", p)
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.ErrorContext(ctx, "rollback after panic failed",
					"operation", operationName,
					"panic", p,
					"rollback_error", rbErr)
			}
			panic(p)
		}

		finalizeTx(ctx, tx, &err)
		if err == nil {
			slog.DebugContext(ctx, "transaction completed",
				"operation", operationName,
				"duration_ms", time.Since(start).Milliseconds())
		}
	}()

	txStore := &Store{
		db:      s.db,
		q:       tx,
		inTx:    true,
		dialect: s.dialect,
		tracer:  s.tracer,
	}

	err = fn(txStore)
	return
}

// Atomic executes fn within a database transaction. Collections obtained
// from the Repository passed to fn share that transaction.
func (s *Store) Atomic(ctx context.Context, fn func(r catalog.Repository) error) error {
	return s.executeInTransaction(ctx, "atomic", func(txStore *Store) error {
		return fn(txStore)
	})
}

func (s *Store) Movies() catalog.Collection[*domain.Movie]     { return newTable(s, movieSchema) }
func (s *Store) Shows() catalog.Collection[*domain.Show]       { return newTable(s, showSchema) }
func (s *Store) Seasons() catalog.Collection[*domain.Season]   { return newTable(s, seasonSchema) }
func (s *Store) Episodes() catalog.Collection[*domain.Episode] { return newTable(s, episodeSchema) }
func (s *Store) Games() catalog.Collection[*domain.Game]       { return newTable(s, gameSchema) }
func (s *Store) Cheats() catalog.Collection[*domain.Cheat]     { return newTable(s, cheatSchema) }
func (s *Store) Music() catalog.Collection[*domain.Music]      { return newTable(s, musicSchema) }
func (s *Store) Songs() catalog.Collection[*domain.Song]       { return newTable(s, songSchema) }
func (s *Store) Programs() catalog.Collection[*domain.Program] { return newTable(s, programSchema) }
func (s *Store) Pictures() catalog.Collection[*domain.Picture] { return newTable(s, pictureSchema) }
func (s *Store) Genres() catalog.Collection[*domain.Genre]     { return newTable(s, genreSchema) }
