package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/config"
	"github.com/rezkam/catalog/internal/infrastructure/blob/fs"
	"github.com/rezkam/catalog/internal/infrastructure/blob/gcs"
	apihttp "github.com/rezkam/catalog/internal/infrastructure/http"
	"github.com/rezkam/catalog/internal/infrastructure/observability"
	"github.com/rezkam/catalog/internal/infrastructure/persistence/sqlstore"
)

// telemetryFlushTimeout bounds provider shutdown when the collector is unreachable.
const telemetryFlushTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	providers, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := providers.Shutdown(flushCtx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to shutdown telemetry: %v\n", err)
		}
	}()

	slog.InfoContext(ctx, "starting catalog service", "driver", cfg.Database.Driver)

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
		return fmt.Errorf("failed to open store: %w", err)
	}
	slog.InfoContext(ctx, "storage initialized", "dsn", maskPassword(cfg.Database.DSN))

	content, contentCloser, err := newContentStore(ctx, cfg.Pictures)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to open picture storage: %w", err)
	}

	svc := catalog.NewService(store, content, catalog.Config{})

	authenticator := auth.NewAuthenticator(ctx, store, auth.Config{
		OperationTimeout: authTimeout(cfg.Auth.OperationTimeout),
		UpdateQueueSize:  cfg.Auth.UpdateQueueSize,
	})

	server := apihttp.NewAPIServer(svc, authenticator, serverConfig(cfg.HTTP))

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		newCleanup(cleanupCtx, authenticator, store, contentCloser)()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.InfoContext(gctx, "shutting down")

		// The root context is already cancelled here.
		timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newContentStore opens the configured picture byte store. The closer is nil
// for backends without resources to release.
func newContentStore(ctx context.Context, cfg config.PictureConfig) (catalog.ContentStore, io.Closer, error) {
	switch cfg.Storage {
	case config.PictureStorageGCS:
		s, err := gcs.NewStore(ctx, cfg.Bucket, cfg.Prefix)
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "picture storage initialized", "backend", "gcs", "bucket", cfg.Bucket)
		return s, s, nil
	default:
		s, err := fs.NewStore(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "picture storage initialized", "backend", "fs", "dir", cfg.Dir)
		return s, nil, nil
	}
}

func serverConfig(c config.HTTPConfig) apihttp.ServerConfig {
	sc := apihttp.ServerConfig{
		Host:              c.Host,
		Port:              c.Port,
		ReadTimeout:       c.ReadTimeout,
		WriteTimeout:      c.WriteTimeout,
		IdleTimeout:       c.IdleTimeout,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		MaxHeaderBytes:    c.MaxHeaderBytes,
		MaxBodyBytes:      c.MaxBodyBytes,
		CORSOrigins:       c.CORSOrigins,
		RateLimit:         c.RateLimit,
		RateBurst:         c.RateBurst,
	}
	if c.TLSEnabled {
		sc.TLSCertFile = c.TLSCertFile
		sc.TLSKeyFile = c.TLSKeyFile
	}
	return sc
}

// authTimeout maps an unset timeout to the authenticator default.
func authTimeout(d time.Duration) time.Duration {
	if d == 0 {
		return auth.DefaultOperationTimeout
	}
	return d
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
