package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/keygen"
)

// Default configuration values.
const (
	DefaultOperationTimeout = 5 * time.Second
	DefaultUpdateQueueSize  = 1000
)

// Config holds configuration for the Authenticator.
type Config struct {
	OperationTimeout time.Duration // Timeout for storage operations
	UpdateQueueSize  int           // Buffer size for last_used_at updates
}

type lastUsedUpdate struct {
	keyID     string
	timestamp time.Time
}

// Authenticator validates API keys and resolves them to a caller scope.
//
// last_used_at bookkeeping is queued to a single background worker so
// request handling never waits on it. Updates are dropped when the queue is
// full.
type Authenticator struct {
	repo             Repository
	appCtx           context.Context // cancelled on shutdown
	lastUsedUpdates  chan lastUsedUpdate
	shutdownChan     chan struct{}
	shutdownOnce     sync.Once
	wg               sync.WaitGroup
	operationTimeout time.Duration
	now              func() time.Time
}

// NewAuthenticator creates an authenticator and starts its worker.
// A negative OperationTimeout gets the default; zero means no timeout.
// A non-positive UpdateQueueSize gets the default.
func NewAuthenticator(ctx context.Context, repo Repository, config Config) *Authenticator {
	if config.OperationTimeout < 0 {
		config.OperationTimeout = DefaultOperationTimeout
	}
	if config.UpdateQueueSize <= 0 {
		config.UpdateQueueSize = DefaultUpdateQueueSize
	}

	a := &Authenticator{
		repo:             repo,
		appCtx:           ctx,
		lastUsedUpdates:  make(chan lastUsedUpdate, config.UpdateQueueSize),
		shutdownChan:     make(chan struct{}),
		operationTimeout: config.OperationTimeout,
		now:              func() time.Time { return time.Now().UTC() },
	}

	a.wg.Add(1)
	go a.processLastUsedUpdates()

	return a
}

func (a *Authenticator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.operationTimeout == 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.operationTimeout)
}

func (a *Authenticator) processLastUsedUpdates() {
	defer a.wg.Done()

	for {
		select {
		case update := <-a.lastUsedUpdates:
			ctx, cancel := a.withTimeout(a.appCtx)
			if err := a.repo.UpdateLastUsed(ctx, update.keyID, update.timestamp); err != nil {
				slog.WarnContext(ctx, "failed to update API key last_used_at",
					"key_id", update.keyID,
					"error", err)
			}
			cancel()

		case <-a.shutdownChan:
			// Drain with a fresh context: appCtx is usually cancelled by now.
			for {
				select {
				case update := <-a.lastUsedUpdates:
					ctx, cancel := a.withTimeout(context.Background())
					_ = a.repo.UpdateLastUsed(ctx, update.keyID, update.timestamp)
					cancel()
				default:
					return
				}
			}
		}
	}
}

// Shutdown stops the worker after it drained the queue, or when ctx ends.
// It is safe to call more than once.
func (a *Authenticator) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.shutdownOnce.Do(func() {
		close(a.shutdownChan)

		done := make(chan struct{})
		go func() {
			a.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			shutdownErr = fmt.Errorf("shutdown timeout: %w", ctx.Err())
		}
	})
	return shutdownErr
}

// ValidateAPIKey returns the stored key for apiKey. Every failure, including
// a malformed key, is reported as domain.ErrUnauthorized.
func (a *Authenticator) ValidateAPIKey(ctx context.Context, apiKey string) (*domain.APIKey, error) {
	parts, err := keygen.Parse(apiKey)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	key, err := a.repo.FindByShortToken(opCtx, parts.ShortToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !keygen.VerifySecret(parts.Secret, key.LongSecretHash) {
		return nil, domain.ErrUnauthorized
	}

	now := a.now()
	if !key.IsActive || (key.ExpiresAt != nil && key.ExpiresAt.Before(now)) {
		return nil, domain.ErrUnauthorized
	}

	select {
	case a.lastUsedUpdates <- lastUsedUpdate{keyID: key.ID, timestamp: now}:
	default:
		slog.WarnContext(ctx, "dropped last_used_at update due to full queue",
			"key_id", key.ID)
	}

	return key, nil
}

// Authenticate validates apiKey and returns the scope it grants.
func (a *Authenticator) Authenticate(ctx context.Context, apiKey string) (domain.Scope, error) {
	key, err := a.ValidateAPIKey(ctx, apiKey)
	if err != nil {
		return domain.Scope{}, err
	}
	return key.Scope(), nil
}

// CreateParams describes a new API key.
type CreateParams struct {
	KeyType   string
	Service   string
	Version   string
	Name      string
	AccountID string
	Role      domain.Role
	ExpiresAt *time.Time
}

// CreateAPIKey stores a new key and returns the full key. The plain key is
// not recoverable afterwards.
func CreateAPIKey(ctx context.Context, repo Repository, p CreateParams) (string, error) {
	role, err := domain.NewRole(string(p.Role))
	if err != nil {
		return "", err
	}
	if role != domain.RoleAdmin && p.AccountID == "" {
		return "", fmt.Errorf("%w: user keys need an account", domain.ErrValidation)
	}

	parts, err := keygen.Generate(p.KeyType, p.Service, p.Version)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	keyID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key ID: %w", err)
	}

	err = repo.Create(ctx, &domain.APIKey{
		ID:             keyID.String(),
		KeyType:        parts.KeyType,
		Service:        parts.Service,
		Version:        parts.Version,
		ShortToken:     parts.ShortToken,
		LongSecretHash: keygen.HashSecret(parts.Secret),
		Name:           p.Name,
		AccountID:      p.AccountID,
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
		ExpiresAt:      p.ExpiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create API key: %w", err)
	}

	return parts.FullKey, nil
}
