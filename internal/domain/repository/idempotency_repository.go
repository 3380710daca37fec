package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key, returning ErrDuplicateKey when the
	// user already holds the same key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Complete records the response of a pending key
	Complete(ctx context.Context, id uuid.UUID, code int, body string, expiresAt time.Time) error
	// Delete releases a key
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes keys that expired before the given moment
	DeleteExpired(ctx context.Context, before time.Time) error
}
