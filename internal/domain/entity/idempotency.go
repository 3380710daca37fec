package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey caches the response of a mutating request so a client retry
// with the same key replays it instead of booking twice. ResponseCode stays 0
// while the request holding the key is in flight.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_user_key;size:255;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/bookings"
	RequestHash  string    `gorm:"size:64"`           // sha256 of the request body
	ResponseCode int       `gorm:"not null;default:0"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpiredAt checks the key against the given moment
func (i *IdempotencyKey) IsExpiredAt(t time.Time) bool {
	return t.After(i.ExpiresAt)
}

// MatchesRequest reports whether a replay carries the same body as the original
func (i *IdempotencyKey) MatchesRequest(hash string) bool {
	return i.RequestHash == "" || i.RequestHash == hash
}

// IsPending reports whether the request holding the key has not finished yet
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}
