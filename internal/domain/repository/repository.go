package repository

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned when an insert or update violates a unique constraint
var ErrDuplicateKey = errors.New("duplicate key")

// Transactor runs fn inside a database transaction. Repositories called with
// the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
