// Package store persists credential records.
//
// Two implementations are provided: MongoUsers for the document store and
// GormUsers for postgres/sqlite. Neither offers partial updates; callers
// mutate a loaded record and Save it back whole. There is no locking, so
// concurrent Saves of the same record resolve as last write wins.
package store

import (
	"context"
	"errors"

	"github.com/hugh/otp-auth/internal/database/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Users is the credential store.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Create inserts a new record, assigning an ID when empty.
	// It fails with ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *models.User) error
	// Save overwrites every field of an existing record.
	Save(ctx context.Context, user *models.User) error
	Ping(ctx context.Context) error
}

// Compile-time interface satisfaction checks
var (
	_ Users = (*GormUsers)(nil)
	_ Users = (*MongoUsers)(nil)
)
