package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant identifies the authenticated caller. It is threaded explicitly into
// every service call so repositories can scope queries without reaching for
// ambient request state, and so services stay testable without a simulated
// session.
type Tenant struct {
	UserID  uuid.UUID
	OwnerID uuid.UUID
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
