package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles, checked by the RequireRole middleware.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User is an account that works for exactly one Owner. IsOwner marks the
// account that created the tenant; it always has the "owner" role.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'staff'"`
	IsOwner      bool      `gorm:"not null;default:false"`
	WorksFor     uuid.UUID `gorm:"type:uuid;not null;index"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner *Owner `gorm:"foreignKey:WorksFor"`
}
