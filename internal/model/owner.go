package model

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the tenant root: every business row in the system carries an
// OwnerID and is only ever visible to users working for that owner.
type Owner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Phone     *string
	Email     *string
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
