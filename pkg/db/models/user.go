package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// User is the authentication identity. Profile data lives on the role-specific
// creator/brand profile rows.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OpenID       string         `gorm:"column:open_id;size:64;not null;unique"`
	Name         *string        `gorm:"column:name"`
	Email        *string        `gorm:"column:email;size:320"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null;default:'user'"`
	LastSignedIn time.Time      `gorm:"column:last_signed_in;autoCreateTime"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
