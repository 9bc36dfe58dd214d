package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// SocialAccount is a linked social media handle contributing to a creator's
// aggregated follower count.
type SocialAccount struct {
	ID         uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID  uuid.UUID            `gorm:"column:creator_id;type:uuid;not null;index"`
	Platform   enums.SocialPlatform `gorm:"column:platform;type:social_platform;not null"`
	Username   string               `gorm:"column:username;size:255;not null"`
	ProfileURL *string              `gorm:"column:profile_url;size:500"`
	Followers  int                  `gorm:"column:followers;not null;default:0"`
	IsVerified bool                 `gorm:"column:is_verified;not null;default:false"`
	VerifiedAt *time.Time           `gorm:"column:verified_at"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
