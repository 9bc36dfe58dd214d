package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Notification is an in-app inbox entry for a user.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Type      enums.NotificationType `gorm:"column:type;type:notification_type;not null"`
	Title     string                 `gorm:"column:title;size:255;not null"`
	Message   *string                `gorm:"column:message"`
	Link      *string                `gorm:"column:link;size:500"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
