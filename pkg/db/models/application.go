package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Application is a creator's bid for a campaign slot. A creator may apply to
// a given campaign at most once (unique (campaign_id, creator_id)).
type Application struct {
	ID           uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignID   uuid.UUID               `gorm:"column:campaign_id;type:uuid;not null;uniqueIndex:idx_applications_campaign_creator"`
	CreatorID    uuid.UUID               `gorm:"column:creator_id;type:uuid;not null;uniqueIndex:idx_applications_campaign_creator"`
	Message      *string                 `gorm:"column:message"`
	ProposedRate *decimal.Decimal        `gorm:"column:proposed_rate;type:numeric(10,2)"`
	Status       enums.ApplicationStatus `gorm:"column:status;type:application_status;not null;default:'pending'"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
