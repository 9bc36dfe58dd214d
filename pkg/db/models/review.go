package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Review is one side's rating of the counterpart on a completed contract.
// Each participant reviews a contract at most once.
type Review struct {
	ID           uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ContractID   uuid.UUID             `gorm:"column:contract_id;type:uuid;not null;uniqueIndex:idx_reviews_contract_reviewer"`
	CampaignID   uuid.UUID             `gorm:"column:campaign_id;type:uuid;not null"`
	ReviewerID   uuid.UUID             `gorm:"column:reviewer_id;type:uuid;not null;uniqueIndex:idx_reviews_contract_reviewer"`
	ReviewerRole enums.ParticipantRole `gorm:"column:reviewer_role;type:participant_role;not null"`
	RevieweeID   uuid.UUID             `gorm:"column:reviewee_id;type:uuid;not null;index"`
	RevieweeRole enums.ParticipantRole `gorm:"column:reviewee_role;type:participant_role;not null"`
	Rating       int                   `gorm:"column:rating;not null"`
	Comment      *string               `gorm:"column:comment"`
	IsPublic     bool                  `gorm:"column:is_public;not null;default:true"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
}
