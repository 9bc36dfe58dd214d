package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Campaign is a brand-funded sponsorship drive. Budget is the gross total to
// be split evenly over CreatorsNeeded contracts. CreatorsApproved never
// exceeds CreatorsNeeded; the repository enforces the increment guard.
type Campaign struct {
	ID                    uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BrandID               uuid.UUID            `gorm:"column:brand_id;type:uuid;not null;index"`
	Title                 string               `gorm:"column:title;size:255;not null"`
	Description           *string              `gorm:"column:description"`
	Budget                decimal.Decimal      `gorm:"column:budget;type:numeric(10,2);not null"`
	CreatorsNeeded        int                  `gorm:"column:creators_needed;not null;default:1"`
	CreatorsApproved      int                  `gorm:"column:creators_approved;not null;default:0"`
	Requirements          *string              `gorm:"column:requirements"`
	Niche                 *string              `gorm:"column:niche;size:100"`
	Deadline              *time.Time           `gorm:"column:deadline"`
	Status                enums.CampaignStatus `gorm:"column:status;type:campaign_status;not null;default:'draft'"`
	FundsDeposited        bool                 `gorm:"column:funds_deposited;not null;default:false"`
	StripePaymentIntentID *string              `gorm:"column:stripe_payment_intent_id;size:255"`
	TotalViews            int                  `gorm:"column:total_views;not null;default:0"`
	TotalApplications     int                  `gorm:"column:total_applications;not null;default:0"`
	CreatedAt             time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
