package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Escrow holds a campaign's committed budget. One row per campaign funding
// event; released on completion, refunded on cancellation.
type Escrow struct {
	ID                    uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignID            uuid.UUID          `gorm:"column:campaign_id;type:uuid;not null;unique"`
	BrandID               uuid.UUID          `gorm:"column:brand_id;type:uuid;not null;index"`
	Amount                decimal.Decimal    `gorm:"column:amount;type:numeric(10,2);not null"`
	Status                enums.EscrowStatus `gorm:"column:status;type:escrow_status;not null;default:'held'"`
	StripePaymentIntentID *string            `gorm:"column:stripe_payment_intent_id;size:255"`
	CreatedAt             time.Time          `gorm:"column:created_at;autoCreateTime"`
	ReleasedAt            *time.Time         `gorm:"column:released_at"`
}
