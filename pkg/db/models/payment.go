package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Payment is an append-only ledger row. Two uniqueness keys make retries and
// duplicate webhook deliveries safe: (contract_id, type) for per-contract
// payouts and (creator_id, period_key) for guaranteed monthly income.
type Payment struct {
	ID               uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID        uuid.UUID           `gorm:"column:creator_id;type:uuid;not null;index;uniqueIndex:idx_payments_creator_period"`
	CampaignID       *uuid.UUID          `gorm:"column:campaign_id;type:uuid"`
	ContractID       *uuid.UUID          `gorm:"column:contract_id;type:uuid;uniqueIndex:idx_payments_contract_type"`
	Type             enums.PaymentType   `gorm:"column:type;type:payment_type;not null;default:'sponsorship';uniqueIndex:idx_payments_contract_type"`
	Amount           decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	PlatformFee      decimal.Decimal     `gorm:"column:platform_fee;type:numeric(10,2);not null;default:0.00"`
	NetAmount        decimal.Decimal     `gorm:"column:net_amount;type:numeric(10,2);not null"`
	Status           enums.PaymentStatus `gorm:"column:status;type:payment_status;not null;default:'pending'"`
	PeriodKey        *string             `gorm:"column:period_key;size:7;uniqueIndex:idx_payments_creator_period"`
	StripeTransferID *string             `gorm:"column:stripe_transfer_id;size:255"`
	ScheduledFor     *time.Time          `gorm:"column:scheduled_for"`
	ProcessedAt      *time.Time          `gorm:"column:processed_at"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
}
