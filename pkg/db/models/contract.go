package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Contract binds an approved application. PaymentAmount, PlatformFee and
// CreatorPayout are frozen at approval time and never recomputed, so historic
// contracts stay intact if the fee policy changes.
type Contract struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ApplicationID   uuid.UUID            `gorm:"column:application_id;type:uuid;not null;unique"`
	CampaignID      uuid.UUID            `gorm:"column:campaign_id;type:uuid;not null;index"`
	CreatorID       uuid.UUID            `gorm:"column:creator_id;type:uuid;not null;index"`
	BrandID         uuid.UUID            `gorm:"column:brand_id;type:uuid;not null;index"`
	Terms           *string              `gorm:"column:terms"`
	PaymentAmount   decimal.Decimal      `gorm:"column:payment_amount;type:numeric(10,2);not null"`
	PlatformFee     decimal.Decimal      `gorm:"column:platform_fee;type:numeric(10,2);not null"`
	CreatorPayout   decimal.Decimal      `gorm:"column:creator_payout;type:numeric(10,2);not null"`
	CreatorSigned   bool                 `gorm:"column:creator_signed;not null;default:false"`
	CreatorSignedAt *time.Time           `gorm:"column:creator_signed_at"`
	BrandSigned     bool                 `gorm:"column:brand_signed;not null;default:false"`
	BrandSignedAt   *time.Time           `gorm:"column:brand_signed_at"`
	Status          enums.ContractStatus `gorm:"column:status;type:contract_status;not null;default:'pending'"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
