package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// CreatorProfile is the creator side of the marketplace, one per user.
// Tier and GuaranteedIncome are derived from Followers and must always be
// updated together.
type CreatorProfile struct {
	ID                 uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID         `gorm:"column:user_id;type:uuid;not null;unique"`
	Name               string            `gorm:"column:name;size:255;not null"`
	Bio                *string           `gorm:"column:bio"`
	Niche              *string           `gorm:"column:niche;size:100"`
	Followers          int               `gorm:"column:followers;not null;default:0"`
	Tier               enums.CreatorTier `gorm:"column:tier;type:creator_tier;not null;default:'tier1'"`
	GuaranteedIncome   decimal.Decimal   `gorm:"column:guaranteed_income;type:numeric(10,2);not null;default:500.00"`
	OnboardingComplete bool              `gorm:"column:onboarding_complete;not null;default:false"`
	IsVerified         bool              `gorm:"column:is_verified;not null;default:false"`
	VerifiedAt         *time.Time        `gorm:"column:verified_at"`
	AverageRating      decimal.Decimal   `gorm:"column:average_rating;type:numeric(3,2);not null;default:0.00"`
	TotalReviews       int               `gorm:"column:total_reviews;not null;default:0"`
	CompletedCampaigns int               `gorm:"column:completed_campaigns;not null;default:0"`
	StripeAccountID    *string           `gorm:"column:stripe_account_id;size:255"`
	StripeOnboarded    bool              `gorm:"column:stripe_onboarded;not null;default:false"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
