package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BrandProfile is the brand side of the marketplace, one per user.
type BrandProfile struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID       `gorm:"column:user_id;type:uuid;not null;unique"`
	CompanyName        string          `gorm:"column:company_name;size:255;not null"`
	Industry           *string         `gorm:"column:industry;size:100"`
	Website            *string         `gorm:"column:website;size:500"`
	Description        *string         `gorm:"column:description"`
	Logo               *string         `gorm:"column:logo;size:500"`
	OnboardingComplete bool            `gorm:"column:onboarding_complete;not null;default:false"`
	IsVerified         bool            `gorm:"column:is_verified;not null;default:false"`
	AverageRating      decimal.Decimal `gorm:"column:average_rating;type:numeric(3,2);not null;default:0.00"`
	TotalReviews       int             `gorm:"column:total_reviews;not null;default:0"`
	TotalCampaigns     int             `gorm:"column:total_campaigns;not null;default:0"`
	TotalSpent         decimal.Decimal `gorm:"column:total_spent;type:numeric(12,2);not null;default:0.00"`
	StripeCustomerID   *string         `gorm:"column:stripe_customer_id;size:255"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
