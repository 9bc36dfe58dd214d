package brands

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Repository exposes persistence helpers for brand profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, profile *models.BrandProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BrandProfile, error)
	Update(ctx context.Context, profile *models.BrandProfile) error
	PromoteUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) error
	AddSpend(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	IncrementCampaigns(ctx context.Context, id uuid.UUID) error
	SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error
	Stats(ctx context.Context, brandID uuid.UUID) (StatsRow, error)
}

// StatsRow aggregates the brand dashboard numbers.
type StatsRow struct {
	TotalSpent         decimal.Decimal
	ActiveCampaigns    int64
	CompletedCampaigns int64
	CreatorsHired      int64
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a brands repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, profile *models.BrandProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repositoryImpl) Update(ctx context.Context, profile *models.BrandProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *repositoryImpl) PromoteUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("role", role).Error
}

func (r *repositoryImpl) AddSpend(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.BrandProfile{}).
		Where("id = ?", id).
		UpdateColumn("total_spent", gorm.Expr("total_spent + ?", amount)).Error
}

func (r *repositoryImpl) IncrementCampaigns(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.BrandProfile{}).
		Where("id = ?", id).
		UpdateColumn("total_campaigns", gorm.Expr("total_campaigns + 1")).Error
}

func (r *repositoryImpl) SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.BrandProfile{}).
		Where("id = ?", id).
		UpdateColumn("average_rating", rating.Round(2)).Error
}

func (r *repositoryImpl) Stats(ctx context.Context, brandID uuid.UUID) (StatsRow, error) {
	var row StatsRow

	profile, err := r.GetByID(ctx, brandID)
	if err != nil {
		return row, err
	}
	row.TotalSpent = profile.TotalSpent

	if err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("brand_id = ? AND status IN ?", brandID, []enums.CampaignStatus{enums.CampaignStatusActive, enums.CampaignStatusInProgress}).
		Count(&row.ActiveCampaigns).Error; err != nil {
		return row, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("brand_id = ? AND status = ?", brandID, enums.CampaignStatusCompleted).
		Count(&row.CompletedCampaigns).Error; err != nil {
		return row, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Distinct("creator_id").
		Where("brand_id = ?", brandID).
		Count(&row.CreatorsHired).Error; err != nil {
		return row, err
	}

	return row, nil
}
