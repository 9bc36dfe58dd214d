package creators

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Repository exposes persistence helpers for creator profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, profile *models.CreatorProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CreatorProfile, error)
	Update(ctx context.Context, profile *models.CreatorProfile) error
	UpdateFollowerTier(ctx context.Context, id uuid.UUID, followers int, tier enums.CreatorTier, income decimal.Decimal) error
	SetStripeAccount(ctx context.Context, id uuid.UUID, accountID string) error
	SetStripeOnboarded(ctx context.Context, accountID string, onboarded bool) (int64, error)
	PromoteUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) error
	ListWithGuaranteedIncome(ctx context.Context) ([]models.CreatorProfile, error)
	ListSocialAccounts(ctx context.Context, creatorID uuid.UUID) ([]models.SocialAccount, error)
	AddSocialAccount(ctx context.Context, account *models.SocialAccount) error
	DeleteSocialAccount(ctx context.Context, creatorID, accountID uuid.UUID) (int64, error)
	SumSocialFollowers(ctx context.Context, creatorID uuid.UUID) (int, error)
	IncrementCompletedCampaigns(ctx context.Context, id uuid.UUID) error
	SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error
	Stats(ctx context.Context, creatorID uuid.UUID) (StatsRow, error)
}

// StatsRow aggregates the creator dashboard numbers in one round trip each.
type StatsRow struct {
	TotalEarnings      decimal.Decimal
	PendingEarnings    decimal.Decimal
	CompletedCampaigns int
	ActiveApplications int64
	ActiveContracts    int64
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a creators repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, profile *models.CreatorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repositoryImpl) Update(ctx context.Context, profile *models.CreatorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// UpdateFollowerTier writes followers, tier, and guaranteed income in one
// UPDATE so the three derived fields can never drift apart.
func (r *repositoryImpl) UpdateFollowerTier(ctx context.Context, id uuid.UUID, followers int, tier enums.CreatorTier, income decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.CreatorProfile{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"followers":         followers,
			"tier":              tier,
			"guaranteed_income": income,
			"updated_at":        time.Now().UTC(),
		}).Error
}

func (r *repositoryImpl) SetStripeAccount(ctx context.Context, id uuid.UUID, accountID string) error {
	return r.db.WithContext(ctx).
		Model(&models.CreatorProfile{}).
		Where("id = ? AND stripe_account_id IS NULL", id).
		UpdateColumn("stripe_account_id", accountID).Error
}

func (r *repositoryImpl) SetStripeOnboarded(ctx context.Context, accountID string, onboarded bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CreatorProfile{}).
		Where("stripe_account_id = ?", accountID).
		UpdateColumn("stripe_onboarded", onboarded)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) PromoteUserRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("role", role).Error
}

func (r *repositoryImpl) ListWithGuaranteedIncome(ctx context.Context) ([]models.CreatorProfile, error) {
	var profiles []models.CreatorProfile
	err := r.db.WithContext(ctx).
		Where("guaranteed_income > 0 AND onboarding_complete = true").
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repositoryImpl) ListSocialAccounts(ctx context.Context, creatorID uuid.UUID) ([]models.SocialAccount, error) {
	var accounts []models.SocialAccount
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *repositoryImpl) AddSocialAccount(ctx context.Context, account *models.SocialAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repositoryImpl) DeleteSocialAccount(ctx context.Context, creatorID, accountID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND creator_id = ?", accountID, creatorID).
		Delete(&models.SocialAccount{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) SumSocialFollowers(ctx context.Context, creatorID uuid.UUID) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).
		Model(&models.SocialAccount{}).
		Select("SUM(followers)").
		Where("creator_id = ?", creatorID).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *repositoryImpl) IncrementCompletedCampaigns(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CreatorProfile{}).
		Where("id = ?", id).
		UpdateColumn("completed_campaigns", gorm.Expr("completed_campaigns + 1")).Error
}

func (r *repositoryImpl) SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.CreatorProfile{}).
		Where("id = ?", id).
		UpdateColumn("average_rating", rating.Round(2)).Error
}

func (r *repositoryImpl) Stats(ctx context.Context, creatorID uuid.UUID) (StatsRow, error) {
	var row StatsRow

	profile, err := r.GetByID(ctx, creatorID)
	if err != nil {
		return row, err
	}
	row.CompletedCampaigns = profile.CompletedCampaigns

	type sumRow struct {
		Total decimal.Decimal
	}

	var completed sumRow
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(net_amount), 0) AS total").
		Where("creator_id = ? AND status = ?", creatorID, enums.PaymentStatusCompleted).
		Scan(&completed).Error; err != nil {
		return row, err
	}
	row.TotalEarnings = completed.Total

	var pending sumRow
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(net_amount), 0) AS total").
		Where("creator_id = ? AND status IN ?", creatorID, []enums.PaymentStatus{enums.PaymentStatusPending, enums.PaymentStatusProcessing}).
		Scan(&pending).Error; err != nil {
		return row, err
	}
	row.PendingEarnings = pending.Total

	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("creator_id = ? AND status = ?", creatorID, enums.ApplicationStatusPending).
		Count(&row.ActiveApplications).Error; err != nil {
		return row, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("creator_id = ? AND status = ?", creatorID, enums.ContractStatusActive).
		Count(&row.ActiveContracts).Error; err != nil {
		return row, err
	}

	return row, nil
}
