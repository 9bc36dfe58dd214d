package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Repository exposes the cross-entity queries the admin surface needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountUsers(ctx context.Context) (int64, error)
	CountCreators(ctx context.Context) (int64, error)
	CountBrands(ctx context.Context) (int64, error)
	CountCampaignsByStatus(ctx context.Context, status enums.CampaignStatus) (int64, error)
	CountCampaigns(ctx context.Context) (int64, error)
	SetCreatorVerified(ctx context.Context, id uuid.UUID, verified bool, now time.Time) (int64, error)
	SetBrandVerified(ctx context.Context, id uuid.UUID, verified bool) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an admin repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountCreators(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CreatorProfile{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountBrands(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BrandProfile{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountCampaignsByStatus(ctx context.Context, status enums.CampaignStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountCampaigns(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Campaign{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) SetCreatorVerified(ctx context.Context, id uuid.UUID, verified bool, now time.Time) (int64, error) {
	updates := map[string]any{
		"is_verified": verified,
		"updated_at":  now,
	}
	if verified {
		updates["verified_at"] = now
	} else {
		updates["verified_at"] = nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.CreatorProfile{}).
		Where("id = ?", id).
		UpdateColumns(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) SetBrandVerified(ctx context.Context, id uuid.UUID, verified bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BrandProfile{}).
		Where("id = ?", id).
		UpdateColumn("is_verified", verified)
	return result.RowsAffected, result.Error
}
