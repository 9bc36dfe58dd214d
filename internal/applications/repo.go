package applications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

// Repository persists applications. The unique (campaign_id, creator_id)
// constraint is the source of truth for one-application-per-campaign; the
// service maps the violation to a conflict.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error)
	ResolveIfPending(ctx context.Context, id uuid.UUID, to enums.ApplicationStatus) (int64, error)
	CountPendingByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an application repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *repositoryImpl) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{}).Where("campaign_id = ?", campaignID)
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{}).Where("creator_id = ?", creatorID)
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) page(ctx context.Context, query *gorm.DB, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Application
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

// ResolveIfPending moves a pending application to its terminal status. A zero
// row count means another resolution already landed.
func (r *repositoryImpl) ResolveIfPending(ctx context.Context, id uuid.UUID, to enums.ApplicationStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, enums.ApplicationStatusPending).
		UpdateColumn("status", to)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) CountPendingByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("creator_id = ? AND status = ?", creatorID, enums.ApplicationStatusPending).
		Count(&count).Error
	return count, err
}
