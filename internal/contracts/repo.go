package contracts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

// Repository persists contracts. The unique application_id constraint
// guarantees at most one contract per approved application regardless of
// races on the approval path.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	GetByApplication(ctx context.Context, applicationID uuid.UUID) (*models.Contract, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error)
	SignByCreator(ctx context.Context, id uuid.UUID, now time.Time) (int64, error)
	Complete(ctx context.Context, id uuid.UUID) (int64, error)
	CountOpenByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a contract repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *repositoryImpl) GetByApplication(ctx context.Context, applicationID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	if err := r.db.WithContext(ctx).First(&contract, "application_id = ?", applicationID).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *repositoryImpl) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Contract{}).Where("creator_id = ?", creatorID)
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) ListByBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Contract{}).Where("brand_id = ?", brandID)
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) page(ctx context.Context, query *gorm.DB, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Contract
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

// SignByCreator records the creator signature and opens the contract. The
// pending guard makes a second sign a no-op at the row level.
func (r *repositoryImpl) SignByCreator(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ? AND status = ? AND creator_signed = false", id, enums.ContractStatusPending).
		UpdateColumns(map[string]any{
			"creator_signed":    true,
			"creator_signed_at": now,
			"status":            enums.ContractStatusActive,
			"updated_at":        now,
		})
	return result.RowsAffected, result.Error
}

// Complete settles an active contract after its deliverable is approved.
func (r *repositoryImpl) Complete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ? AND status = ?", id, enums.ContractStatusActive).
		UpdateColumn("status", enums.ContractStatusCompleted)
	return result.RowsAffected, result.Error
}

// CountOpenByCampaign counts contracts that still block campaign completion.
func (r *repositoryImpl) CountOpenByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("campaign_id = ? AND status NOT IN ?", campaignID,
			[]enums.ContractStatus{enums.ContractStatusCompleted, enums.ContractStatusCancelled}).
		Count(&count).Error
	return count, err
}
