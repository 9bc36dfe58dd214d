package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

// Repository is the append-only payment ledger. Rows are never updated after
// reaching a terminal status; duplicates are absorbed by the two uniqueness
// keys (contract_id, type) and (creator_id, period_key).
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateIfAbsent(ctx context.Context, payment *models.Payment) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Payment, *pagination.Cursor, error)
	SumByStatus(ctx context.Context, status enums.PaymentStatus) (decimal.Decimal, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) (int64, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, transferID string, now time.Time) (int64, error)
	MarkFailed(ctx context.Context, id uuid.UUID, now time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a payments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// CreateIfAbsent appends a ledger row unless one already exists for the same
// idempotence key. Returns false when the insert was absorbed.
func (r *repositoryImpl) CreateIfAbsent(ctx context.Context, payment *models.Payment) (bool, error) {
	conflictColumns := []clause.Column{{Name: "contract_id"}, {Name: "type"}}
	if payment.PeriodKey != nil {
		conflictColumns = []clause.Column{{Name: "creator_id"}, {Name: "period_key"}}
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   conflictColumns,
			DoNothing: true,
		}).
		Create(payment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repositoryImpl) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Payment, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("creator_id = ?", creatorID)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Payment
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

func (r *repositoryImpl) SumByStatus(ctx context.Context, status enums.PaymentStatus) (decimal.Decimal, error) {
	type sumRow struct {
		Total decimal.Decimal
	}
	var row sumRow
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(net_amount), 0) AS total").
		Where("status = ?", status).
		Scan(&row).Error
	return row.Total, err
}

// MarkProcessing claims a pending row before money moves. The status guard
// means only one caller wins a concurrent release.
func (r *repositoryImpl) MarkProcessing(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, enums.PaymentStatusPending).
		UpdateColumn("status", enums.PaymentStatusProcessing)
	return result.RowsAffected, result.Error
}

// MarkCompleted finalizes a pending/processing row. Completed rows are
// immutable: the status guard makes a second call a no-op.
func (r *repositoryImpl) MarkCompleted(ctx context.Context, id uuid.UUID, transferID string, now time.Time) (int64, error) {
	updates := map[string]any{
		"status":       enums.PaymentStatusCompleted,
		"processed_at": now,
	}
	if transferID != "" {
		updates["stripe_transfer_id"] = transferID
	}
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status IN ?", id, []enums.PaymentStatus{enums.PaymentStatusPending, enums.PaymentStatusProcessing}).
		UpdateColumns(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status IN ?", id, []enums.PaymentStatus{enums.PaymentStatusPending, enums.PaymentStatusProcessing}).
		UpdateColumns(map[string]any{
			"status":       enums.PaymentStatusFailed,
			"processed_at": now,
		})
	return result.RowsAffected, result.Error
}
