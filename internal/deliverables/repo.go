package deliverables

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Repository persists deliverables. Revisions are new rows; reviewed rows
// keep their status and feedback forever.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, deliverable *models.Deliverable) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Deliverable, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Deliverable, error)
	Review(ctx context.Context, id uuid.UUID, to enums.DeliverableStatus, feedback *string, now time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a deliverable repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, deliverable *models.Deliverable) error {
	return r.db.WithContext(ctx).Create(deliverable).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Deliverable, error) {
	var deliverable models.Deliverable
	if err := r.db.WithContext(ctx).First(&deliverable, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &deliverable, nil
}

func (r *repositoryImpl) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Deliverable, error) {
	var rows []models.Deliverable
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("submitted_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// Review resolves a pending deliverable. The pending guard keeps review
// decisions final at the row level.
func (r *repositoryImpl) Review(ctx context.Context, id uuid.UUID, to enums.DeliverableStatus, feedback *string, now time.Time) (int64, error) {
	updates := map[string]any{
		"status":      to,
		"reviewed_at": now,
	}
	if feedback != nil {
		updates["feedback"] = *feedback
	}
	result := r.db.WithContext(ctx).
		Model(&models.Deliverable{}).
		Where("id = ? AND status = ?", id, enums.DeliverableStatusPending).
		UpdateColumns(updates)
	return result.RowsAffected, result.Error
}
