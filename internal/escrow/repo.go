package escrow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// Repository persists escrow rows. A campaign has at most one escrow; the
// unique campaign_id constraint makes CreateIfAbsent safe to retry.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateIfAbsent(ctx context.Context, row *models.Escrow) (bool, error)
	GetByCampaign(ctx context.Context, campaignID uuid.UUID) (*models.Escrow, error)
	Release(ctx context.Context, campaignID uuid.UUID, now time.Time) (int64, error)
	Refund(ctx context.Context, campaignID uuid.UUID, now time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an escrow repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// CreateIfAbsent inserts the escrow row unless the campaign already has one.
// Returns false when the row already existed.
func (r *repositoryImpl) CreateIfAbsent(ctx context.Context, row *models.Escrow) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "campaign_id"}},
			DoNothing: true,
		}).
		Create(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) GetByCampaign(ctx context.Context, campaignID uuid.UUID) (*models.Escrow, error) {
	var row models.Escrow
	if err := r.db.WithContext(ctx).First(&row, "campaign_id = ?", campaignID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Release flips a held escrow to released. Terminal rows are left alone so
// repeated completion checks stay idempotent.
func (r *repositoryImpl) Release(ctx context.Context, campaignID uuid.UUID, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Escrow{}).
		Where("campaign_id = ? AND status IN ?", campaignID, []enums.EscrowStatus{enums.EscrowStatusHeld, enums.EscrowStatusPartialReleased}).
		UpdateColumns(map[string]any{
			"status":      enums.EscrowStatusReleased,
			"released_at": now,
		})
	return result.RowsAffected, result.Error
}

// Refund flips a held escrow to refunded.
func (r *repositoryImpl) Refund(ctx context.Context, campaignID uuid.UUID, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Escrow{}).
		Where("campaign_id = ? AND status IN ?", campaignID, []enums.EscrowStatus{enums.EscrowStatusHeld, enums.EscrowStatusPartialReleased}).
		UpdateColumns(map[string]any{
			"status":      enums.EscrowStatusRefunded,
			"released_at": now,
		})
	return result.RowsAffected, result.Error
}
