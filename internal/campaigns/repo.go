package campaigns

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

// Repository persists campaigns. Status transitions and the approved-slot
// counter are guarded UPDATEs so concurrent writers cannot skip states or
// overfill a campaign.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	ListActive(ctx context.Context, niche string, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementApplications(ctx context.Context, id uuid.UUID) error
	ApproveSlot(ctx context.Context, id uuid.UUID) (int64, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from []enums.CampaignStatus, to enums.CampaignStatus) (int64, error)
	MarkFunded(ctx context.Context, id uuid.UUID, paymentIntentID string) (int64, error)
	MarkFundingFailed(ctx context.Context, id uuid.UUID, paymentIntentID string) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a campaign repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *repositoryImpl) Update(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

func (r *repositoryImpl) ListActive(ctx context.Context, niche string, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("status = ?", enums.CampaignStatusActive)
	if niche != "" {
		query = query.Where("niche = ?", niche)
	}
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) ListByBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("brand_id = ?", brandID)
	return r.page(ctx, query, limit, cursor)
}

func (r *repositoryImpl) page(ctx context.Context, query *gorm.DB, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Campaign
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

func (r *repositoryImpl) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		UpdateColumn("total_views", gorm.Expr("total_views + 1")).Error
}

func (r *repositoryImpl) IncrementApplications(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		UpdateColumn("total_applications", gorm.Expr("total_applications + 1")).Error
}

// ApproveSlot claims one approved-creator slot. The guard keeps
// creators_approved at or below creators_needed under concurrent approvals;
// a zero row count means the campaign is already full.
func (r *repositoryImpl) ApproveSlot(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ? AND creators_approved < creators_needed", id).
		UpdateColumn("creators_approved", gorm.Expr("creators_approved + 1"))
	return result.RowsAffected, result.Error
}

// TransitionStatus moves a campaign between lifecycle states. The from guard
// makes replayed transitions no-ops rather than corruption.
func (r *repositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, from []enums.CampaignStatus, to enums.CampaignStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("id = ?", id)
	if len(from) > 0 {
		query = query.Where("status IN ?", from)
	}
	result := query.UpdateColumn("status", to)
	return result.RowsAffected, result.Error
}

// MarkFunded records a successful deposit against a draft campaign and
// activates it in the same statement.
func (r *repositoryImpl) MarkFunded(ctx context.Context, id uuid.UUID, paymentIntentID string) (int64, error) {
	updates := map[string]any{
		"funds_deposited": true,
		"status":          enums.CampaignStatusActive,
	}
	if paymentIntentID != "" {
		updates["stripe_payment_intent_id"] = paymentIntentID
	}
	result := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, enums.CampaignStatusDraft).
		UpdateColumns(updates)
	return result.RowsAffected, result.Error
}

// MarkFundingFailed records a failed deposit attempt. The campaign stays in
// draft; a later successful deposit can still activate it.
func (r *repositoryImpl) MarkFundingFailed(ctx context.Context, id uuid.UUID, paymentIntentID string) (int64, error) {
	updates := map[string]any{
		"funds_deposited": false,
	}
	if paymentIntentID != "" {
		updates["stripe_payment_intent_id"] = paymentIntentID
	}
	result := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, enums.CampaignStatusDraft).
		UpdateColumns(updates)
	return result.RowsAffected, result.Error
}
