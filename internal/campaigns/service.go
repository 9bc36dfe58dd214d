package campaigns

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/internal/escrow"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

var (
	minimumBudget  = decimal.NewFromInt(100)
	centsPerDollar = decimal.NewFromInt(100)
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns the campaign half of the sponsorship lifecycle.
type Service interface {
	Create(ctx context.Context, brandID uuid.UUID, input CreateInput) (*models.Campaign, error)
	Update(ctx context.Context, brandID, campaignID uuid.UUID, input UpdateInput) (*models.Campaign, error)
	CreateDepositSession(ctx context.Context, brandID, campaignID uuid.UUID) (string, error)
	Activate(ctx context.Context, brandID, campaignID uuid.UUID) (*models.Campaign, error)
	Cancel(ctx context.Context, brandID, campaignID uuid.UUID) (*models.Campaign, error)
	Complete(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) error
	Get(ctx context.Context, campaignID uuid.UUID) (*models.Campaign, error)
	ListActive(ctx context.Context, niche string, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error)
	ListForBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error)
}

// ServiceParams wires the campaign service dependencies.
type ServiceParams struct {
	Repo     Repository
	Escrow   escrow.Repository
	Tx       txRunner
	Checkout CheckoutClient
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	repo     Repository
	escrow   escrow.Repository
	tx       txRunner
	checkout CheckoutClient
	logg     *logger.Logger
	now      func() time.Time
}

// CreateInput captures a new draft campaign.
type CreateInput struct {
	Title          string
	Description    string
	Budget         decimal.Decimal
	CreatorsNeeded int
	Requirements   string
	Niche          string
	Deadline       *time.Time
}

// UpdateInput captures draft-only edits. Nil means unchanged.
type UpdateInput struct {
	Title          *string
	Description    *string
	Budget         *decimal.Decimal
	CreatorsNeeded *int
	Requirements   *string
	Niche          *string
	Deadline       *time.Time
}

// NewService wires campaign dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "campaigns repository required")
	}
	if params.Escrow == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "escrow repository required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		escrow:   params.Escrow,
		tx:       params.Tx,
		checkout: params.Checkout,
		logg:     params.Logger,
		now:      now,
	}, nil
}

func (s *service) Create(ctx context.Context, brandID uuid.UUID, input CreateInput) (*models.Campaign, error) {
	if brandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if input.Budget.LessThan(minimumBudget) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget below minimum").
			WithDetails(map[string]any{"minimum": minimumBudget.StringFixed(2)})
	}
	if input.CreatorsNeeded < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one creator required")
	}

	campaign := &models.Campaign{
		BrandID:        brandID,
		Title:          title,
		Budget:         input.Budget.Round(2),
		CreatorsNeeded: input.CreatorsNeeded,
		Status:         enums.CampaignStatusDraft,
		Deadline:       input.Deadline,
	}
	if v := strings.TrimSpace(input.Description); v != "" {
		campaign.Description = &v
	}
	if v := strings.TrimSpace(input.Requirements); v != "" {
		campaign.Requirements = &v
	}
	if v := strings.TrimSpace(input.Niche); v != "" {
		campaign.Niche = &v
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create campaign")
	}
	s.logg.Info(s.logg.WithCampaignID(ctx, campaign.ID.String()), "campaign drafted")
	return campaign, nil
}

func (s *service) Update(ctx context.Context, brandID, campaignID uuid.UUID, input UpdateInput) (*models.Campaign, error) {
	campaign, err := s.ownedCampaign(ctx, brandID, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != enums.CampaignStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only draft campaigns can be edited")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
		}
		campaign.Title = title
	}
	if input.Budget != nil {
		if input.Budget.LessThan(minimumBudget) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget below minimum").
				WithDetails(map[string]any{"minimum": minimumBudget.StringFixed(2)})
		}
		campaign.Budget = input.Budget.Round(2)
	}
	if input.CreatorsNeeded != nil {
		if *input.CreatorsNeeded < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one creator required")
		}
		campaign.CreatorsNeeded = *input.CreatorsNeeded
	}
	if input.Description != nil {
		campaign.Description = optionalText(*input.Description)
	}
	if input.Requirements != nil {
		campaign.Requirements = optionalText(*input.Requirements)
	}
	if input.Niche != nil {
		campaign.Niche = optionalText(*input.Niche)
	}
	if input.Deadline != nil {
		campaign.Deadline = input.Deadline
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update campaign")
	}
	return campaign, nil
}

// CreateDepositSession mints a hosted checkout URL for a draft campaign. No
// local state changes here: activation happens when the deposit webhook (or
// the simulated path) confirms the money.
func (s *service) CreateDepositSession(ctx context.Context, brandID, campaignID uuid.UUID) (string, error) {
	campaign, err := s.ownedCampaign(ctx, brandID, campaignID)
	if err != nil {
		return "", err
	}
	if campaign.Status != enums.CampaignStatusDraft {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "campaign is not awaiting funding")
	}
	if campaign.FundsDeposited {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "campaign is already funded")
	}
	if s.checkout == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "checkout is not configured")
	}

	url, err := s.checkout.CreateDepositSession(ctx, DepositSessionInput{
		CampaignID:  campaign.ID.String(),
		Title:       campaign.Title,
		AmountCents: campaign.Budget.Mul(centsPerDollar).IntPart(),
	})
	if err != nil {
		s.logg.Error(ctx, "creating deposit session", err)
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create deposit session")
	}
	return url, nil
}

// Activate is the simulated funding path: it marks the deposit as made and
// opens the campaign without a gateway round trip.
func (s *service) Activate(ctx context.Context, brandID, campaignID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.ownedCampaign(ctx, brandID, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != enums.CampaignStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "campaign is not a draft")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		updated, err := s.repo.WithTx(tx).MarkFunded(ctx, campaign.ID, "")
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate campaign")
		}
		if updated == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "campaign is not a draft")
		}
		_, err = s.escrow.WithTx(tx).CreateIfAbsent(ctx, &models.Escrow{
			CampaignID: campaign.ID,
			BrandID:    campaign.BrandID,
			Amount:     campaign.Budget,
			Status:     enums.EscrowStatusHeld,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hold escrow")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithCampaignID(ctx, campaign.ID.String()), "campaign activated")
	return s.reload(ctx, campaign.ID)
}

func (s *service) Cancel(ctx context.Context, brandID, campaignID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.ownedCampaign(ctx, brandID, campaignID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		updated, err := s.repo.WithTx(tx).TransitionStatus(ctx, campaign.ID,
			[]enums.CampaignStatus{enums.CampaignStatusDraft, enums.CampaignStatusActive},
			enums.CampaignStatusCancelled)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel campaign")
		}
		if updated == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "campaign can no longer be cancelled")
		}
		if _, err := s.escrow.WithTx(tx).Refund(ctx, campaign.ID, s.now()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refund escrow")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithCampaignID(ctx, campaign.ID.String()), "campaign cancelled")
	return s.reload(ctx, campaign.ID)
}

// Complete is called from inside the deliverable-approval transaction once
// every contract on the campaign has settled. Filling all creator slots alone
// never completes a campaign; only finished work does.
func (s *service) Complete(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) error {
	repo := s.repo.WithTx(tx)
	updated, err := repo.TransitionStatus(ctx, campaignID, nil, enums.CampaignStatusCompleted)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete campaign")
	}
	if updated == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
	}
	if _, err := s.escrow.WithTx(tx).Release(ctx, campaignID, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release escrow")
	}
	s.logg.Info(s.logg.WithCampaignID(ctx, campaignID.String()), "campaign completed")
	return nil
}

func (s *service) Get(ctx context.Context, campaignID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, notFoundOrDependency(err, "campaign")
	}
	if err := s.repo.IncrementViews(ctx, campaignID); err != nil {
		s.logg.Warn(s.logg.WithCampaignID(ctx, campaignID.String()), "view counter update failed")
	}
	return campaign, nil
}

func (s *service) ListActive(ctx context.Context, niche string, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListActive(ctx, niche, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}
	return rows, next, nil
}

func (s *service) ListForBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListByBrand(ctx, brandID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}
	return rows, next, nil
}

func (s *service) reload(ctx context.Context, campaignID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, notFoundOrDependency(err, "campaign")
	}
	return campaign, nil
}

func (s *service) ownedCampaign(ctx context.Context, brandID, campaignID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, notFoundOrDependency(err, "campaign")
	}
	if campaign.BrandID != brandID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "campaign belongs to another brand")
	}
	return campaign, nil
}

func optionalText(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
