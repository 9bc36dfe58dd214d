package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/internal/campaigns"
	"github.com/creatorvault/creatorvault-backend/internal/contracts"
	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/pkg/db"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
	"github.com/creatorvault/creatorvault-backend/pkg/payouts"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput)
}

type brandUsers interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error)
}

type creatorUsers interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error)
}

// Service owns the application half of the sponsorship lifecycle: a creator
// bids, the brand resolves the bid, and an approval freezes the money into a
// contract.
type Service interface {
	Apply(ctx context.Context, creatorID uuid.UUID, input ApplyInput) (*models.Application, error)
	Approve(ctx context.Context, brandID, applicationID uuid.UUID) (*models.Contract, error)
	Reject(ctx context.Context, brandID, applicationID uuid.UUID) (*models.Application, error)
	Get(ctx context.Context, applicationID uuid.UUID) (*models.Application, error)
	ListForCampaign(ctx context.Context, brandID, campaignID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error)
	ListForCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error)
}

// ServiceParams wires the application service dependencies.
type ServiceParams struct {
	Repo      Repository
	Campaigns campaigns.Repository
	Contracts contracts.Repository
	Brands    brandUsers
	Creators  creatorUsers
	Tx        txRunner
	Notifier  notifier
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	repo      Repository
	campaigns campaigns.Repository
	contracts contracts.Repository
	brands    brandUsers
	creators  creatorUsers
	tx        txRunner
	notifier  notifier
	logg      *logger.Logger
	now       func() time.Time
}

// ApplyInput captures a creator's bid.
type ApplyInput struct {
	CampaignID   uuid.UUID
	Message      string
	ProposedRate *decimal.Decimal
}

// NewService wires application dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "applications repository required")
	}
	if params.Campaigns == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "campaigns repository required")
	}
	if params.Contracts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contracts repository required")
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
		repo:      params.Repo,
		campaigns: params.Campaigns,
		contracts: params.Contracts,
		brands:    params.Brands,
		creators:  params.Creators,
		tx:        params.Tx,
		notifier:  params.Notifier,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// Apply files a bid against an active campaign. The unique
// (campaign, creator) constraint turns a repeat bid into a conflict instead
// of a second row.
func (s *service) Apply(ctx context.Context, creatorID uuid.UUID, input ApplyInput) (*models.Application, error) {
	if creatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id required")
	}
	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return nil, notFoundOrDependency(err, "campaign")
	}
	if campaign.Status != enums.CampaignStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "campaign is not accepting applications").
			WithDetails(map[string]any{"status": campaign.Status.String()})
	}

	application := &models.Application{
		CampaignID:   campaign.ID,
		CreatorID:    creatorID,
		ProposedRate: input.ProposedRate,
		Status:       enums.ApplicationStatusPending,
	}
	if message := strings.TrimSpace(input.Message); message != "" {
		application.Message = &message
	}

	if err := s.repo.Create(ctx, application); err != nil {
		if db.IsUniqueViolation(err, "idx_applications_campaign_creator") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "creator already applied to this campaign")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}
	if err := s.campaigns.IncrementApplications(ctx, campaign.ID); err != nil {
		s.logg.Warn(ctx, "application counter update failed")
	}

	s.notifyBrandUser(ctx, campaign.BrandID, notifications.NotifyInput{
		Type:    enums.NotificationApplicationReceived,
		Title:   "New application",
		Message: "A creator applied to " + campaign.Title + ".",
		Link:    "/campaigns/" + campaign.ID.String() + "/applications",
	})
	return application, nil
}

// Approve resolves a pending application and freezes the contract money in
// one transaction: per-slot amount is budget over creators needed at this
// moment, split by the platform fee policy, never recomputed afterwards. The
// slot counter increment is guarded so a full campaign rejects the approval,
// and the contract's application_id uniqueness backstops any race that slips
// past the pending-status guard.
func (s *service) Approve(ctx context.Context, brandID, applicationID uuid.UUID) (*models.Contract, error) {
	application, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOrDependency(err, "application")
	}
	campaign, err := s.campaigns.GetByID(ctx, application.CampaignID)
	if err != nil {
		return nil, notFoundOrDependency(err, "campaign")
	}
	if campaign.BrandID != brandID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "campaign belongs to another brand")
	}
	if application.Status != enums.ApplicationStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "application is already resolved").
			WithDetails(map[string]any{"status": application.Status.String()})
	}
	if campaign.Status != enums.CampaignStatusActive && campaign.Status != enums.CampaignStatusInProgress {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "campaign is not open for approvals")
	}

	now := s.now()
	split := payouts.Split(campaign.Budget.Div(decimal.NewFromInt(int64(campaign.CreatorsNeeded))))
	contract := &models.Contract{
		ApplicationID: application.ID,
		CampaignID:    campaign.ID,
		CreatorID:     application.CreatorID,
		BrandID:       campaign.BrandID,
		PaymentAmount: split.Gross,
		PlatformFee:   split.PlatformFee,
		CreatorPayout: split.CreatorPayout,
		BrandSigned:   true,
		BrandSignedAt: &now,
		Status:        enums.ContractStatusPending,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		resolved, err := s.repo.WithTx(tx).ResolveIfPending(ctx, application.ID, enums.ApplicationStatusApproved)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve application")
		}
		if resolved == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "application is already resolved")
		}

		claimed, err := s.campaigns.WithTx(tx).ApproveSlot(ctx, campaign.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim campaign slot")
		}
		if claimed == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "campaign has no open slots")
		}

		if err := s.contracts.WithTx(tx).Create(ctx, contract); err != nil {
			if db.IsUniqueViolation(err, "contracts_application_id_key") {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "application already has a contract")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contract")
		}

		if _, err := s.campaigns.WithTx(tx).TransitionStatus(ctx, campaign.ID,
			[]enums.CampaignStatus{enums.CampaignStatusActive}, enums.CampaignStatusInProgress); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "move campaign in progress")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithCampaignID(ctx, campaign.ID.String()), "application approved")
	s.notifyCreatorUser(ctx, application.CreatorID, notifications.NotifyInput{
		Type:    enums.NotificationApplicationApproved,
		Title:   "Application approved",
		Message: "Your application for " + campaign.Title + " was approved. Review and sign your contract.",
		Link:    "/contracts/" + contract.ID.String(),
	})
	return contract, nil
}

// Reject resolves a pending application without touching campaign counters.
func (s *service) Reject(ctx context.Context, brandID, applicationID uuid.UUID) (*models.Application, error) {
	application, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOrDependency(err, "application")
	}
	campaign, err := s.campaigns.GetByID(ctx, application.CampaignID)
	if err != nil {
		return nil, notFoundOrDependency(err, "campaign")
	}
	if campaign.BrandID != brandID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "campaign belongs to another brand")
	}

	resolved, err := s.repo.ResolveIfPending(ctx, application.ID, enums.ApplicationStatusRejected)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject application")
	}
	if resolved == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "application is already resolved")
	}

	s.notifyCreatorUser(ctx, application.CreatorID, notifications.NotifyInput{
		Type:    enums.NotificationApplicationRejected,
		Title:   "Application rejected",
		Message: "Your application for " + campaign.Title + " was not selected.",
		Link:    "/campaigns",
	})

	application.Status = enums.ApplicationStatusRejected
	return application, nil
}

func (s *service) Get(ctx context.Context, applicationID uuid.UUID) (*models.Application, error) {
	application, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOrDependency(err, "application")
	}
	return application, nil
}

func (s *service) ListForCampaign(ctx context.Context, brandID, campaignID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, nil, notFoundOrDependency(err, "campaign")
	}
	if campaign.BrandID != brandID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "campaign belongs to another brand")
	}
	rows, next, err := s.repo.ListByCampaign(ctx, campaignID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}
	return rows, next, nil
}

func (s *service) ListForCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Application, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListByCreator(ctx, creatorID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}
	return rows, next, nil
}

func (s *service) notifyBrandUser(ctx context.Context, brandID uuid.UUID, input notifications.NotifyInput) {
	if s.notifier == nil || s.brands == nil {
		return
	}
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		s.logg.Warn(ctx, "resolving brand for notification failed")
		return
	}
	input.UserID = brand.UserID
	s.notifier.Notify(ctx, input)
}

func (s *service) notifyCreatorUser(ctx context.Context, creatorID uuid.UUID, input notifications.NotifyInput) {
	if s.notifier == nil || s.creators == nil {
		return
	}
	creator, err := s.creators.GetByID(ctx, creatorID)
	if err != nil {
		s.logg.Warn(ctx, "resolving creator for notification failed")
		return
	}
	input.UserID = creator.UserID
	s.notifier.Notify(ctx, input)
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
