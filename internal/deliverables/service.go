package deliverables

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/internal/applications"
	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/contracts"
	"github.com/creatorvault/creatorvault-backend/internal/creators"
	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/internal/payments"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput)
}

// campaignCompleter is the slice of the campaign service the settlement path
// needs: finishing a campaign inside the approval transaction.
type campaignCompleter interface {
	Complete(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) error
}

// Service owns deliverable review, which is where the sponsorship money
// actually settles: approving content completes the contract, mints the
// payout ledger row, and can finish the whole campaign.
type Service interface {
	Submit(ctx context.Context, creatorID uuid.UUID, input SubmitInput) (*models.Deliverable, error)
	Approve(ctx context.Context, brandID, deliverableID uuid.UUID) (*models.Deliverable, error)
	Reject(ctx context.Context, brandID, deliverableID uuid.UUID, feedback string) (*models.Deliverable, error)
	RequestRevision(ctx context.Context, brandID, deliverableID uuid.UUID, feedback string) (*models.Deliverable, error)
	ListForApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Deliverable, error)
}

// ServiceParams wires the deliverable service dependencies.
type ServiceParams struct {
	Repo         Repository
	Applications applications.Repository
	Contracts    contracts.Repository
	Campaigns    campaignCompleter
	Payments     payments.Repository
	Creators     creators.Repository
	Brands       brands.Repository
	Tx           txRunner
	Notifier     notifier
	Logger       *logger.Logger
	Now          func() time.Time
}

type service struct {
	repo         Repository
	applications applications.Repository
	contracts    contracts.Repository
	campaigns    campaignCompleter
	payments     payments.Repository
	creators     creators.Repository
	brands       brands.Repository
	tx           txRunner
	notifier     notifier
	logg         *logger.Logger
	now          func() time.Time
}

// SubmitInput captures one piece of submitted content.
type SubmitInput struct {
	ApplicationID uuid.UUID
	Link          string
	Description   string
}

// NewService wires deliverable dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "deliverables repository required")
	}
	if params.Applications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "applications repository required")
	}
	if params.Contracts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contracts repository required")
	}
	if params.Campaigns == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "campaigns service required")
	}
	if params.Payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments repository required")
	}
	if params.Creators == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "creators repository required")
	}
	if params.Brands == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "brands repository required")
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
		repo:         params.Repo,
		applications: params.Applications,
		contracts:    params.Contracts,
		campaigns:    params.Campaigns,
		payments:     params.Payments,
		creators:     params.Creators,
		brands:       params.Brands,
		tx:           params.Tx,
		notifier:     params.Notifier,
		logg:         params.Logger,
		now:          now,
	}, nil
}

// Submit files content against an approved application. Resubmission after a
// rejection or revision request is a fresh row; the reviewed rows stay.
func (s *service) Submit(ctx context.Context, creatorID uuid.UUID, input SubmitInput) (*models.Deliverable, error) {
	link := strings.TrimSpace(input.Link)
	if link == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content link required")
	}

	application, err := s.applications.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, notFoundOrDependency(err, "application")
	}
	if application.CreatorID != creatorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "application belongs to another creator")
	}
	if application.Status != enums.ApplicationStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "application is not approved")
	}
	contract, err := s.contracts.GetByApplication(ctx, application.ID)
	if err != nil {
		return nil, notFoundOrDependency(err, "contract")
	}

	deliverable := &models.Deliverable{
		ApplicationID: application.ID,
		Link:          link,
		Status:        enums.DeliverableStatusPending,
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		deliverable.Description = &description
	}
	if err := s.repo.Create(ctx, deliverable); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create deliverable")
	}

	s.notifyBrand(ctx, contract.BrandID, notifications.NotifyInput{
		Type:    enums.NotificationDeliverableSubmitted,
		Title:   "Deliverable submitted",
		Message: "A creator submitted content for review.",
		Link:    "/deliverables/" + deliverable.ID.String(),
	})
	return deliverable, nil
}

// Approve settles the contract behind the deliverable in one transaction:
// the deliverable and contract reach their terminal states, the sponsorship
// payout is minted on the (contract, type) idempotence key with the frozen
// contract amounts, the brand's spend and the creator's completed-campaign
// counters move, and, when this was the last open contract, the campaign
// completes and its escrow releases.
func (s *service) Approve(ctx context.Context, brandID, deliverableID uuid.UUID) (*models.Deliverable, error) {
	deliverable, contract, err := s.reviewable(ctx, brandID, deliverableID)
	if err != nil {
		return nil, err
	}
	if contract.Status != enums.ContractStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "contract is not active").
			WithDetails(map[string]any{"status": contract.Status.String()})
	}

	now := s.now()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		reviewed, err := s.repo.WithTx(tx).Review(ctx, deliverable.ID, enums.DeliverableStatusApproved, nil, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve deliverable")
		}
		if reviewed == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "deliverable is already reviewed")
		}

		completed, err := s.contracts.WithTx(tx).Complete(ctx, contract.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete contract")
		}
		if completed == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "contract is not active")
		}

		payment := &models.Payment{
			CreatorID:   contract.CreatorID,
			CampaignID:  &contract.CampaignID,
			ContractID:  &contract.ID,
			Type:        enums.PaymentTypeSponsorship,
			Amount:      contract.PaymentAmount,
			PlatformFee: contract.PlatformFee,
			NetAmount:   contract.CreatorPayout,
			Status:      enums.PaymentStatusCompleted,
			ProcessedAt: &now,
		}
		if _, err := s.payments.WithTx(tx).CreateIfAbsent(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mint payout")
		}

		if err := s.creators.WithTx(tx).IncrementCompletedCampaigns(ctx, contract.CreatorID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update creator counters")
		}
		if err := s.brands.WithTx(tx).AddSpend(ctx, contract.BrandID, contract.PaymentAmount); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand spend")
		}

		open, err := s.contracts.WithTx(tx).CountOpenByCampaign(ctx, contract.CampaignID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open contracts")
		}
		if open == 0 {
			if err := s.campaigns.Complete(ctx, tx, contract.CampaignID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithCampaignID(ctx, contract.CampaignID.String())
	s.logg.Info(ctx, "deliverable approved")
	s.notifyCreator(ctx, contract.CreatorID, notifications.NotifyInput{
		Type:    enums.NotificationDeliverableApproved,
		Title:   "Deliverable approved",
		Message: "Your content was approved and your payout of $" + contract.CreatorPayout.StringFixed(2) + " is on its way.",
		Link:    "/payments",
	})

	return s.repo.GetByID(ctx, deliverable.ID)
}

// Reject closes a pending deliverable with feedback. The creator can submit
// a fresh deliverable afterwards.
func (s *service) Reject(ctx context.Context, brandID, deliverableID uuid.UUID, feedback string) (*models.Deliverable, error) {
	return s.review(ctx, brandID, deliverableID, enums.DeliverableStatusRejected, feedback,
		enums.NotificationDeliverableRejected, "Deliverable rejected")
}

// RequestRevision asks for changes without closing the submission history.
func (s *service) RequestRevision(ctx context.Context, brandID, deliverableID uuid.UUID, feedback string) (*models.Deliverable, error) {
	return s.review(ctx, brandID, deliverableID, enums.DeliverableStatusRevisionRequested, feedback,
		enums.NotificationDeliverableRejected, "Revision requested")
}

func (s *service) review(ctx context.Context, brandID, deliverableID uuid.UUID, to enums.DeliverableStatus, feedback string, notifyType enums.NotificationType, title string) (*models.Deliverable, error) {
	deliverable, contract, err := s.reviewable(ctx, brandID, deliverableID)
	if err != nil {
		return nil, err
	}

	var feedbackPtr *string
	if trimmed := strings.TrimSpace(feedback); trimmed != "" {
		feedbackPtr = &trimmed
	}
	reviewed, err := s.repo.Review(ctx, deliverable.ID, to, feedbackPtr, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "review deliverable")
	}
	if reviewed == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "deliverable is already reviewed")
	}

	s.notifyCreator(ctx, contract.CreatorID, notifications.NotifyInput{
		Type:    notifyType,
		Title:   title,
		Message: "The brand reviewed your content. Check the feedback and submit again.",
		Link:    "/deliverables/" + deliverable.ID.String(),
	})
	return s.repo.GetByID(ctx, deliverable.ID)
}

// reviewable loads the deliverable and its contract and checks brand
// ownership and pending status.
func (s *service) reviewable(ctx context.Context, brandID, deliverableID uuid.UUID) (*models.Deliverable, *models.Contract, error) {
	deliverable, err := s.repo.GetByID(ctx, deliverableID)
	if err != nil {
		return nil, nil, notFoundOrDependency(err, "deliverable")
	}
	contract, err := s.contracts.GetByApplication(ctx, deliverable.ApplicationID)
	if err != nil {
		return nil, nil, notFoundOrDependency(err, "contract")
	}
	if contract.BrandID != brandID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "deliverable belongs to another brand's campaign")
	}
	if deliverable.Status != enums.DeliverableStatusPending {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "deliverable is already reviewed").
			WithDetails(map[string]any{"status": deliverable.Status.String()})
	}
	return deliverable, contract, nil
}

func (s *service) ListForApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Deliverable, error) {
	rows, err := s.repo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deliverables")
	}
	return rows, nil
}

func (s *service) notifyBrand(ctx context.Context, brandID uuid.UUID, input notifications.NotifyInput) {
	if s.notifier == nil {
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

func (s *service) notifyCreator(ctx context.Context, creatorID uuid.UUID, input notifications.NotifyInput) {
	if s.notifier == nil {
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
