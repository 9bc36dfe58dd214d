package stripewebhook

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/internal/campaigns"
	"github.com/creatorvault/creatorvault-backend/internal/contracts"
	"github.com/creatorvault/creatorvault-backend/internal/escrow"
	"github.com/creatorvault/creatorvault-backend/internal/payments"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

// metadata keys stamped on checkout sessions and payment intents at
// creation time; deliveries without them are acknowledged and skipped.
const (
	metadataType       = "type"
	metadataCampaignID = "campaign_id"
	metadataContractID = "contract_id"

	typeCampaignDeposit = "campaign_deposit"
	typeCreatorPayout   = "creator_payout"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams wires the webhook reconciler dependencies.
type ServiceParams struct {
	Campaigns         campaigns.Repository
	Escrow            escrow.Repository
	Contracts         contracts.Repository
	Payments          payments.Repository
	TransactionRunner txRunner
	Logger            *logger.Logger
}

// Service reconciles provider deliveries against local lifecycle state.
// Every handler converges: replays and out-of-order deliveries land on the
// same rows the first delivery produced.
type Service struct {
	campaigns campaigns.Repository
	escrow    escrow.Repository
	contracts contracts.Repository
	payments  payments.Repository
	txRunner  txRunner
	logg      *logger.Logger
}

// NewService wires the webhook reconciler.
func NewService(params ServiceParams) (*Service, error) {
	if params.Campaigns == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "campaigns repo required")
	}
	if params.Escrow == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "escrow repo required")
	}
	if params.Contracts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "contracts repo required")
	}
	if params.Payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repo required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{
		campaigns: params.Campaigns,
		escrow:    params.Escrow,
		contracts: params.Contracts,
		payments:  params.Payments,
		txRunner:  params.TransactionRunner,
		logg:      params.Logger,
	}, nil
}

// HandleEvent dispatches one verified delivery. Unknown event types and
// events without our metadata are acknowledged without local writes so the
// provider stops retrying them.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session event")
		}
		return s.handleDepositCompleted(ctx, &session)
	case stripe.EventTypePaymentIntentSucceeded:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode payment intent event")
		}
		return s.handlePayoutSucceeded(ctx, &intent)
	case stripe.EventTypePaymentIntentPaymentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode payment intent event")
		}
		return s.handleDepositFailed(ctx, &intent)
	case stripe.EventTypeCheckoutSessionExpired:
		s.logg.Info(ctx, "checkout session expired without payment")
		return nil
	default:
		return nil
	}
}

// handleDepositCompleted is the real-money twin of the simulated activation
// path: record the deposit, open the campaign, hold the escrow. Replays and
// a race with simulated activation both converge on one active campaign and
// one held escrow row.
func (s *Service) handleDepositCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	if session.Metadata[metadataType] != typeCampaignDeposit {
		return nil
	}
	campaignID, err := uuid.Parse(session.Metadata[metadataCampaignID])
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "campaign id missing from session metadata")
	}
	var intentID string
	if session.PaymentIntent != nil {
		intentID = session.PaymentIntent.ID
	}

	ctx = s.logg.WithCampaignID(ctx, campaignID.String())
	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		campaign, err := s.campaigns.WithTx(tx).GetByID(ctx, campaignID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign for deposit")
		}

		if _, err := s.campaigns.WithTx(tx).MarkFunded(ctx, campaignID, intentID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record deposit")
		}

		row := &models.Escrow{
			CampaignID: campaign.ID,
			BrandID:    campaign.BrandID,
			Amount:     campaign.Budget,
			Status:     enums.EscrowStatusHeld,
		}
		if intentID != "" {
			row.StripePaymentIntentID = &intentID
		}
		created, err := s.escrow.WithTx(tx).CreateIfAbsent(ctx, row)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hold escrow")
		}
		if created {
			s.logg.Info(ctx, "campaign deposit reconciled")
		}
		return nil
	})
}

// handlePayoutSucceeded appends the sponsorship ledger row for a contract.
// The (contract, type) key absorbs duplicate deliveries.
func (s *Service) handlePayoutSucceeded(ctx context.Context, intent *stripe.PaymentIntent) error {
	if intent.Metadata[metadataType] != typeCreatorPayout {
		return nil
	}
	contractID, err := uuid.Parse(intent.Metadata[metadataContractID])
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "contract id missing from intent metadata")
	}

	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract for payout")
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
	}
	created, err := s.payments.CreateIfAbsent(ctx, payment)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append payout")
	}
	if created {
		s.logg.Info(s.logg.WithCreatorID(ctx, contract.CreatorID.String()), "creator payout reconciled")
	}
	return nil
}

// handleDepositFailed marks a draft campaign's funding attempt as failed.
// The campaign is not reverted anywhere; it simply never left draft.
func (s *Service) handleDepositFailed(ctx context.Context, intent *stripe.PaymentIntent) error {
	if intent.Metadata[metadataType] != typeCampaignDeposit {
		return nil
	}
	campaignID, err := uuid.Parse(intent.Metadata[metadataCampaignID])
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "campaign id missing from intent metadata")
	}

	if _, err := s.campaigns.MarkFundingFailed(ctx, campaignID, intent.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record failed deposit")
	}
	s.logg.Warn(s.logg.WithCampaignID(ctx, campaignID.String()), "campaign deposit failed")
	return nil
}
