package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

var centsPerDollar = decimal.NewFromInt(100)

// creatorAccounts is the slice of the creator repository the payout path
// needs: resolving a ledger row's creator to a connected Stripe account.
type creatorAccounts interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error)
}

// Service exposes the payment ledger and the payout release path.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListForCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Payment, *pagination.Cursor, error)
	Release(ctx context.Context, id uuid.UUID) (*models.Payment, error)
}

// ServiceParams wires the payment service dependencies.
type ServiceParams struct {
	Repo      Repository
	Creators  creatorAccounts
	Transfers TransferClient
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	repo      Repository
	creators  creatorAccounts
	transfers TransferClient
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires payment dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments repository required")
	}
	if params.Creators == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "creator accounts required")
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
		creators:  params.Creators,
		transfers: params.Transfers,
		logg:      params.Logger,
		now:       now,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "payment")
	}
	return payment, nil
}

func (s *service) ListForCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Payment, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListByCreator(ctx, creatorID, limit, cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return rows, next, nil
}

// Release moves a pending row's net amount to the creator's connected
// account. The row is claimed (pending -> processing) before money moves, so
// a concurrent release loses the claim instead of paying twice. A failed
// transfer marks the row failed; the row stays in the ledger as evidence.
func (s *service) Release(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "payment")
	}
	if payment.Status != enums.PaymentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment is not pending").
			WithDetails(map[string]any{"status": payment.Status.String()})
	}

	profile, err := s.creators.GetByID(ctx, payment.CreatorID)
	if err != nil {
		return nil, notFoundOrDependency(err, "creator profile")
	}
	if profile.StripeAccountID == nil || !profile.StripeOnboarded {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "creator has no payout account connected")
	}
	if s.transfers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transfers are not configured")
	}

	claimed, err := s.repo.MarkProcessing(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim payment")
	}
	if claimed == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already claimed")
	}

	ctx = s.logg.WithCreatorID(ctx, payment.CreatorID.String())
	transferID, err := s.transfers.CreateTransfer(ctx, TransferInput{
		AccountID:   *profile.StripeAccountID,
		AmountCents: payment.NetAmount.Mul(centsPerDollar).IntPart(),
		PaymentID:   payment.ID.String(),
		Description: "CreatorVault payout",
	})
	if err != nil {
		s.logg.Error(ctx, "stripe transfer failed", err)
		if _, markErr := s.repo.MarkFailed(ctx, id, s.now()); markErr != nil {
			s.logg.Error(ctx, "marking payment failed after transfer error", markErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transfer")
	}

	if _, err := s.repo.MarkCompleted(ctx, id, transferID, s.now()); err != nil {
		s.logg.Error(ctx, "finalizing payment after transfer", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize payment")
	}
	s.logg.Info(ctx, "payout released")

	payment, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrDependency(err, "payment")
	}
	return payment, nil
}

func notFoundOrDependency(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
