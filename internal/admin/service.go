package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type paymentSums interface {
	SumByStatus(ctx context.Context, status enums.PaymentStatus) (decimal.Decimal, error)
}

// Service defines the admin operations. Role gating happens in the HTTP
// middleware; these assume the caller is already an admin.
type Service interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
	SetCreatorVerification(ctx context.Context, creatorID uuid.UUID, verified bool) error
	SetBrandVerification(ctx context.Context, brandID uuid.UUID, verified bool) error
}

// PlatformStats is the marketplace-wide dashboard summary.
type PlatformStats struct {
	TotalUsers         int64  `json:"total_users"`
	TotalCreators      int64  `json:"total_creators"`
	TotalBrands        int64  `json:"total_brands"`
	TotalCampaigns     int64  `json:"total_campaigns"`
	ActiveCampaigns    int64  `json:"active_campaigns"`
	CompletedCampaigns int64  `json:"completed_campaigns"`
	CompletedPayments  string `json:"completed_payments"`
	PendingPayments    string `json:"pending_payments"`
}

// ServiceParams wires the admin service dependencies.
type ServiceParams struct {
	Repo     Repository
	Payments paymentSums
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	repo     Repository
	payments paymentSums
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the admin surface.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admin repository required")
	}
	if params.Payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments repository required")
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
		payments: params.Payments,
		logg:     params.Logger,
		now:      now,
	}, nil
}

func (s *service) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	counts := []struct {
		dest  *int64
		fetch func(context.Context) (int64, error)
		label string
	}{
		{&stats.TotalUsers, s.repo.CountUsers, "count users"},
		{&stats.TotalCreators, s.repo.CountCreators, "count creators"},
		{&stats.TotalBrands, s.repo.CountBrands, "count brands"},
		{&stats.TotalCampaigns, s.repo.CountCampaigns, "count campaigns"},
	}
	for _, c := range counts {
		value, err := c.fetch(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, c.label)
		}
		*c.dest = value
	}

	active, err := s.repo.CountCampaignsByStatus(ctx, enums.CampaignStatusActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active campaigns")
	}
	stats.ActiveCampaigns = active

	completed, err := s.repo.CountCampaignsByStatus(ctx, enums.CampaignStatusCompleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count completed campaigns")
	}
	stats.CompletedCampaigns = completed

	completedSum, err := s.payments.SumByStatus(ctx, enums.PaymentStatusCompleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum completed payments")
	}
	stats.CompletedPayments = completedSum.StringFixed(2)

	pendingSum, err := s.payments.SumByStatus(ctx, enums.PaymentStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum pending payments")
	}
	stats.PendingPayments = pendingSum.StringFixed(2)

	return stats, nil
}

func (s *service) SetCreatorVerification(ctx context.Context, creatorID uuid.UUID, verified bool) error {
	rows, err := s.repo.SetCreatorVerified(ctx, creatorID, verified, s.now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update creator verification")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "creator profile not found")
	}
	logCtx := s.logg.WithCreatorID(ctx, creatorID.String())
	s.logg.Info(s.logg.WithField(logCtx, "verified", verified), "creator verification updated")
	return nil
}

func (s *service) SetBrandVerification(ctx context.Context, brandID uuid.UUID, verified bool) error {
	rows, err := s.repo.SetBrandVerified(ctx, brandID, verified)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand verification")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "brand profile not found")
	}
	logCtx := s.logg.WithBrandID(ctx, brandID.String())
	s.logg.Info(s.logg.WithField(logCtx, "verified", verified), "brand verification updated")
	return nil
}
