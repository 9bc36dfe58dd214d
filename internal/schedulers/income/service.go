package income

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

const (
	// periodLayout renders the month a guaranteed payment covers; paired
	// with the (creator_id, period_key) unique index it makes the monthly
	// run safe to repeat.
	periodLayout = "2006-01"

	defaultBatchLog = 100
)

type creatorLister interface {
	ListWithGuaranteedIncome(ctx context.Context) ([]models.CreatorProfile, error)
}

type paymentWriter interface {
	CreateIfAbsent(ctx context.Context, payment *models.Payment) (bool, error)
}

type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput)
}

// ServiceParams wires the monthly income scheduler.
type ServiceParams struct {
	Creators creatorLister
	Payments paymentWriter
	Notifier notifier
	Logger   *logger.Logger
	// BatchLog controls how often progress is logged during a run.
	BatchLog int
}

// Service mints one guaranteed-income ledger row per eligible creator per
// month. A crashed or repeated run converges on the same rows.
type Service struct {
	creators creatorLister
	payments paymentWriter
	notifier notifier
	logg     *logger.Logger
	batchLog int
	now      func() time.Time
}

// NewService builds the guaranteed income scheduler.
func NewService(params ServiceParams) (*Service, error) {
	if params.Creators == nil {
		return nil, fmt.Errorf("creators repository required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	batchLog := params.BatchLog
	if batchLog <= 0 {
		batchLog = defaultBatchLog
	}
	return &Service{
		creators: params.Creators,
		payments: params.Payments,
		notifier: params.Notifier,
		logg:     params.Logger,
		batchLog: batchLog,
		now:      time.Now,
	}, nil
}

// RunMonthly mints the guaranteed income rows for the month containing
// period and returns how many rows this run created. One failed creator
// does not stop the run; the next run picks up whatever this one missed.
func (s *Service) RunMonthly(ctx context.Context, period time.Time) (int, error) {
	periodStart := time.Date(period.UTC().Year(), period.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	periodKey := periodStart.Format(periodLayout)
	runCtx := s.logg.WithField(ctx, "period", periodKey)

	creators, err := s.creators.ListWithGuaranteedIncome(runCtx)
	if err != nil {
		return 0, fmt.Errorf("list eligible creators: %w", err)
	}
	s.logg.Info(s.logg.WithField(runCtx, "eligible", len(creators)), "guaranteed income run starting")

	var minted, skipped, failed int
	for i, creator := range creators {
		created, err := s.mint(runCtx, creator, periodKey, periodStart)
		if err != nil {
			failed++
			s.logg.Error(s.logg.WithCreatorID(runCtx, creator.ID.String()), "guaranteed income payment failed", err)
			continue
		}
		if created {
			minted++
		} else {
			skipped++
		}
		if (i+1)%s.batchLog == 0 {
			s.logg.Info(s.logg.WithField(runCtx, "processed", i+1), "guaranteed income run progress")
		}
	}

	summaryCtx := s.logg.WithFields(runCtx, map[string]any{
		"minted":  minted,
		"skipped": skipped,
		"failed":  failed,
	})
	if failed > 0 {
		s.logg.Warn(summaryCtx, "guaranteed income run finished with failures")
		return minted, fmt.Errorf("guaranteed income run: %d of %d creators failed", failed, len(creators))
	}
	s.logg.Info(summaryCtx, "guaranteed income run complete")
	return minted, nil
}

func (s *Service) mint(ctx context.Context, creator models.CreatorProfile, periodKey string, periodStart time.Time) (bool, error) {
	key := periodKey
	scheduledFor := periodStart
	payment := &models.Payment{
		CreatorID:    creator.ID,
		Type:         enums.PaymentTypeGuaranteed,
		Amount:       creator.GuaranteedIncome,
		PlatformFee:  decimal.Zero,
		NetAmount:    creator.GuaranteedIncome,
		Status:       enums.PaymentStatusPending,
		PeriodKey:    &key,
		ScheduledFor: &scheduledFor,
	}
	created, err := s.payments.CreateIfAbsent(ctx, payment)
	if err != nil {
		return false, err
	}
	if created && s.notifier != nil {
		s.notifier.Notify(ctx, notifications.NotifyInput{
			UserID:  creator.UserID,
			Type:    enums.NotificationPaymentReceived,
			Title:   "Guaranteed income scheduled",
			Message: fmt.Sprintf("Your guaranteed income of $%s for %s is scheduled.", creator.GuaranteedIncome.StringFixed(2), periodKey),
			Link:    "/payments",
		})
	}
	return created, nil
}
