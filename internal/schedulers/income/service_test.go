package income

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

type fakeCreators struct {
	creators []models.CreatorProfile
	err      error
}

func (f *fakeCreators) ListWithGuaranteedIncome(ctx context.Context) ([]models.CreatorProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.creators, nil
}

type fakePayments struct {
	rows    []*models.Payment
	failFor map[uuid.UUID]error
}

func (f *fakePayments) CreateIfAbsent(ctx context.Context, payment *models.Payment) (bool, error) {
	if err, ok := f.failFor[payment.CreatorID]; ok {
		return false, err
	}
	for _, existing := range f.rows {
		if existing.CreatorID == payment.CreatorID &&
			existing.PeriodKey != nil && payment.PeriodKey != nil &&
			*existing.PeriodKey == *payment.PeriodKey {
			return false, nil
		}
	}
	payment.ID = uuid.New()
	f.rows = append(f.rows, payment)
	return true, nil
}

type fakeNotifier struct {
	sent []notifications.NotifyInput
}

func (f *fakeNotifier) Notify(ctx context.Context, input notifications.NotifyInput) {
	f.sent = append(f.sent, input)
}

func profile(followers int, income string) models.CreatorProfile {
	return models.CreatorProfile{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		Name:             "creator",
		Followers:        followers,
		GuaranteedIncome: decimal.RequireFromString(income),
	}
}

func newService(t *testing.T, creators *fakeCreators, payments *fakePayments, notifier *fakeNotifier) *Service {
	t.Helper()
	service, err := NewService(ServiceParams{
		Creators: creators,
		Payments: payments,
		Notifier: notifier,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}}),
	})
	require.NoError(t, err)
	return service
}

func TestRunMonthlyMintsOneRowPerCreator(t *testing.T) {
	creators := &fakeCreators{creators: []models.CreatorProfile{
		profile(250_000, "2000.00"),
		profile(60_000, "1000.00"),
		profile(12_000, "500.00"),
	}}
	payments := &fakePayments{}
	notifier := &fakeNotifier{}
	service := newService(t, creators, payments, notifier)

	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	processed, err := service.RunMonthly(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)

	require.Len(t, payments.rows, 3)
	for i, row := range payments.rows {
		assert.Equal(t, enums.PaymentTypeGuaranteed, row.Type)
		assert.Equal(t, enums.PaymentStatusPending, row.Status)
		require.NotNil(t, row.PeriodKey)
		assert.Equal(t, "2026-03", *row.PeriodKey)
		require.NotNil(t, row.ScheduledFor)
		assert.Equal(t, period, *row.ScheduledFor)
		assert.True(t, row.PlatformFee.IsZero(), "guaranteed income carries no platform fee")
		assert.True(t, row.NetAmount.Equal(creators.creators[i].GuaranteedIncome))
	}
	assert.Len(t, notifier.sent, 3)
	assert.Equal(t, enums.NotificationPaymentReceived, notifier.sent[0].Type)
}

func TestRunMonthlyIsIdempotentForAPeriod(t *testing.T) {
	creators := &fakeCreators{creators: []models.CreatorProfile{profile(60_000, "1000.00")}}
	payments := &fakePayments{}
	notifier := &fakeNotifier{}
	service := newService(t, creators, payments, notifier)

	period := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	first, err := service.RunMonthly(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	second, err := service.RunMonthly(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, 0, second, "replayed run must report nothing minted")

	assert.Len(t, payments.rows, 1, "replayed run must not mint a second row")
	assert.Len(t, notifier.sent, 1, "skipped rows must not notify again")
}

func TestRunMonthlyMintsFreshRowsInNewPeriod(t *testing.T) {
	creators := &fakeCreators{creators: []models.CreatorProfile{profile(60_000, "1000.00")}}
	payments := &fakePayments{}
	service := newService(t, creators, payments, &fakeNotifier{})

	_, err := service.RunMonthly(context.Background(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = service.RunMonthly(context.Background(), time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, payments.rows, 2)
	assert.Equal(t, "2026-03", *payments.rows[0].PeriodKey)
	assert.Equal(t, "2026-04", *payments.rows[1].PeriodKey)
}

func TestRunMonthlyContinuesPastFailures(t *testing.T) {
	broken := profile(60_000, "1000.00")
	healthy := profile(12_000, "500.00")
	creators := &fakeCreators{creators: []models.CreatorProfile{broken, healthy}}
	payments := &fakePayments{failFor: map[uuid.UUID]error{broken.ID: errors.New("connection reset")}}
	notifier := &fakeNotifier{}
	service := newService(t, creators, payments, notifier)

	processed, err := service.RunMonthly(context.Background(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 creators failed")
	assert.Equal(t, 1, processed)

	require.Len(t, payments.rows, 1, "healthy creator still minted")
	assert.Equal(t, healthy.ID, payments.rows[0].CreatorID)
	assert.Len(t, notifier.sent, 1)
}

func TestRunMonthlyListFailure(t *testing.T) {
	creators := &fakeCreators{err: errors.New("db down")}
	service := newService(t, creators, &fakePayments{}, &fakeNotifier{})

	_, err := service.RunMonthly(context.Background(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list eligible creators")
}
