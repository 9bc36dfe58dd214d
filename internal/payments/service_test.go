package payments

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
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

type fakeRepo struct {
	payments map[uuid.UUID]*models.Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{payments: map[uuid.UUID]*models.Payment{}}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) CreateIfAbsent(ctx context.Context, payment *models.Payment) (bool, error) {
	for _, existing := range f.payments {
		if payment.ContractID != nil && existing.ContractID != nil &&
			*existing.ContractID == *payment.ContractID && existing.Type == payment.Type {
			return false, nil
		}
		if payment.PeriodKey != nil && existing.PeriodKey != nil &&
			existing.CreatorID == payment.CreatorID && *existing.PeriodKey == *payment.PeriodKey {
			return false, nil
		}
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments[payment.ID] = payment
	return true, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	if p, ok := f.payments[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Payment, *pagination.Cursor, error) {
	var rows []models.Payment
	for _, p := range f.payments {
		if p.CreatorID == creatorID {
			rows = append(rows, *p)
		}
	}
	return rows, nil, nil
}

func (f *fakeRepo) SumByStatus(ctx context.Context, status enums.PaymentStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.payments {
		if p.Status == status {
			total = total.Add(p.NetAmount)
		}
	}
	return total, nil
}

func (f *fakeRepo) MarkProcessing(ctx context.Context, id uuid.UUID) (int64, error) {
	p, ok := f.payments[id]
	if !ok || p.Status != enums.PaymentStatusPending {
		return 0, nil
	}
	p.Status = enums.PaymentStatusProcessing
	return 1, nil
}

func (f *fakeRepo) MarkCompleted(ctx context.Context, id uuid.UUID, transferID string, now time.Time) (int64, error) {
	p, ok := f.payments[id]
	if !ok || (p.Status != enums.PaymentStatusPending && p.Status != enums.PaymentStatusProcessing) {
		return 0, nil
	}
	p.Status = enums.PaymentStatusCompleted
	p.ProcessedAt = &now
	if transferID != "" {
		p.StripeTransferID = &transferID
	}
	return 1, nil
}

func (f *fakeRepo) MarkFailed(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	p, ok := f.payments[id]
	if !ok || (p.Status != enums.PaymentStatusPending && p.Status != enums.PaymentStatusProcessing) {
		return 0, nil
	}
	p.Status = enums.PaymentStatusFailed
	p.ProcessedAt = &now
	return 1, nil
}

type fakeCreators struct {
	profiles map[uuid.UUID]*models.CreatorProfile
}

func (f *fakeCreators) GetByID(ctx context.Context, id uuid.UUID) (*models.CreatorProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTransfers struct {
	inputs []TransferInput
	err    error
}

func (f *fakeTransfers) CreateTransfer(ctx context.Context, input TransferInput) (string, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return "", f.err
	}
	return "tr_test_123", nil
}

func newTestService(t *testing.T, repo *fakeRepo, creators *fakeCreators, transfers *fakeTransfers) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:      repo,
		Creators:  creators,
		Transfers: transfers,
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}}),
		Now:       func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func seedPayment(repo *fakeRepo, creatorID uuid.UUID, net string) *models.Payment {
	contractID := uuid.New()
	payment := &models.Payment{
		ID:         uuid.New(),
		CreatorID:  creatorID,
		ContractID: &contractID,
		Type:       enums.PaymentTypeSponsorship,
		Amount:     decimal.RequireFromString(net).Mul(decimal.NewFromInt(5)).Div(decimal.NewFromInt(4)),
		NetAmount:  decimal.RequireFromString(net),
		Status:     enums.PaymentStatusPending,
	}
	repo.payments[payment.ID] = payment
	return payment
}

func onboardedCreator(creatorID uuid.UUID) *fakeCreators {
	account := "acct_ready"
	return &fakeCreators{profiles: map[uuid.UUID]*models.CreatorProfile{
		creatorID: {ID: creatorID, StripeAccountID: &account, StripeOnboarded: true},
	}}
}

func TestReleaseTransfersNetAmount(t *testing.T) {
	creatorID := uuid.New()
	repo := newFakeRepo()
	payment := seedPayment(repo, creatorID, "400.00")
	transfers := &fakeTransfers{}

	svc := newTestService(t, repo, onboardedCreator(creatorID), transfers)

	released, err := svc.Release(context.Background(), payment.ID)
	require.NoError(t, err)

	require.Len(t, transfers.inputs, 1)
	assert.Equal(t, "acct_ready", transfers.inputs[0].AccountID)
	assert.Equal(t, int64(40000), transfers.inputs[0].AmountCents)

	assert.Equal(t, enums.PaymentStatusCompleted, released.Status)
	require.NotNil(t, released.StripeTransferID)
	assert.Equal(t, "tr_test_123", *released.StripeTransferID)
	require.NotNil(t, released.ProcessedAt)
}

func TestReleaseRejectsNonPending(t *testing.T) {
	creatorID := uuid.New()
	repo := newFakeRepo()
	payment := seedPayment(repo, creatorID, "400.00")
	payment.Status = enums.PaymentStatusCompleted

	svc := newTestService(t, repo, onboardedCreator(creatorID), &fakeTransfers{})

	_, err := svc.Release(context.Background(), payment.ID)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestReleaseRequiresConnectedAccount(t *testing.T) {
	creatorID := uuid.New()
	repo := newFakeRepo()
	payment := seedPayment(repo, creatorID, "400.00")
	creators := &fakeCreators{profiles: map[uuid.UUID]*models.CreatorProfile{
		creatorID: {ID: creatorID},
	}}
	transfers := &fakeTransfers{}

	svc := newTestService(t, repo, creators, transfers)

	_, err := svc.Release(context.Background(), payment.ID)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeStateConflict)
	assert.Empty(t, transfers.inputs)
	assert.Equal(t, enums.PaymentStatusPending, repo.payments[payment.ID].Status)
}

func TestReleaseMarksFailedOnTransferError(t *testing.T) {
	creatorID := uuid.New()
	repo := newFakeRepo()
	payment := seedPayment(repo, creatorID, "400.00")
	transfers := &fakeTransfers{err: errors.New("stripe down")}

	svc := newTestService(t, repo, onboardedCreator(creatorID), transfers)

	_, err := svc.Release(context.Background(), payment.ID)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeDependency)
	assert.Equal(t, enums.PaymentStatusFailed, repo.payments[payment.ID].Status)
}

func TestReleaseUnknownPayment(t *testing.T) {
	creatorID := uuid.New()
	svc := newTestService(t, newFakeRepo(), onboardedCreator(creatorID), &fakeTransfers{})

	_, err := svc.Release(context.Background(), uuid.New())
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &fakeCreators{profiles: map[uuid.UUID]*models.CreatorProfile{}}, nil)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, code, typed.Code())
}
