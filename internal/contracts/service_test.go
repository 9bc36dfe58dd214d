package contracts

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/internal/notifications"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

type fakeRepo struct {
	contracts map[uuid.UUID]*models.Contract
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contracts: map[uuid.UUID]*models.Contract{}}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, contract *models.Contract) error {
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	f.contracts[contract.ID] = contract
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	if c, ok := f.contracts[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByApplication(ctx context.Context, applicationID uuid.UUID) (*models.Contract, error) {
	for _, c := range f.contracts {
		if c.ApplicationID == applicationID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error) {
	var rows []models.Contract
	for _, c := range f.contracts {
		if c.CreatorID == creatorID {
			rows = append(rows, *c)
		}
	}
	return rows, nil, nil
}

func (f *fakeRepo) ListByBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Contract, *pagination.Cursor, error) {
	var rows []models.Contract
	for _, c := range f.contracts {
		if c.BrandID == brandID {
			rows = append(rows, *c)
		}
	}
	return rows, nil, nil
}

func (f *fakeRepo) SignByCreator(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	c, ok := f.contracts[id]
	if !ok || c.Status != enums.ContractStatusPending || c.CreatorSigned {
		return 0, nil
	}
	c.CreatorSigned = true
	c.CreatorSignedAt = &now
	c.Status = enums.ContractStatusActive
	return 1, nil
}

func (f *fakeRepo) Complete(ctx context.Context, id uuid.UUID) (int64, error) {
	c, ok := f.contracts[id]
	if !ok || c.Status != enums.ContractStatusActive {
		return 0, nil
	}
	c.Status = enums.ContractStatusCompleted
	return 1, nil
}

func (f *fakeRepo) CountOpenByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64
	for _, c := range f.contracts {
		if c.CampaignID == campaignID &&
			c.Status != enums.ContractStatusCompleted && c.Status != enums.ContractStatusCancelled {
			count++
		}
	}
	return count, nil
}

type fakeBrands struct {
	profiles map[uuid.UUID]*models.BrandProfile
}

func (f *fakeBrands) GetByID(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeNotifier struct {
	sent []notifications.NotifyInput
}

func (f *fakeNotifier) Notify(ctx context.Context, input notifications.NotifyInput) {
	f.sent = append(f.sent, input)
}

func newTestService(t *testing.T, repo *fakeRepo, brands *fakeBrands, n *fakeNotifier) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Brands:   brands,
		Notifier: n,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}}),
		Now:      func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func seedContract(repo *fakeRepo, creatorID, brandID uuid.UUID) *models.Contract {
	contract := &models.Contract{
		ID:            uuid.New(),
		ApplicationID: uuid.New(),
		CampaignID:    uuid.New(),
		CreatorID:     creatorID,
		BrandID:       brandID,
		BrandSigned:   true,
		Status:        enums.ContractStatusPending,
	}
	repo.contracts[contract.ID] = contract
	return contract
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, code, typed.Code())
}

func TestSignActivatesContractAndNotifiesBrand(t *testing.T) {
	creatorID := uuid.New()
	brandID := uuid.New()
	brandUserID := uuid.New()

	repo := newFakeRepo()
	contract := seedContract(repo, creatorID, brandID)
	brands := &fakeBrands{profiles: map[uuid.UUID]*models.BrandProfile{
		brandID: {ID: brandID, UserID: brandUserID},
	}}
	n := &fakeNotifier{}

	svc := newTestService(t, repo, brands, n)

	signed, err := svc.Sign(context.Background(), creatorID, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ContractStatusActive, signed.Status)
	assert.True(t, signed.CreatorSigned)
	require.NotNil(t, signed.CreatorSignedAt)

	require.Len(t, n.sent, 1)
	assert.Equal(t, brandUserID, n.sent[0].UserID)
	assert.Equal(t, enums.NotificationContractSigned, n.sent[0].Type)
}

func TestSignRejectsAlreadySigned(t *testing.T) {
	creatorID := uuid.New()
	repo := newFakeRepo()
	contract := seedContract(repo, creatorID, uuid.New())
	svc := newTestService(t, repo, &fakeBrands{}, &fakeNotifier{})

	_, err := svc.Sign(context.Background(), creatorID, contract.ID)
	require.NoError(t, err)

	_, err = svc.Sign(context.Background(), creatorID, contract.ID)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestSignOwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	contract := seedContract(repo, uuid.New(), uuid.New())
	svc := newTestService(t, repo, &fakeBrands{}, &fakeNotifier{})

	_, err := svc.Sign(context.Background(), uuid.New(), contract.ID)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestSignUnknownContract(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &fakeBrands{}, &fakeNotifier{})

	_, err := svc.Sign(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListForCreator(t *testing.T) {
	creatorID := uuid.New()
	repo := newFakeRepo()
	seedContract(repo, creatorID, uuid.New())
	seedContract(repo, uuid.New(), uuid.New())
	svc := newTestService(t, repo, &fakeBrands{}, &fakeNotifier{})

	rows, _, err := svc.ListForCreator(context.Background(), creatorID, 20, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
