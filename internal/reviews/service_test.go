package reviews

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
	reviews []*models.Review
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, review *models.Review) error {
	for _, existing := range f.reviews {
		if existing.ContractID == review.ContractID && existing.ReviewerID == review.ReviewerID {
			return &duplicateKeyError{}
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeRepo) ListForReviewee(ctx context.Context, revieweeID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Review, *pagination.Cursor, error) {
	var rows []models.Review
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID && r.IsPublic {
			rows = append(rows, *r)
		}
	}
	return rows, nil, nil
}

func (f *fakeRepo) AverageForReviewee(ctx context.Context, revieweeID uuid.UUID, role enums.ParticipantRole) (decimal.Decimal, error) {
	sum, count := 0, 0
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID && r.RevieweeRole == role {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count))), nil
}

type duplicateKeyError struct{}

func (e *duplicateKeyError) Error() string {
	return "duplicate key value violates unique constraint idx_reviews_contract_reviewer"
}

type fakeContracts struct {
	contracts map[uuid.UUID]*models.Contract
}

func (f *fakeContracts) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	if c, ok := f.contracts[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
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

func (f *fakeCreators) SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error {
	if p, ok := f.profiles[id]; ok {
		p.AverageRating = rating.Round(2)
	}
	return nil
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

func (f *fakeBrands) SetAverageRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error {
	if p, ok := f.profiles[id]; ok {
		p.AverageRating = rating.Round(2)
	}
	return nil
}

type fakeNotifier struct {
	sent []notifications.NotifyInput
}

func (f *fakeNotifier) Notify(ctx context.Context, input notifications.NotifyInput) {
	f.sent = append(f.sent, input)
}

type fixture struct {
	repo     *fakeRepo
	creators *fakeCreators
	brands   *fakeBrands
	notifier *fakeNotifier
	svc      Service

	creatorID   uuid.UUID
	creatorUser uuid.UUID
	brandID     uuid.UUID
	brandUser   uuid.UUID
	contract    *models.Contract
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:        &fakeRepo{},
		notifier:    &fakeNotifier{},
		creatorID:   uuid.New(),
		creatorUser: uuid.New(),
		brandID:     uuid.New(),
		brandUser:   uuid.New(),
	}
	f.creators = &fakeCreators{profiles: map[uuid.UUID]*models.CreatorProfile{
		f.creatorID: {ID: f.creatorID, UserID: f.creatorUser},
	}}
	f.brands = &fakeBrands{profiles: map[uuid.UUID]*models.BrandProfile{
		f.brandID: {ID: f.brandID, UserID: f.brandUser},
	}}
	f.contract = &models.Contract{
		ID:         uuid.New(),
		CampaignID: uuid.New(),
		CreatorID:  f.creatorID,
		BrandID:    f.brandID,
		Status:     enums.ContractStatusCompleted,
	}

	svc, err := NewService(ServiceParams{
		Repo:      f.repo,
		Contracts: &fakeContracts{contracts: map[uuid.UUID]*models.Contract{f.contract.ID: f.contract}},
		Creators:  f.creators,
		Brands:    f.brands,
		Notifier:  f.notifier,
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}}),
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, code, typed.Code())
}

func TestCreateRatesCounterpartAndRefreshesAverage(t *testing.T) {
	f := newFixture(t)

	review, err := f.svc.Create(context.Background(), f.brandID, CreateInput{
		ContractID:   f.contract.ID,
		ReviewerRole: enums.ParticipantBrand,
		Rating:       4,
		Comment:      "solid work",
		IsPublic:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, f.creatorID, review.RevieweeID)
	assert.Equal(t, enums.ParticipantCreator, review.RevieweeRole)

	assert.Equal(t, "4.00", f.creators.profiles[f.creatorID].AverageRating.StringFixed(2))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, f.creatorUser, f.notifier.sent[0].UserID)
	assert.Equal(t, enums.NotificationReviewReceived, f.notifier.sent[0].Type)
}

func TestCreateByCreatorRatesBrand(t *testing.T) {
	f := newFixture(t)

	review, err := f.svc.Create(context.Background(), f.creatorID, CreateInput{
		ContractID:   f.contract.ID,
		ReviewerRole: enums.ParticipantCreator,
		Rating:       5,
		IsPublic:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, f.brandID, review.RevieweeID)
	assert.Equal(t, "5.00", f.brands.profiles[f.brandID].AverageRating.StringFixed(2))
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.brandID, CreateInput{
		ContractID:   f.contract.ID,
		ReviewerRole: enums.ParticipantBrand,
		Rating:       4,
	})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.brandID, CreateInput{
		ContractID:   f.contract.ID,
		ReviewerRole: enums.ParticipantBrand,
		Rating:       2,
	})
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	f := newFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.Create(context.Background(), f.brandID, CreateInput{
			ContractID:   f.contract.ID,
			ReviewerRole: enums.ParticipantBrand,
			Rating:       rating,
		})
		require.Error(t, err)
		assertCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestCreateParticipantOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), uuid.New(), CreateInput{
		ContractID:   f.contract.ID,
		ReviewerRole: enums.ParticipantBrand,
		Rating:       3,
	})
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateRequiresCompletedContract(t *testing.T) {
	f := newFixture(t)
	f.contract.Status = enums.ContractStatusActive

	_, err := f.svc.Create(context.Background(), f.brandID, CreateInput{
		ContractID:   f.contract.ID,
		ReviewerRole: enums.ParticipantBrand,
		Rating:       3,
	})
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeStateConflict)
}
