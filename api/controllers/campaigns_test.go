package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/creatorvault/creatorvault-backend/api/middleware"

	"github.com/creatorvault/creatorvault-backend/internal/brands"
	"github.com/creatorvault/creatorvault-backend/internal/campaigns"
	"github.com/creatorvault/creatorvault-backend/pkg/db/models"
	pkgerrors "github.com/creatorvault/creatorvault-backend/pkg/errors"
	"github.com/creatorvault/creatorvault-backend/pkg/pagination"
)

type fakeBrandService struct {
	profile *models.BrandProfile
}

func (f *fakeBrandService) Onboard(ctx context.Context, input brands.OnboardInput) (*models.BrandProfile, error) {
	return f.profile, nil
}

func (f *fakeBrandService) Get(ctx context.Context, id uuid.UUID) (*models.BrandProfile, error) {
	return f.profile, nil
}

func (f *fakeBrandService) GetByUser(ctx context.Context, userID uuid.UUID) (*models.BrandProfile, error) {
	if f.profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand profile not found")
	}
	return f.profile, nil
}

func (f *fakeBrandService) UpdateProfile(ctx context.Context, userID uuid.UUID, input brands.UpdateInput) (*models.BrandProfile, error) {
	return f.profile, nil
}

func (f *fakeBrandService) Stats(ctx context.Context, userID uuid.UUID) (*brands.StatsResult, error) {
	return &brands.StatsResult{}, nil
}

type fakeCampaignService struct {
	createBrandID uuid.UUID
	createInput   campaigns.CreateInput
	created       *models.Campaign
	niche         string
	listLimit     int
	err           error
}

func (f *fakeCampaignService) Create(ctx context.Context, brandID uuid.UUID, input campaigns.CreateInput) (*models.Campaign, error) {
	f.createBrandID = brandID
	f.createInput = input
	return f.created, f.err
}

func (f *fakeCampaignService) Update(ctx context.Context, brandID, campaignID uuid.UUID, input campaigns.UpdateInput) (*models.Campaign, error) {
	return f.created, f.err
}

func (f *fakeCampaignService) CreateDepositSession(ctx context.Context, brandID, campaignID uuid.UUID) (string, error) {
	return "https://checkout.stripe.test/session", f.err
}

func (f *fakeCampaignService) Activate(ctx context.Context, brandID, campaignID uuid.UUID) (*models.Campaign, error) {
	return f.created, f.err
}

func (f *fakeCampaignService) Cancel(ctx context.Context, brandID, campaignID uuid.UUID) (*models.Campaign, error) {
	return f.created, f.err
}

func (f *fakeCampaignService) Complete(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) error {
	return f.err
}

func (f *fakeCampaignService) Get(ctx context.Context, campaignID uuid.UUID) (*models.Campaign, error) {
	return f.created, f.err
}

func (f *fakeCampaignService) ListActive(ctx context.Context, niche string, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error) {
	f.niche = niche
	f.listLimit = limit
	return []models.Campaign{}, nil, f.err
}

func (f *fakeCampaignService) ListForBrand(ctx context.Context, brandID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Campaign, *pagination.Cursor, error) {
	return []models.Campaign{}, nil, f.err
}

func TestCampaignCreate(t *testing.T) {
	brandID := uuid.New()
	brandSvc := &fakeBrandService{profile: &models.BrandProfile{ID: brandID}}
	svc := &fakeCampaignService{created: &models.Campaign{ID: uuid.New()}}
	handler := CampaignCreate(svc, brandSvc, testLogger())

	body := `{"title":"Spring launch","budget":"2500.00","creators_needed":3,"niche":"fitness"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.createBrandID != brandID {
		t.Fatalf("expected brand id %s, got %s", brandID, svc.createBrandID)
	}
	if !svc.createInput.Budget.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("unexpected budget %s", svc.createInput.Budget)
	}
	if svc.createInput.CreatorsNeeded != 3 {
		t.Fatalf("unexpected creators needed %d", svc.createInput.CreatorsNeeded)
	}
}

func TestCampaignCreateRejectsBadBudget(t *testing.T) {
	brandSvc := &fakeBrandService{profile: &models.BrandProfile{ID: uuid.New()}}
	handler := CampaignCreate(&fakeCampaignService{}, brandSvc, testLogger())

	body := `{"title":"Spring launch","budget":"lots","creators_needed":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestCampaignCreateWithoutBrandProfile(t *testing.T) {
	handler := CampaignCreate(&fakeCampaignService{}, &fakeBrandService{}, testLogger())

	body := `{"title":"Spring launch","budget":"2500.00","creators_needed":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestCampaignListTrimsNiche(t *testing.T) {
	svc := &fakeCampaignService{}
	handler := CampaignList(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns?niche=%20fitness%20&limit=5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.niche != "fitness" {
		t.Fatalf("expected trimmed niche, got %q", svc.niche)
	}
	if svc.listLimit != 5 {
		t.Fatalf("expected limit 5, got %d", svc.listLimit)
	}

	var envelope struct {
		Data struct {
			Items []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
