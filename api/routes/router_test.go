package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/creatorvault/creatorvault-backend/pkg/auth"
	"github.com/creatorvault/creatorvault-backend/pkg/config"
	"github.com/creatorvault/creatorvault-backend/pkg/enums"
	"github.com/creatorvault/creatorvault-backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "creatorvault-test",
			ExpirationMinutes: 15,
		},
	}
}

func testRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: &bytes.Buffer{}})
	return NewRouter(Deps{
		Config: cfg,
		Logger: logg,
	})
}

func mintToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	cfg := testConfig()
	handler := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-CreatorVault-Env"); got != "test" {
		t.Fatalf("expected env header, got %q", got)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data["status"] != "live" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	handler := testRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIRoutesRequireAuth(t *testing.T) {
	handler := testRouter(t, testConfig())

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/campaigns"},
		{http.MethodGet, "/api/v1/notifications"},
		{http.MethodPost, "/api/v1/creators/onboard"},
		{http.MethodGet, "/api/admin/v1/stats"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, rec.Code)
		}
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	cfg := testConfig()
	handler := testRouter(t, cfg)
	token := mintToken(t, cfg, enums.UserRoleCreator)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestPaymentReleaseRequiresAdmin(t *testing.T) {
	cfg := testConfig()
	handler := testRouter(t, cfg)
	token := mintToken(t, cfg, enums.UserRoleBrand)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+uuid.NewString()+"/release", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (%s)", rec.Code, rec.Body.String())
	}
}
