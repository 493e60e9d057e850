package app

import (
	"barberbook/pkg/config"
	"barberbook/pkg/logger"
	"barberbook/pkg/tenant"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type echoTenantHandler struct{}

func (echoTenantHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id, _ := tenant.FromContext(r.Context())
		w.Header().Set("X-Echo-Tenant", id)
		w.WriteHeader(http.StatusNoContent)
	})
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := config.FromEnv("test")
	cfg.Log = logger.Discard()

	a := NewApplication(cfg)
	a.SetApp(echoTenantHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func TestApplication_Routing(t *testing.T) {
	a := newTestApplication(t)

	tests := []struct {
		name       string
		path       string
		tenant     string
		wantStatus int
	}{
		{"health without tenant", "/health", "", http.StatusOK},
		{"ready without connections", "/ready", "", http.StatusOK},
		{"api requires tenant", "/api/v1/ping", "", http.StatusUnauthorized},
		{"api with tenant", "/api/v1/ping", "shop-1", http.StatusNoContent},
		{"unknown route", "/api/v1/nope", "shop-1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.tenant != "" {
				req.Header.Set(config.DefaultTenantHeader, tt.tenant)
			}
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusNoContent && rec.Header().Get("X-Echo-Tenant") != tt.tenant {
				t.Errorf("tenant = %q, want %q", rec.Header().Get("X-Echo-Tenant"), tt.tenant)
			}
		})
	}
}
