package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-console/internal/config"
	"agency-console/internal/models"
)

type fakeSession struct{ user *models.AuthUser }

func (f fakeSession) Current() (models.AuthUser, bool) {
	if f.user == nil {
		return models.AuthUser{}, false
	}
	return *f.user, true
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequireSession_Anonymous(t *testing.T) {
	h := RequireSession(fakeSession{})(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/api/clients", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Please sign in to continue"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireSession_AttachesUser(t *testing.T) {
	var got models.AuthUser
	h := RequireSession(fakeSession{user: &models.AuthUser{ID: "e1", Role: models.RoleEmployee}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = UserFromContext(r.Context())
		}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "e1", got.ID)
}

func TestRequireScreen(t *testing.T) {
	employee := fakeSession{user: &models.AuthUser{ID: "e1", Role: models.RoleEmployee}}

	h := RequireSession(employee)(RequireScreen("clients")(ok))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/api/clients", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h = RequireSession(employee)(RequireScreen("attendance")(ok))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/api/attendance", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	h := rl.Handler(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rl.Cleanup(-time.Second)
	assert.Empty(t, rl.limiters)
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var seen string
	h := NewRequestLogger().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	var label string
	r.HandleFunc("/console/api/invoices/{id}", func(w http.ResponseWriter, req *http.Request) {
		label = routeLabel(req)
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/api/invoices/abc123", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "/console/api/invoices/{id}", label)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	assert.Equal(t, "1.2.3.4", getClientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	assert.Equal(t, "9.9.9.9", getClientIP(req))
}

func TestRequireRole(t *testing.T) {
	intern := fakeSession{user: &models.AuthUser{ID: "i1", Role: models.RoleIntern}}
	h := RequireSession(intern)(RequireRole(models.RoleAdmin)(ok))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/console/api/notices", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	h = RequireSession(intern)(RequireRole(models.RoleEmployee, models.RoleIntern)(ok))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/console/api/communications", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// an unknown role is treated as admin
	odd := fakeSession{user: &models.AuthUser{ID: "x", Role: "manager"}}
	h = RequireSession(odd)(RequireRole(models.RoleAdmin)(ok))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/console/api/notices", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNewCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.CorsAllowedOrigins = []string{"http://localhost:8090"}
	cfg.Server.CorsAllowedMethods = []string{"GET", "POST"}
	h := NewCORS(cfg)(ok)

	req := httptest.NewRequest(http.MethodGet, "/console/api/invoices", nil)
	req.Header.Set("Origin", "http://localhost:8090")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:8090", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Archive-Key")

	req = httptest.NewRequest(http.MethodGet, "/console/api/invoices", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	// no origins configured: same-origin only, requests pass through untouched
	rec = httptest.NewRecorder()
	NewCORS(&config.Config{})(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
