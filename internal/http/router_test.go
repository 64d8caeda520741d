package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-console/internal/apitest"
	"agency-console/internal/handlers"
	"agency-console/internal/health"
	"agency-console/internal/invoicepdf"
	"agency-console/internal/middleware"
	"agency-console/internal/models"
	"agency-console/internal/payments"
	"agency-console/internal/repositories"
	"agency-console/internal/services"
	"agency-console/internal/session"
)

func newTestRouter(t *testing.T) (http.Handler, *session.Store, *apitest.Server) {
	t.Helper()
	api := apitest.NewServer(t)
	client, store := api.Client(nil)

	clientRepo := repositories.NewClientRepository(client)
	projectRepo := repositories.NewProjectRepository(client)
	invoiceRepo := repositories.NewInvoiceRepository(client)
	employeeRepo := repositories.NewEmployeeRepository(client)
	internRepo := repositories.NewInternRepository(client)
	attendanceRepo := repositories.NewAttendanceRepository(client)
	coll := services.NewCollections(projectRepo, invoiceRepo, clientRepo, nil)
	profiles := services.NewProfileService(employeeRepo, internRepo)
	company := invoicepdf.Company{Name: "Agency"}

	r := NewRouter(Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(repositories.NewAuthRepository(client), store), store),
		Dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(coll, attendanceRepo, profiles), profiles),
		Clients:    handlers.NewClientHandler(services.NewClientService(clientRepo, coll)),
		Projects:   handlers.NewProjectHandler(services.NewProjectService(projectRepo, coll)),
		Invoices:   handlers.NewInvoiceHandler(services.NewInvoiceService(invoiceRepo, coll), payments.New("", ""), nil, company),
		Staff:      handlers.NewStaffHandler(services.NewEmployeeService(employeeRepo, coll), services.NewInternService(internRepo, coll)),
		Handovers:  handlers.NewHandoverHandler(services.NewHandoverService(repositories.NewHandoverRepository(client), coll)),
		Notices:    handlers.NewNoticeHandler(services.NewNoticeService(repositories.NewNoticeRepository(client), coll), services.NewCommunicationService(repositories.NewCommunicationRepository(client), coll)),
		Attendance: handlers.NewAttendanceHandler(services.NewAttendanceService(attendanceRepo, coll)),
		Salaries:   handlers.NewSalaryHandler(services.NewSalaryService(repositories.NewSalaryRepository(client), coll)),
		Pages:      handlers.NewPageHandler(store, nil, company),
		Health:     handlers.NewHealthHandler(health.NewHealthChecker(health.HTTPPinger{BaseURL: api.URL}, nil)),
		WS:         func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
	}, store, middleware.NewRateLimiter(600, 100))
	return r, store, api
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouter_PublicSurface(t *testing.T) {
	r, _, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/login").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/console/api/auth/me").Code)

	rec := serve(r, http.MethodGet, "/projects")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/console/api/clients").Code)
}

func TestRouter_RoleGates(t *testing.T) {
	r, store, api := newTestRouter(t)
	api.Handle(http.MethodGet, "/api/notice/get", http.StatusOK, `{"notices":[]}`)
	require.NoError(t, store.Login(context.Background(), "tok-e1", models.AuthUser{ID: "e1", Role: models.RoleEmployee}))

	// outside the employee shell
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/console/api/clients").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/console/api/invoices").Code)
	// inside the shell but admin-only
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/console/api/notices").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/console/api/dashboard").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/console/api/attendance/all").Code)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/console/api/notices").Code)
	assert.Zero(t, api.Calls(http.MethodGet, "/api/client"))
}

func TestRouter_InvoiceSubroutes(t *testing.T) {
	r, store, api := newTestRouter(t)
	require.NoError(t, store.Login(context.Background(), "tok-a1", models.AuthUser{ID: "a1", Role: models.RoleAdmin}))

	// /draft is not mistaken for an invoice id
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/console/api/invoices/draft").Code)
	assert.Zero(t, api.Calls(http.MethodGet, "/api/invoice/draft"))
}
