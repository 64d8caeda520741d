package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-console/internal/apiclient"
	"agency-console/internal/apitest"
	"agency-console/internal/invoicepdf"
	"agency-console/internal/middleware"
	"agency-console/internal/models"
	"agency-console/internal/payments"
	"agency-console/internal/repositories"
	"agency-console/internal/services"
	"agency-console/internal/session"
)

type fixture struct {
	api    *apitest.Server
	client *apiclient.Client
	store  *session.Store
	coll   *services.Collections
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := apitest.NewServer(t)
	client, store := api.Client(nil)
	coll := services.NewCollections(
		repositories.NewProjectRepository(client),
		repositories.NewInvoiceRepository(client),
		repositories.NewClientRepository(client),
		nil,
	)
	return &fixture{api: api, client: client, store: store, coll: coll}
}

func (f *fixture) signIn(t *testing.T, user models.AuthUser) {
	t.Helper()
	require.NoError(t, f.store.Login(context.Background(), "tok-"+user.ID, user))
}

func (f *fixture) invoices(p *payments.Service, a Archiver) *InvoiceHandler {
	svc := services.NewInvoiceService(repositories.NewInvoiceRepository(f.client), f.coll)
	return NewInvoiceHandler(svc, p, a, invoicepdf.Company{Name: "Agency"})
}

func call(h http.Handler, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func bodyOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const projectsBody = `{"projects":[
	{"_id":"p1","projectName":"Website","client":{"_id":"c1","clientName":"Acme"},"totalAmount":20000,"totalPaid":10000,"dueAmount":10000,"status":"In Progress"}
]}`

const invoiceBody = `{"_id":"i1","clientId":{"_id":"c1","clientName":"Acme"},"projectId":{"_id":"p1","projectName":"Website"},
	"invoiceNo":"INV/7","amount":3000,"previousDue":2000,"status":"pending","method":"UPI","date":"2025-02-10"}`

func TestCreateInvoice_BudgetGuardAnswers422WithoutCallingAPI(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/project", http.StatusOK, projectsBody)
	h := f.invoices(payments.New("", ""), nil)

	rec := call(http.HandlerFunc(h.CreateInvoice), http.MethodPost, "/console/api/invoices",
		`{"clientId":"c1","projectId":"p1","invoiceNo":"INV-2","amount":10001,"previousDue":0,"method":"Cash"}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, bodyOf(t, rec)["error"])
	assert.Zero(t, f.api.Calls(http.MethodPost, "/api/invoice"))
}

func TestCreateInvoice_UpstreamMessageIsShownVerbatim(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/project", http.StatusOK, projectsBody)
	f.api.Handle(http.MethodPost, "/api/invoice", http.StatusBadRequest, `{"message":"Invoice number already exists"}`)
	h := f.invoices(payments.New("", ""), nil)

	rec := call(http.HandlerFunc(h.CreateInvoice), http.MethodPost, "/console/api/invoices",
		`{"clientId":"c1","projectId":"p1","invoiceNo":"INV-2","amount":500,"method":"Cash"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invoice number already exists", bodyOf(t, rec)["error"])
}

func TestCreateInvoice_ReturnsGrandTotal(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/project", http.StatusOK, projectsBody)
	f.api.Handle(http.MethodPost, "/api/invoice", http.StatusCreated, `{}`)
	h := f.invoices(payments.New("", ""), nil)

	rec := call(http.HandlerFunc(h.CreateInvoice), http.MethodPost, "/console/api/invoices",
		`{"clientId":"c1","projectId":"p1","invoiceNo":"INV-2","amount":4000,"previousDue":1500,"method":"UPI"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 5500, bodyOf(t, rec)["grandTotal"])
}

func TestCreateInvoice_BadJSON(t *testing.T) {
	f := newFixture(t)
	h := f.invoices(payments.New("", ""), nil)
	rec := call(http.HandlerFunc(h.CreateInvoice), http.MethodPost, "/console/api/invoices", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", bodyOf(t, rec)["error"])
}

func TestListClients_ReadFailureUsesPanel(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/client", http.StatusInternalServerError, `{"message":"boom"}`)
	h := NewClientHandler(services.NewClientService(repositories.NewClientRepository(f.client), f.coll))

	rec := call(http.HandlerFunc(h.ListClients), http.MethodGet, "/console/api/clients", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := bodyOf(t, rec)
	assert.Equal(t, true, body["panel"])
	assert.Equal(t, "boom", body["error"])
}

type fakeArchive struct {
	name string
	data []byte
}

func (a *fakeArchive) PutPDF(_ context.Context, name string, data []byte) (string, error) {
	a.name, a.data = name, data
	return "invoices/2025/02/" + name, nil
}

func TestDownloadPDF(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/invoice/i1", http.StatusOK, invoiceBody)
	f.api.Handle(http.MethodGet, "/api/client", http.StatusOK, `{"clients":[{"_id":"c1","clientName":"Acme","address":"12 MG Road"}]}`)
	arc := &fakeArchive{}
	h := f.invoices(payments.New("", ""), arc)

	rec := call(http.HandlerFunc(h.DownloadPDF), http.MethodGet, "/console/api/invoices/i1/pdf", "", map[string]string{"id": "i1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Invoice_INV-7.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Empty(t, rec.Header().Get("X-Archive-Key"))
	assert.Nil(t, arc.data)

	rec = call(http.HandlerFunc(h.DownloadPDF), http.MethodGet, "/console/api/invoices/i1/pdf?archive=1", "", map[string]string{"id": "i1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "invoices/2025/02/Invoice_INV-7.pdf", rec.Header().Get("X-Archive-Key"))
	assert.Equal(t, rec.Body.Bytes(), arc.data)
}

func TestPaymentLink_NotConfigured(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/invoice/i1", http.StatusOK, invoiceBody)
	h := f.invoices(payments.New("", ""), nil)

	rec := call(http.HandlerFunc(h.PaymentLink), http.MethodPost, "/console/api/invoices/i1/payment-link", "", map[string]string{"id": "i1"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDraft_RequiresClient(t *testing.T) {
	f := newFixture(t)
	h := f.invoices(payments.New("", ""), nil)
	rec := call(http.HandlerFunc(h.Draft), http.MethodGet, "/console/api/invoices/draft", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_LoginAndMe(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodPost, "/api/admin/login", http.StatusOK,
		`{"token":"tok-admin","admin":{"_id":"a1","name":"Boss","email":"boss@agency.io"}}`)
	h := NewAuthHandler(services.NewAuthService(repositories.NewAuthRepository(f.client), f.store), f.store)

	rec := call(http.HandlerFunc(h.Me), http.MethodGet, "/console/api/auth/me", "", nil)
	assert.Equal(t, false, bodyOf(t, rec)["authenticated"])

	rec = call(http.HandlerFunc(h.Login), http.MethodPost, "/console/api/auth/login",
		`{"email":"boss@agency.io","password":"pw","role":"admin"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := bodyOf(t, rec)
	assert.Equal(t, "admin", body["shell"])
	assert.Equal(t, "/", body["redirect"])

	rec = call(http.HandlerFunc(h.Me), http.MethodGet, "/console/api/auth/me", "", nil)
	assert.Equal(t, true, bodyOf(t, rec)["authenticated"])

	// a second sign-in over the live session is refused
	rec = call(http.HandlerFunc(h.Login), http.MethodPost, "/console/api/auth/login",
		`{"email":"other@agency.io","password":"pw","role":"employee"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuth_VerifyWithoutForgotRedirects(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(services.NewAuthService(repositories.NewAuthRepository(f.client), f.store), f.store)

	rec := call(http.HandlerFunc(h.VerifyOTP), http.MethodPost, "/console/api/auth/verify-otp", `{"otp":"123456"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "/forgot-password", bodyOf(t, rec)["redirect"])
}

func TestListHandovers_StaffSeeOnlyTheirOwn(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/handover/all", http.StatusOK, `[
		{"_id":"h1","projectId":"p1","assigneeId":"e1","assigneeModel":"employee"},
		{"_id":"h2","projectId":"p2","assigneeId":"i1","assigneeModel":"intern"}
	]`)
	h := NewHandoverHandler(services.NewHandoverService(repositories.NewHandoverRepository(f.client), nil))
	handler := middleware.RequireSession(f.store)(http.HandlerFunc(h.ListHandovers))

	f.signIn(t, models.AuthUser{ID: "i1", Name: "Ravi", Role: models.RoleIntern})
	rec := call(handler, http.MethodGet, "/console/api/handovers", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, bodyOf(t, rec)["handovers"], 1)

	require.NoError(t, f.store.Logout(context.Background()))
	f.signIn(t, models.AuthUser{ID: "a1", Name: "Boss", Role: models.RoleAdmin})
	rec = call(handler, http.MethodGet, "/console/api/handovers", "", nil)
	assert.Len(t, bodyOf(t, rec)["handovers"], 2)
}

func TestSalaryHistory_StaffAreScopedToThemselves(t *testing.T) {
	f := newFixture(t)
	f.api.Handle(http.MethodGet, "/api/salary/history/e1", http.StatusOK, `{"salaries":[]}`)
	h := NewSalaryHandler(services.NewSalaryService(repositories.NewSalaryRepository(f.client), nil))
	handler := middleware.RequireSession(f.store)(http.HandlerFunc(h.History))

	f.signIn(t, models.AuthUser{ID: "e1", Role: models.RoleEmployee})
	rec := call(handler, http.MethodGet, "/console/api/salaries/history/e2", "", map[string]string{"id": "e2"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.api.Calls(http.MethodGet, "/api/salary/history/e1"))
	assert.Zero(t, f.api.Calls(http.MethodGet, "/api/salary/history/e2"))
}

func TestMarkPresent_Twice(t *testing.T) {
	f := newFixture(t)
	h := NewAttendanceHandler(services.NewAttendanceService(repositories.NewAttendanceRepository(f.client), nil))
	svc := h.Service
	f.api.Handle(http.MethodGet, "/api/attendance/get", http.StatusOK,
		`[{"_id":"a1","date":"`+svc.Clock().UTC().Format("2006-01-02T15:04:05Z")+`","status":"present"}]`)

	rec := call(http.HandlerFunc(h.MarkPresent), http.MethodPost, "/console/api/attendance", "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, f.api.Calls(http.MethodPost, "/api/attendance/create"))
}
