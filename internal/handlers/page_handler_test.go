package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"agency-console/internal/invoicepdf"
	"agency-console/internal/models"
)

type stubSession struct{ user *models.AuthUser }

func (s stubSession) Current() (models.AuthUser, bool) {
	if s.user == nil {
		return models.AuthUser{}, false
	}
	return *s.user, true
}

type pathRecorder struct{ path string }

func (p *pathRecorder) SetPath(path string) { p.path = path }

func TestPages_Anonymous(t *testing.T) {
	h := NewPageHandler(stubSession{}, nil, invoicepdf.Company{Name: "Agency"})

	rec := call(h, http.MethodGet, "/invoices", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = call(h, http.MethodGet, "/login", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-action="/console/api/auth/login"`)

	rec = call(h, http.MethodGet, "/verify-otp/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="otp"`)
}

func TestPages_EmployeeShell(t *testing.T) {
	tracker := &pathRecorder{}
	h := NewPageHandler(stubSession{user: &models.AuthUser{ID: "e1", Name: "Asha", Role: models.RoleEmployee}}, tracker, invoicepdf.Company{Name: "Agency"})

	rec := call(h, http.MethodGet, "/attendance", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-source="/console/api/attendance"`)
	assert.Equal(t, "/attendance", tracker.path)

	rec = call(h, http.MethodGet, "/", "", nil)
	assert.Contains(t, rec.Body.String(), `data-source="/console/api/dashboard/staff"`)

	// admin screens are not part of the employee shell
	rec = call(h, http.MethodGet, "/clients", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/attendance"`)
	assert.NotContains(t, rec.Body.String(), `href="/clients"`)
}

func TestPages_UnknownRoleGetsAdminShell(t *testing.T) {
	h := NewPageHandler(stubSession{user: &models.AuthUser{ID: "x", Role: "manager"}}, nil, invoicepdf.Company{Name: "Agency"})
	rec := call(h, http.MethodGet, "/clients", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-source="/console/api/clients"`)
}
