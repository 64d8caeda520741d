package repositories

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-console/internal/apiclient"
	"agency-console/internal/apitest"
	"agency-console/internal/models"
)

func TestAuthRepository_LoginUsesRoleEndpoint(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodPost, "/api/intern/login", http.StatusOK,
		`{"token":"tok-1","intern":{"_id":"i1","name":"Ravi","email":"ravi@agency.io","role":"Frontend"}}`)
	client, _ := api.Client(nil)

	repo := NewAuthRepository(client)
	token, user, err := repo.Login(context.Background(), &models.LoginRequest{Email: "ravi@agency.io", Password: "secret", Role: models.RoleIntern})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "i1", user.ID)
	assert.Equal(t, models.RoleIntern, user.Role)

	req, ok := api.Last(http.MethodPost, "/api/intern/login")
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"ravi@agency.io","password":"secret"}`, req.Body)
}

func TestClientRepository_Paths(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodGet, "/api/client", http.StatusOK, `{"clients":[{"_id":"c1","clientName":"Acme"}]}`)
	api.Handle(http.MethodPut, "/api/client/update/c1", http.StatusOK, `{}`)
	api.Handle(http.MethodDelete, "/api/client/delete/c1", http.StatusOK, `{}`)
	client, _ := api.Client(nil)
	repo := NewClientRepository(client)
	ctx := context.Background()

	clients, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme", clients[0].Name)

	require.NoError(t, repo.Update(ctx, "c1", &models.ClientRequest{ClientName: "Acme Ltd"}))
	require.NoError(t, repo.Delete(ctx, "c1"))
	assert.Equal(t, 1, api.Calls(http.MethodPut, "/api/client/update/c1"))
	assert.Equal(t, 1, api.Calls(http.MethodDelete, "/api/client/delete/c1"))
}

func TestInvoiceRepository_CreateSendsSnapshot(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodPost, "/api/invoice", http.StatusCreated, `{"message":"created"}`)
	client, _ := api.Client(nil)

	req := &models.InvoiceRequest{
		ClientID:    "c1",
		ProjectID:   "p1",
		InvoiceNo:   "INV-9",
		Amount:      decimal.NewFromInt(2000),
		PreviousDue: decimal.NewFromInt(5000),
		GrandTotal:  decimal.NewFromInt(7000),
		Method:      models.MethodUPI,
	}
	require.NoError(t, NewInvoiceRepository(client).Create(context.Background(), req))

	got, ok := api.Last(http.MethodPost, "/api/invoice")
	require.True(t, ok)
	assert.Contains(t, got.Body, `"grandTotal":7000`)
	assert.Contains(t, got.Body, `"previousDue":5000`)
}

func TestAttendanceRepository_AllFiltersByUser(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodGet, "/api/attendance/all", http.StatusOK, `[]`)
	client, _ := api.Client(nil)

	records, err := NewAttendanceRepository(client).All(context.Background(), "e 1")
	require.NoError(t, err)
	assert.Empty(t, records)

	got, _ := api.Last(http.MethodGet, "/api/attendance/all")
	assert.Equal(t, "userId=e+1", got.Query)
}

func TestSalaryRepository_HistoryKey(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodGet, "/api/salary/history/e1", http.StatusOK,
		`{"history":[{"_id":"s1","payeeId":{"_id":"e1","name":"Asha"},"payeeModel":"employee","amount":30000,"month":"March","year":2025}]}`)
	client, _ := api.Client(nil)

	payments, err := NewSalaryRepository(client).History(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "e1", payments[0].Payee.PersonID())
}

func TestRepository_PropagatesAPIError(t *testing.T) {
	api := apitest.NewServer(t)
	api.Handle(http.MethodDelete, "/api/project/delete/p1", http.StatusConflict, `{"message":"Project has invoices"}`)
	client, _ := api.Client(nil)

	err := NewProjectRepository(client).Delete(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, "Project has invoices", apiclient.UserMessage(err, "Failed to delete project"))
	assert.Equal(t, http.StatusConflict, apiclient.StatusCode(err))
}

func TestJoinEscapesSegments(t *testing.T) {
	assert.Equal(t, "/api/client/update/a%2Fb", join(pathClient, "update", "a/b"))
	assert.Equal(t, "/api/admin/login", loginPath(models.RoleAdmin))
}
