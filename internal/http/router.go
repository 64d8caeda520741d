package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agency-console/internal/gate"
	"agency-console/internal/handlers"
	"agency-console/internal/middleware"
	"agency-console/internal/models"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Clients    *handlers.ClientHandler
	Projects   *handlers.ProjectHandler
	Invoices   *handlers.InvoiceHandler
	Staff      *handlers.StaffHandler
	Handovers  *handlers.HandoverHandler
	Notices    *handlers.NoticeHandler
	Attendance *handlers.AttendanceHandler
	Salaries   *handlers.SalaryHandler
	Pages      *handlers.PageHandler
	Health     *handlers.HealthHandler
	// WS upgrades the realtime connection.
	WS http.HandlerFunc
}

func NewRouter(h Handlers, sess gate.Session, authLimiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.NewRequestLogger().Handler)
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)

	// Health and metrics (no session)
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/ws", h.WS)

	// Auth API - public, throttled per client IP
	authAPI := r.PathPrefix("/console/api/auth").Subrouter()
	authAPI.HandleFunc("/me", h.Auth.Me).Methods("GET")
	authAPI.HandleFunc("/logout", h.Auth.Logout).Methods("POST")
	limited := authAPI.NewRoute().Subrouter()
	if authLimiter != nil {
		limited.Use(authLimiter.Handler)
	}
	limited.HandleFunc("/login", h.Auth.Login).Methods("POST")
	limited.HandleFunc("/forgot-password", h.Auth.ForgotPassword).Methods("POST")
	limited.HandleFunc("/verify-otp", h.Auth.VerifyOTP).Methods("POST")
	limited.HandleFunc("/reset-password", h.Auth.ResetPassword).Methods("POST")

	// Screen API - requires a session; screens outside the role's shell are 404
	api := r.PathPrefix("/console/api").Subrouter()
	api.Use(middleware.RequireSession(sess))

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	staffOnly := middleware.RequireRole(models.RoleEmployee, models.RoleIntern)

	api.Handle("/dashboard", adminOnly(http.HandlerFunc(h.Dashboard.Admin))).Methods("GET")
	api.Handle("/dashboard/staff", staffOnly(http.HandlerFunc(h.Dashboard.Staff))).Methods("GET")
	api.HandleFunc("/profile", h.Dashboard.Profile).Methods("GET")

	clients := screen(api, "/clients", "clients")
	clients.HandleFunc("", h.Clients.ListClients).Methods("GET")
	clients.HandleFunc("", h.Clients.CreateClient).Methods("POST")
	clients.HandleFunc("/{id}", h.Clients.UpdateClient).Methods("PUT")
	clients.HandleFunc("/{id}", h.Clients.DeleteClient).Methods("DELETE")

	projects := screen(api, "/projects", "projects")
	projects.HandleFunc("", h.Projects.ListProjects).Methods("GET")
	projects.HandleFunc("", h.Projects.CreateProject).Methods("POST")
	projects.HandleFunc("/{id}", h.Projects.GetProject).Methods("GET")
	projects.HandleFunc("/{id}", h.Projects.UpdateProject).Methods("PUT")
	projects.HandleFunc("/{id}", h.Projects.DeleteProject).Methods("DELETE")

	invoices := screen(api, "/invoices", "invoices")
	invoices.HandleFunc("", h.Invoices.ListInvoices).Methods("GET")
	invoices.HandleFunc("", h.Invoices.CreateInvoice).Methods("POST")
	invoices.HandleFunc("/draft", h.Invoices.Draft).Methods("GET")
	invoices.HandleFunc("/export", h.Invoices.Export).Methods("GET")
	invoices.HandleFunc("/{id}", h.Invoices.GetInvoice).Methods("GET")
	invoices.HandleFunc("/{id}", h.Invoices.UpdateInvoice).Methods("PUT")
	invoices.HandleFunc("/{id}", h.Invoices.DeleteInvoice).Methods("DELETE")
	invoices.HandleFunc("/{id}/pdf", h.Invoices.DownloadPDF).Methods("GET")
	invoices.HandleFunc("/{id}/payment-link", h.Invoices.PaymentLink).Methods("POST")

	employees := screen(api, "/employees", "employees")
	employees.HandleFunc("", h.Staff.ListEmployees).Methods("GET")
	employees.HandleFunc("", h.Staff.CreateEmployee).Methods("POST")
	employees.HandleFunc("/{id}", h.Staff.UpdateEmployee).Methods("PUT")
	employees.HandleFunc("/{id}", h.Staff.DeleteEmployee).Methods("DELETE")

	interns := screen(api, "/interns", "interns")
	interns.HandleFunc("", h.Staff.ListInterns).Methods("GET")
	interns.HandleFunc("", h.Staff.CreateIntern).Methods("POST")
	interns.HandleFunc("/{id}", h.Staff.UpdateIntern).Methods("PUT")
	interns.HandleFunc("/{id}", h.Staff.DeleteIntern).Methods("DELETE")

	// Shared screens: everyone reads, admins write
	handovers := screen(api, "/handovers", "handovers")
	handovers.HandleFunc("", h.Handovers.ListHandovers).Methods("GET")
	handovers.HandleFunc("/{id}", h.Handovers.GetHandover).Methods("GET")
	handovers.Handle("", adminOnly(http.HandlerFunc(h.Handovers.CreateHandover))).Methods("POST")
	handovers.Handle("/{id}", adminOnly(http.HandlerFunc(h.Handovers.UpdateHandover))).Methods("PUT")
	handovers.Handle("/{id}", adminOnly(http.HandlerFunc(h.Handovers.DeleteHandover))).Methods("DELETE")

	notices := screen(api, "/notices", "notices")
	notices.HandleFunc("", h.Notices.ListNotices).Methods("GET")
	notices.Handle("", adminOnly(http.HandlerFunc(h.Notices.CreateNotice))).Methods("POST")
	notices.Handle("/{id}", adminOnly(http.HandlerFunc(h.Notices.DeleteNotice))).Methods("DELETE")

	comms := screen(api, "/communications", "communications")
	comms.HandleFunc("", h.Notices.ListCommunications).Methods("GET")
	comms.Handle("", staffOnly(http.HandlerFunc(h.Notices.CreateCommunication))).Methods("POST")
	comms.Handle("/{id}/reply", adminOnly(http.HandlerFunc(h.Notices.ReplyCommunication))).Methods("PUT")
	comms.Handle("/{id}", adminOnly(http.HandlerFunc(h.Notices.DeleteCommunication))).Methods("DELETE")

	// Admins see attendance on the dashboard; staff have their own screen.
	api.Handle("/attendance/all", adminOnly(http.HandlerFunc(h.Attendance.All))).Methods("GET")
	attendance := screen(api, "/attendance", "attendance")
	attendance.HandleFunc("", h.Attendance.Mine).Methods("GET")
	attendance.HandleFunc("", h.Attendance.MarkPresent).Methods("POST")

	salaries := screen(api, "/salaries", "salaries")
	salaries.Handle("", adminOnly(http.HandlerFunc(h.Salaries.Overview))).Methods("GET")
	salaries.Handle("", adminOnly(http.HandlerFunc(h.Salaries.AddPayment))).Methods("POST")
	salaries.Handle("/export", adminOnly(http.HandlerFunc(h.Salaries.Export))).Methods("GET")
	salaries.HandleFunc("/history/{id}", h.Salaries.History).Methods("GET")

	// Everything else is an HTML route decided by the access gate.
	r.PathPrefix("/").Handler(h.Pages).Methods("GET")

	return r
}

func screen(api *mux.Router, prefix, key string) *mux.Router {
	sub := api.PathPrefix(prefix).Subrouter()
	sub.Use(middleware.RequireScreen(key))
	return sub
}
