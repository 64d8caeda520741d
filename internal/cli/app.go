package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"agency-console/internal/apiclient"
	"agency-console/internal/archive"
	"agency-console/internal/cache"
	"agency-console/internal/config"
	"agency-console/internal/invoicepdf"
	"agency-console/internal/payments"
	"agency-console/internal/repositories"
	"agency-console/internal/services"
	"agency-console/internal/session"
)

// app is the wired console core shared by serve and the scripted commands.
type app struct {
	Session     *session.Store
	API         *apiclient.Client
	Redis       *redis.Client
	Collections *services.Collections

	Auth           *services.AuthService
	Clients        *services.ClientService
	Projects       *services.ProjectService
	Invoices       *services.InvoiceService
	Employees      *services.EmployeeService
	Interns        *services.InternService
	Handovers      *services.HandoverService
	Notices        *services.NoticeService
	Communications *services.CommunicationService
	Attendance     *services.AttendanceService
	Salaries       *services.SalaryService
	Profiles       *services.ProfileService
	Dashboard      *services.DashboardService

	Payments *payments.Service
	// Archive is nil unless archive.enabled is set.
	Archive *archive.Archive
	Company invoicepdf.Company
}

// buildApp opens the session backend, loads the persisted session and wires
// repositories and services. events receives invalidations after writes; nav
// follows forced logouts. Both may be nil.
func buildApp(ctx context.Context, cfg *config.Config, nav apiclient.Navigator, events services.Invalidator) (*app, error) {
	a := &app{
		Company: invoicepdf.Company{
			Name:    cfg.Company.Name,
			Tagline: cfg.Company.Tagline,
			Address: cfg.Company.Address,
			Email:   cfg.Company.Email,
			Phone:   cfg.Company.Phone,
			Website: cfg.Company.Website,
		},
	}

	var backend session.Backend
	switch cfg.Session.Backend {
	case "redis":
		client, err := cache.Connect(ctx, cache.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect session redis: %w", err)
		}
		a.Redis = client
		backend = session.NewRedisBackend(client, cfg.Session.RedisPrefix)
	default:
		fb, err := session.NewFileBackend(cfg.Session.Dir)
		if err != nil {
			return nil, fmt.Errorf("open session dir: %w", err)
		}
		backend = fb
	}

	a.Session = session.NewStore(backend)
	if err := a.Session.Load(ctx); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	a.API = apiclient.New(apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.APITimeout()}, a.Session, nav)

	clientRepo := repositories.NewClientRepository(a.API)
	projectRepo := repositories.NewProjectRepository(a.API)
	invoiceRepo := repositories.NewInvoiceRepository(a.API)
	employeeRepo := repositories.NewEmployeeRepository(a.API)
	internRepo := repositories.NewInternRepository(a.API)
	attendanceRepo := repositories.NewAttendanceRepository(a.API)

	a.Collections = services.NewCollections(projectRepo, invoiceRepo, clientRepo, events)
	a.Auth = services.NewAuthService(repositories.NewAuthRepository(a.API), a.Session)
	a.Clients = services.NewClientService(clientRepo, a.Collections)
	a.Projects = services.NewProjectService(projectRepo, a.Collections)
	a.Invoices = services.NewInvoiceService(invoiceRepo, a.Collections)
	a.Employees = services.NewEmployeeService(employeeRepo, a.Collections)
	a.Interns = services.NewInternService(internRepo, a.Collections)
	a.Handovers = services.NewHandoverService(repositories.NewHandoverRepository(a.API), a.Collections)
	a.Notices = services.NewNoticeService(repositories.NewNoticeRepository(a.API), a.Collections)
	a.Communications = services.NewCommunicationService(repositories.NewCommunicationRepository(a.API), a.Collections)
	a.Attendance = services.NewAttendanceService(attendanceRepo, a.Collections)
	a.Salaries = services.NewSalaryService(repositories.NewSalaryRepository(a.API), a.Collections)
	a.Profiles = services.NewProfileService(employeeRepo, internRepo)
	a.Dashboard = services.NewDashboardService(a.Collections, attendanceRepo, a.Profiles)

	a.Payments = payments.New(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	if cfg.Archive.Enabled {
		arc, err := archive.New(ctx, archive.Options{
			Bucket:    cfg.Archive.Bucket,
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Prefix:    cfg.Archive.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
		a.Archive = arc
	}
	return a, nil
}

func (a *app) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
