package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"agency-console/internal/cache"
	"agency-console/internal/handlers"
	"agency-console/internal/health"
	httprouter "agency-console/internal/http"
	"agency-console/internal/logger"
	"agency-console/internal/middleware"
	"agency-console/internal/realtime"
	"agency-console/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the console to the operator's browser",
	Example: `  # Serve on the configured port (default 8090)
  agency-console serve

  # Serve with a specific config file
  agency-console serve -c /etc/agency-console/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub()
	go hub.Run(ctx)

	a, err := buildApp(ctx, cfg, hub, hub)
	if err != nil {
		return err
	}
	defer a.Close()

	if user, ok := a.Session.Current(); ok {
		log.Info().Str("user", user.Email).Str("role", string(user.Role)).Msg("Resumed session")
	}

	scheduler, err := realtime.NewScheduler(cfg.Refresh.Schedule, a.Collections, services.AllCollections)
	if err != nil {
		return fmt.Errorf("refresh schedule: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	var sessionPinger health.Pinger
	if a.Redis != nil {
		sessionPinger = health.PingFunc(func(ctx context.Context) error { return cache.Ping(ctx, a.Redis) })
	}
	checker := health.NewHealthChecker(health.HTTPPinger{BaseURL: cfg.API.BaseURL}, sessionPinger)

	invoices := handlers.NewInvoiceHandler(a.Invoices, a.Payments, nil, a.Company)
	if a.Archive != nil {
		invoices.Archive = a.Archive
	}

	limiter := middleware.NewRateLimiter(cfg.Server.AuthRatePerMinute, cfg.Server.AuthBurst)
	limiter.StartCleanup(5*time.Minute, ctx.Done())

	router := httprouter.NewRouter(httprouter.Handlers{
		Auth:       handlers.NewAuthHandler(a.Auth, a.Session),
		Dashboard:  handlers.NewDashboardHandler(a.Dashboard, a.Profiles),
		Clients:    handlers.NewClientHandler(a.Clients),
		Projects:   handlers.NewProjectHandler(a.Projects),
		Invoices:   invoices,
		Staff:      handlers.NewStaffHandler(a.Employees, a.Interns),
		Handovers:  handlers.NewHandoverHandler(a.Handovers),
		Notices:    handlers.NewNoticeHandler(a.Notices, a.Communications),
		Attendance: handlers.NewAttendanceHandler(a.Attendance),
		Salaries:   handlers.NewSalaryHandler(a.Salaries),
		Pages:      handlers.NewPageHandler(a.Session, hub, a.Company),
		Health:     handlers.NewHealthHandler(checker),
		WS:         hub.ServeWS,
	}, a.Session, limiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           middleware.NewCORS(cfg)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("api", cfg.API.BaseURL).
			Str("session_backend", cfg.Session.Backend).
			Bool("payments", a.Payments.Enabled()).
			Bool("archive", a.Archive != nil).
			Msg("Console listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
