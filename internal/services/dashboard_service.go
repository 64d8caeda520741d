package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"agency-console/internal/aggregate"
	"agency-console/internal/logger"
	"agency-console/internal/models"
	"agency-console/internal/repositories"
	"agency-console/internal/timeutil"
)

type DashboardService struct {
	Collections *Collections
	Attendance  *repositories.AttendanceRepository
	Profiles    *ProfileService
	Clock       func() time.Time

	log zerolog.Logger
}

func NewDashboardService(collections *Collections, attendance *repositories.AttendanceRepository, profiles *ProfileService) *DashboardService {
	return &DashboardService{
		Collections: collections,
		Attendance:  attendance,
		Profiles:    profiles,
		Clock:       timeutil.Now,
		log:         logger.WithComponent("dashboard"),
	}
}

// Admin fetches every collection concurrently and computes the rollups. A
// collection that fails to load is logged and counted as empty so the rest of
// the dashboard still renders.
func (s *DashboardService) Admin(ctx context.Context) aggregate.Dashboard {
	var in aggregate.Inputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		in.Invoices = orEmpty[models.Invoice](s.log, CollectionInvoices)(s.Collections.Invoices.Refresh(gctx))
		return nil
	})
	g.Go(func() error {
		in.Projects = orEmpty[models.Project](s.log, CollectionProjects)(s.Collections.Projects.Refresh(gctx))
		return nil
	})
	g.Go(func() error {
		in.Clients = orEmpty[models.Client](s.log, CollectionClients)(s.Collections.Clients.Refresh(gctx))
		return nil
	})
	g.Go(func() error {
		in.Attendance = orEmpty[models.Attendance](s.log, CollectionAttendance)(s.Attendance.All(gctx, ""))
		return nil
	})
	_ = g.Wait()

	return aggregate.BuildDashboard(in, s.Clock())
}

// orEmpty logs a failed fetch and substitutes an empty collection.
func orEmpty[T any](log zerolog.Logger, name string) func([]T, error) []T {
	return func(items []T, err error) []T {
		if err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("Dashboard collection unavailable")
			return []T{}
		}
		return items
	}
}

// StaffDashboard is the landing screen for employees and interns.
type StaffDashboard struct {
	Name             string              `json:"name"`
	Profile          *Profile            `json:"profile,omitempty"`
	PresentDays      int                 `json:"presentDays"`
	MarkedToday      bool                `json:"markedToday"`
	LatestAttendance []models.Attendance `json:"latestAttendance"`
	Attendance       []models.Attendance `json:"attendance"`
}

func (s *DashboardService) Staff(ctx context.Context, user models.AuthUser) StaffDashboard {
	var (
		profile    *Profile
		attendance []models.Attendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Profiles.Me(gctx, user)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("Profile unavailable")
			return nil
		}
		profile = &p
		return nil
	})
	g.Go(func() error {
		records, err := s.Attendance.Mine(gctx)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("Attendance unavailable")
			records = []models.Attendance{}
		}
		attendance = records
		return nil
	})
	_ = g.Wait()

	name := user.Name
	if profile != nil && profile.Name() != "" {
		name = profile.Name()
	}
	return StaffDashboard{
		Name:             name,
		Profile:          profile,
		PresentDays:      aggregate.PresentDays(attendance),
		MarkedToday:      aggregate.MarkedToday(attendance, s.Clock()),
		LatestAttendance: aggregate.LatestAttendance(attendance, 5),
		Attendance:       attendance,
	}
}
