package services

import (
	"context"
	"errors"
	"time"

	"agency-console/internal/aggregate"
	"agency-console/internal/models"
	"agency-console/internal/repositories"
	"agency-console/internal/timeutil"
)

var ErrAlreadyMarked = errors.New("attendance already marked for today")

type AttendanceService struct {
	Repo   *repositories.AttendanceRepository
	Events Invalidator
	Clock  func() time.Time
}

func NewAttendanceService(repo *repositories.AttendanceRepository, events Invalidator) *AttendanceService {
	if events == nil {
		events = nopInvalidator{}
	}
	return &AttendanceService{Repo: repo, Events: events, Clock: timeutil.Now}
}

func (s *AttendanceService) Mine(ctx context.Context) ([]models.Attendance, error) {
	return s.Repo.Mine(ctx)
}

func (s *AttendanceService) All(ctx context.Context, userID string) ([]models.Attendance, error) {
	return s.Repo.All(ctx, userID)
}

// MarkPresent records today's attendance for the signed-in user. A second
// mark on the same IST day is refused without calling the API.
func (s *AttendanceService) MarkPresent(ctx context.Context) error {
	records, err := s.Repo.Mine(ctx)
	if err != nil {
		return err
	}
	now := s.Clock()
	if aggregate.MarkedToday(records, now) {
		return ErrAlreadyMarked
	}
	stamp := now.UTC().Format(time.RFC3339)
	req := &models.AttendanceRequest{Date: stamp, Status: models.AttendancePresent, TimeIn: stamp}
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.Mark(ctx, req); err != nil {
		return err
	}
	s.Events.Invalidate(CollectionAttendance)
	return nil
}
