package repositories

import (
	"context"
	"net/url"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type AttendanceRepository struct {
	API *apiclient.Client
}

func NewAttendanceRepository(api *apiclient.Client) *AttendanceRepository {
	return &AttendanceRepository{API: api}
}

// Mine returns the signed-in user's own attendance.
func (r *AttendanceRepository) Mine(ctx context.Context) ([]models.Attendance, error) {
	data, err := r.API.Get(ctx, join(pathAttendance, "get"))
	if err != nil {
		return nil, err
	}
	return adapters.DecodeAttendance(data)
}

// All returns every record, or one person's when userID is set.
func (r *AttendanceRepository) All(ctx context.Context, userID string) ([]models.Attendance, error) {
	p := join(pathAttendance, "all")
	if userID != "" {
		p += "?" + url.Values{"userId": {userID}}.Encode()
	}
	data, err := r.API.Get(ctx, p)
	if err != nil {
		return nil, err
	}
	return adapters.DecodeAttendance(data)
}

func (r *AttendanceRepository) Mark(ctx context.Context, req *models.AttendanceRequest) error {
	_, err := r.API.Post(ctx, join(pathAttendance, "create"), req)
	return err
}
