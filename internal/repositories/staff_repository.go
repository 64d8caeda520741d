package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type EmployeeRepository struct {
	API *apiclient.Client
}

func NewEmployeeRepository(api *apiclient.Client) *EmployeeRepository {
	return &EmployeeRepository{API: api}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	data, err := r.API.Get(ctx, pathEmployee)
	if err != nil {
		return nil, err
	}
	return adapters.DecodeEmployees(data)
}

// Me returns the signed-in employee's profile.
func (r *EmployeeRepository) Me(ctx context.Context) (models.Employee, error) {
	data, err := r.API.Get(ctx, join(pathEmployee, "me"))
	if err != nil {
		return models.Employee{}, err
	}
	return adapters.DecodeEmployeeProfile(data)
}

func (r *EmployeeRepository) Create(ctx context.Context, req *models.StaffRequest) error {
	_, err := r.API.Post(ctx, pathEmployee, req)
	return err
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, req *models.StaffRequest) error {
	_, err := r.API.Put(ctx, join(pathEmployee, id), req)
	return err
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathEmployee, id))
	return err
}

type InternRepository struct {
	API *apiclient.Client
}

func NewInternRepository(api *apiclient.Client) *InternRepository {
	return &InternRepository{API: api}
}

func (r *InternRepository) List(ctx context.Context) ([]models.Intern, error) {
	data, err := r.API.Get(ctx, pathIntern)
	if err != nil {
		return nil, err
	}
	return adapters.DecodeInterns(data)
}

// Me returns the signed-in intern's profile.
func (r *InternRepository) Me(ctx context.Context) (models.Intern, error) {
	data, err := r.API.Get(ctx, join(pathIntern, "me"))
	if err != nil {
		return models.Intern{}, err
	}
	return adapters.DecodeInternProfile(data)
}

func (r *InternRepository) Create(ctx context.Context, req *models.StaffRequest) error {
	_, err := r.API.Post(ctx, pathIntern, req)
	return err
}

func (r *InternRepository) Update(ctx context.Context, id string, req *models.StaffRequest) error {
	_, err := r.API.Put(ctx, join(pathIntern, "update", id), req)
	return err
}

func (r *InternRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathIntern, "delete", id))
	return err
}
