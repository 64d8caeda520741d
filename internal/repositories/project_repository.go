package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type ProjectRepository struct {
	API *apiclient.Client
}

func NewProjectRepository(api *apiclient.Client) *ProjectRepository {
	return &ProjectRepository{API: api}
}

func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	data, err := r.API.Get(ctx, pathProject)
	if err != nil {
		return nil, err
	}
	return adapters.DecodeProjects(data)
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (models.Project, error) {
	data, err := r.API.Get(ctx, join(pathProject, id))
	if err != nil {
		return models.Project{}, err
	}
	return adapters.DecodeProject(data)
}

func (r *ProjectRepository) Create(ctx context.Context, req *models.ProjectRequest) error {
	_, err := r.API.Post(ctx, join(pathProject, "create"), req)
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, id string, req *models.ProjectRequest) error {
	_, err := r.API.Put(ctx, join(pathProject, "update", id), req)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathProject, "delete", id))
	return err
}
