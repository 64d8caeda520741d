package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type HandoverRepository struct {
	API *apiclient.Client
}

func NewHandoverRepository(api *apiclient.Client) *HandoverRepository {
	return &HandoverRepository{API: api}
}

func (r *HandoverRepository) List(ctx context.Context) ([]models.Handover, error) {
	data, err := r.API.Get(ctx, join(pathHandover, "all"))
	if err != nil {
		return nil, err
	}
	return adapters.DecodeHandovers(data)
}

func (r *HandoverRepository) Get(ctx context.Context, id string) (models.Handover, error) {
	data, err := r.API.Get(ctx, join(pathHandover, id))
	if err != nil {
		return models.Handover{}, err
	}
	return adapters.DecodeHandover(data)
}

func (r *HandoverRepository) Create(ctx context.Context, req *models.HandoverRequest) error {
	_, err := r.API.Post(ctx, join(pathHandover, "add"), req)
	return err
}

func (r *HandoverRepository) Update(ctx context.Context, id string, req *models.HandoverRequest) error {
	_, err := r.API.Put(ctx, join(pathHandover, "update", id), req)
	return err
}

func (r *HandoverRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathHandover, "delete", id))
	return err
}
