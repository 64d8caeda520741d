package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type ClientRepository struct {
	API *apiclient.Client
}

func NewClientRepository(api *apiclient.Client) *ClientRepository {
	return &ClientRepository{API: api}
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	data, err := r.API.Get(ctx, pathClient)
	if err != nil {
		return nil, err
	}
	return adapters.DecodeClients(data)
}

func (r *ClientRepository) Create(ctx context.Context, req *models.ClientRequest) error {
	_, err := r.API.Post(ctx, pathClient, req)
	return err
}

func (r *ClientRepository) Update(ctx context.Context, id string, req *models.ClientRequest) error {
	_, err := r.API.Put(ctx, join(pathClient, "update", id), req)
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathClient, "delete", id))
	return err
}
