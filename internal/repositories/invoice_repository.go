package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

type InvoiceRepository struct {
	API *apiclient.Client
}

func NewInvoiceRepository(api *apiclient.Client) *InvoiceRepository {
	return &InvoiceRepository{API: api}
}

func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	data, err := r.API.Get(ctx, pathInvoice)
	if err != nil {
		return nil, err
	}
	return adapters.DecodeInvoices(data)
}

func (r *InvoiceRepository) Get(ctx context.Context, id string) (models.Invoice, error) {
	data, err := r.API.Get(ctx, join(pathInvoice, id))
	if err != nil {
		return models.Invoice{}, err
	}
	return adapters.DecodeInvoice(data)
}

func (r *InvoiceRepository) Create(ctx context.Context, req *models.InvoiceRequest) error {
	_, err := r.API.Post(ctx, pathInvoice, req)
	return err
}

func (r *InvoiceRepository) Update(ctx context.Context, id string, req *models.InvoiceRequest) error {
	_, err := r.API.Put(ctx, join(pathInvoice, "update", id), req)
	return err
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.API.Delete(ctx, join(pathInvoice, "delete", id))
	return err
}
