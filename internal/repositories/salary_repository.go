package repositories

import (
	"context"

	"agency-console/internal/adapters"
	"agency-console/internal/apiclient"
	"agency-console/internal/models"
)

// SalaryRepository covers the append-only salary ledger.
type SalaryRepository struct {
	API *apiclient.Client
}

func NewSalaryRepository(api *apiclient.Client) *SalaryRepository {
	return &SalaryRepository{API: api}
}

func (r *SalaryRepository) Add(ctx context.Context, req *models.SalaryRequest) error {
	_, err := r.API.Post(ctx, join(pathSalary, "add"), req)
	return err
}

// History returns the payments made to one employee or intern.
func (r *SalaryRepository) History(ctx context.Context, payeeID string) ([]models.SalaryPayment, error) {
	data, err := r.API.Get(ctx, join(pathSalary, "history", payeeID))
	if err != nil {
		return nil, err
	}
	return adapters.DecodeSalaryPayments(data)
}

func (r *SalaryRepository) Stats(ctx context.Context) ([]models.SalaryStat, error) {
	data, err := r.API.Get(ctx, join(pathSalary, "stats"))
	if err != nil {
		return nil, err
	}
	return adapters.DecodeSalaryStats(data)
}

func (r *SalaryRepository) All(ctx context.Context) ([]models.SalaryPayment, error) {
	data, err := r.API.Get(ctx, join(pathSalary, "all"))
	if err != nil {
		return nil, err
	}
	return adapters.DecodeSalaryPayments(data)
}
