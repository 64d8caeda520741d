package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"agency-console/internal/aggregate"
	"agency-console/internal/logger"
	"agency-console/internal/models"
	"agency-console/internal/repositories"
	"agency-console/internal/timeutil"
)

var ErrClientNotFound = errors.New("client not found")

type InvoiceService struct {
	Repo        *repositories.InvoiceRepository
	Collections *Collections
	Clock       func() time.Time

	log zerolog.Logger
}

func NewInvoiceService(repo *repositories.InvoiceRepository, collections *Collections) *InvoiceService {
	return &InvoiceService{
		Repo:        repo,
		Collections: collections,
		Clock:       timeutil.Now,
		log:         logger.WithComponent("invoices"),
	}
}

// List fetches the invoice collection and filters it by query.
func (s *InvoiceService) List(ctx context.Context, query string) ([]models.Invoice, error) {
	invoices, err := s.Collections.Invoices.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.FilterInvoices(invoices, query), nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (models.Invoice, error) {
	return s.Repo.Get(ctx, id)
}

// Draft is what the invoice form shows once a client is picked.
type Draft struct {
	ClientID     string           `json:"clientId"`
	Totals       aggregate.Totals `json:"totals"`
	DueBreakdown []models.DueItem `json:"dueBreakdown"`
	Projects     []models.Project `json:"projects"`
}

// PrepareDraft captures the client's current due for a new invoice. The form
// keeps this snapshot; later changes to the client's balance do not move it.
func (s *InvoiceService) PrepareDraft(ctx context.Context, clientID string) (Draft, error) {
	clients, err := s.Collections.Clients.Get(ctx)
	if err != nil {
		return Draft{}, err
	}
	projects, err := s.Collections.Projects.Get(ctx)
	if err != nil {
		return Draft{}, err
	}

	var client *models.Client
	for i := range clients {
		if clients[i].ID == clientID {
			client = &clients[i]
			break
		}
	}
	if client == nil {
		return Draft{}, ErrClientNotFound
	}

	var d aggregate.Draft
	d.SelectClient(*client, projects)

	own := []models.Project{}
	for _, p := range projects {
		if p.ClientID == clientID {
			own = append(own, p)
		}
	}
	return Draft{
		ClientID:     clientID,
		Totals:       d.Totals(),
		DueBreakdown: d.DueBreakdown(),
		Projects:     own,
	}, nil
}

// Create guards the amount against the project's remaining budget, then
// submits. Nothing is sent when the guard fails.
func (s *InvoiceService) Create(ctx context.Context, req *models.InvoiceRequest) error {
	if err := checkInvoice(req); err != nil {
		return err
	}
	if req.PreviousDue.IsNegative() {
		return fieldError("previousDue", "must not be negative")
	}
	if req.Status == "" {
		req.Status = models.InvoicePaid
	}
	if req.Date == "" {
		req.Date = timeutil.FormatIST(s.Clock(), timeutil.DateLayout)
	}
	req.GrandTotal = aggregate.ComputeTotals(req.Amount, req.PreviousDue).GrandTotal
	projects, err := s.Collections.Projects.Get(ctx)
	if err != nil {
		return err
	}
	if err := aggregate.CheckBudget(req.Amount, req.ProjectID, projects, nil); err != nil {
		return err
	}

	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.log.Info().Str("invoice_no", req.InvoiceNo).Str("project_id", req.ProjectID).Str("amount", req.Amount.String()).Msg("Invoice created")
	s.invalidate()
	return nil
}

// Update applies the same guard, returning the original amount to the pool
// when the invoice stays on its project. The previous-due snapshot is taken
// from the stored invoice, never from the form.
func (s *InvoiceService) Update(ctx context.Context, id string, req *models.InvoiceRequest) error {
	if err := checkInvoice(req); err != nil {
		return err
	}
	original, err := s.original(ctx, id)
	if err != nil {
		return err
	}
	keepSnapshot(req, original)
	projects, err := s.Collections.Projects.Get(ctx)
	if err != nil {
		return err
	}
	if err := aggregate.CheckBudget(req.Amount, req.ProjectID, projects, &original); err != nil {
		return err
	}

	if err := s.Repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.log.Info().Str("invoice_id", id).Str("amount", req.Amount.String()).Msg("Invoice updated")
	s.invalidate()
	return nil
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("invoice_id", id).Msg("Invoice deleted")
	s.invalidate()
	return nil
}

func checkInvoice(req *models.InvoiceRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if !req.Amount.IsPositive() {
		return fieldError("amount", "must be greater than zero")
	}
	return nil
}

// keepSnapshot carries the stored previous due onto an edit so the grand
// total stays amount plus the due captured at creation. A blank date or
// status keeps the stored value.
func keepSnapshot(req *models.InvoiceRequest, original models.Invoice) {
	req.PreviousDue = original.PreviousDue
	req.DueBreakdown = original.DueBreakdown
	req.GrandTotal = aggregate.ComputeTotals(req.Amount, original.PreviousDue).GrandTotal
	if req.Date == "" && !original.Date.IsZero() {
		req.Date = timeutil.FormatIST(original.Date, timeutil.DateLayout)
	}
	if req.Status == "" {
		req.Status = original.Status
	}
}

func (s *InvoiceService) original(ctx context.Context, id string) (models.Invoice, error) {
	invoices, err := s.Collections.Invoices.Get(ctx)
	if err != nil {
		return models.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return s.Repo.Get(ctx, id)
}

// Invoice writes move project dues and client balances on the server, so all
// three collections are refetched.
func (s *InvoiceService) invalidate() {
	s.Collections.Invalidate(CollectionInvoices, CollectionProjects, CollectionClients)
}

// BillTo returns the invoice's client from the cached collection. When the
// client cannot be found the name printed on the invoice is used.
func (s *InvoiceService) BillTo(ctx context.Context, inv models.Invoice) models.Client {
	if clients, err := s.Collections.Clients.Get(ctx); err == nil {
		for _, c := range clients {
			if c.ID == inv.ClientID {
				return c
			}
		}
	}
	return models.Client{ID: inv.ClientID, Name: inv.ClientName}
}
