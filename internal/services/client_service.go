package services

import (
	"context"

	"github.com/rs/zerolog"

	"agency-console/internal/aggregate"
	"agency-console/internal/logger"
	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

type ClientService struct {
	Repo        *repositories.ClientRepository
	Collections *Collections

	log zerolog.Logger
}

func NewClientService(repo *repositories.ClientRepository, collections *Collections) *ClientService {
	return &ClientService{Repo: repo, Collections: collections, log: logger.WithComponent("clients")}
}

// List returns clients with their outstanding balance. Clients the API sent
// without a totalDue get the sum of their project dues; if projects cannot be
// loaded those balances stay at zero.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients, err := s.Collections.Clients.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.Collections.Projects.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Projects unavailable; client dues not derived")
		projects = nil
	}

	out := make([]models.Client, len(clients))
	for i, c := range clients {
		c.TotalDue = aggregate.ClientDue(c, projects)
		out[i] = c
	}
	return out, nil
}

func (s *ClientService) Create(ctx context.Context, req *models.ClientRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return err
	}
	s.Collections.Invalidate(CollectionClients)
	return nil
}

func (s *ClientService) Update(ctx context.Context, id string, req *models.ClientRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.Collections.Invalidate(CollectionClients, CollectionInvoices, CollectionProjects)
	return nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("client_id", id).Msg("Client deleted")
	s.Collections.Invalidate(CollectionClients, CollectionInvoices, CollectionProjects)
	return nil
}
