package services

import (
	"context"
	"sync"

	"agency-console/internal/models"
	"agency-console/internal/repositories"
)

// Collection names broadcast to open screens after a successful write.
const (
	CollectionClients        = "clients"
	CollectionProjects       = "projects"
	CollectionInvoices       = "invoices"
	CollectionEmployees      = "employees"
	CollectionInterns        = "interns"
	CollectionHandovers      = "handovers"
	CollectionNotices        = "notices"
	CollectionCommunications = "communications"
	CollectionAttendance     = "attendance"
	CollectionSalaries       = "salaries"
	CollectionProfile        = "profile"
)

// AllCollections is every collection a screen can show.
var AllCollections = []string{
	CollectionClients, CollectionProjects, CollectionInvoices, CollectionEmployees, CollectionInterns,
	CollectionHandovers, CollectionNotices, CollectionCommunications, CollectionAttendance,
	CollectionSalaries, CollectionProfile,
}

// Invalidator tells open screens which collections to refetch.
type Invalidator interface {
	Invalidate(collections ...string)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(...string) {}

// snapshot is the last fetched copy of a collection. It is never patched
// locally: a write marks it stale and the next reader refetches.
type snapshot[T any] struct {
	mu     sync.Mutex
	items  []T
	loaded bool
	load   func(context.Context) ([]T, error)
}

func (s *snapshot[T]) Get(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	if s.loaded {
		items := s.items
		s.mu.Unlock()
		return items, nil
	}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

func (s *snapshot[T]) Refresh(ctx context.Context) ([]T, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items, s.loaded = items, true
	s.mu.Unlock()
	return items, nil
}

func (s *snapshot[T]) Stale() {
	s.mu.Lock()
	s.items, s.loaded = nil, false
	s.mu.Unlock()
}

// Collections holds the snapshots that pre-submission checks read and
// fans invalidations out to the browser.
type Collections struct {
	Projects *snapshot[models.Project]
	Invoices *snapshot[models.Invoice]
	Clients  *snapshot[models.Client]

	events Invalidator
}

func NewCollections(projects *repositories.ProjectRepository, invoices *repositories.InvoiceRepository, clients *repositories.ClientRepository, events Invalidator) *Collections {
	if events == nil {
		events = nopInvalidator{}
	}
	return &Collections{
		Projects: &snapshot[models.Project]{load: projects.List},
		Invoices: &snapshot[models.Invoice]{load: invoices.List},
		Clients:  &snapshot[models.Client]{load: clients.List},
		events:   events,
	}
}

// Invalidate marks the named collections stale and notifies open screens.
func (c *Collections) Invalidate(collections ...string) {
	for _, name := range collections {
		switch name {
		case CollectionProjects:
			c.Projects.Stale()
		case CollectionInvoices:
			c.Invoices.Stale()
		case CollectionClients:
			c.Clients.Stale()
		}
	}
	c.events.Invalidate(collections...)
}
