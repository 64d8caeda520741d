package realtime

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"agency-console/internal/logger"
)

// Invalidator is satisfied by services.Collections.
type Invalidator interface {
	Invalidate(collections ...string)
}

// Scheduler periodically marks every collection stale so screens left open
// pick up changes made by other operators.
type Scheduler struct {
	cron        *cron.Cron
	target      Invalidator
	collections []string
	jobID       cron.EntryID
	log         zerolog.Logger
}

// NewScheduler parses schedule as a six field (seconds first) cron spec.
func NewScheduler(schedule string, target Invalidator, collections []string) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		target:      target,
		collections: collections,
		log:         logger.WithComponent("refresh"),
	}
	var err error
	s.jobID, err = s.cron.AddFunc(schedule, s.Tick)
	if err != nil {
		return nil, fmt.Errorf("error scheduling refresh %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Tick() {
	s.log.Debug().Strs("collections", s.collections).Msg("Scheduled refresh")
	s.target.Invalidate(s.collections...)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Time("next", s.cron.Entry(s.jobID).Next).Msg("Refresh scheduler started")
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Refresh scheduler stopped")
}
