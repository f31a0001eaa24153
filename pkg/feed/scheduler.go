package feed

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler re-runs the configured feed load on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// StartScheduler starts a periodic reload with the given 5-field cron spec.
// An empty spec disables scheduling and returns nil.
func StartScheduler(spec string, svc *Service) (*Scheduler, error) {
	if spec == "" {
		log.Info("feed: periodic refresh disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		log.Info("feed: scheduled refresh starting")
		svc.LoadConfigured(context.Background())
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Infof("feed: periodic refresh scheduled (%s)", spec)

	return &Scheduler{cron: c}, nil
}

// Stop halts the schedule; a refresh already in flight finishes.
func (s *Scheduler) Stop() {
	if s != nil && s.cron != nil {
		s.cron.Stop()
	}
}
