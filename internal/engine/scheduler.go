package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/meli-product-tracker/internal/meli"
	"github.com/donaldgifford/meli-product-tracker/internal/metrics"
	"github.com/donaldgifford/meli-product-tracker/internal/notify"
)

// Scheduler re-runs the pipeline for a configured category on a fixed
// interval, replacing the session batch and posting a digest.
type Scheduler struct {
	cron     *cron.Cron
	engine   *Engine
	session  *Session
	notifier notify.Notifier
	log      *slog.Logger

	category string
	limit    int
}

// NewScheduler creates a new Scheduler that refreshes the given
// category every interval.
func NewScheduler(
	eng *Engine,
	session *Session,
	notifier notify.Notifier,
	category string,
	limit int,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if _, ok := meli.CategoryID(category); !ok {
		return nil, fmt.Errorf("unknown refresh category %q", category)
	}

	c := cron.New()

	s := &Scheduler{
		cron:     c,
		engine:   eng,
		session:  session,
		notifier: notifier,
		log:      log,
		category: category,
		limit:    limit,
	}

	if _, err := c.AddFunc(
		"@every "+interval.String(),
		s.runRefresh,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled refreshes.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "category", s.category, "limit", s.limit)
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running refresh to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runRefresh() {
	ctx := context.Background()
	s.log.Info("scheduled refresh starting", "category", s.category)

	categoryID, _ := meli.CategoryID(s.category)

	batch, err := s.engine.Run(ctx, s.category, categoryID, s.limit)
	if err != nil {
		// Keep the previous batch; a failed refresh must not blank the session.
		s.log.Error("scheduled refresh failed", "category", s.category, "error", err)
		return
	}

	s.session.SetBatch(batch)

	digest := notify.Digest{
		BatchID:   batch.ID,
		Category:  batch.Category,
		Items:     len(batch.Products),
		Skipped:   len(batch.Skipped),
		Degraded:  batch.DegradedCount(),
		FetchedAt: batch.FetchedAt,
	}

	if err := s.notifier.SendDigest(ctx, digest); err != nil {
		s.log.Error("digest delivery failed", "error", err)
		metrics.NotificationFailuresTotal.Inc()
	}
}
