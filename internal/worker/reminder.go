// Package worker runs background jobs next to the HTTP server.
package worker

import (
	"context"
	"time"

	"github.com/gdg-garage/pulse-events/internal/database"
	"github.com/gdg-garage/pulse-events/internal/listing"
	"github.com/gdg-garage/pulse-events/internal/models"
	"github.com/gdg-garage/pulse-events/internal/notifier"
	"go.uber.org/zap"
)

type ReminderStore interface {
	ReminderCandidates(ctx context.Context, from, to time.Time) ([]database.ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, rsvpID uint) error
}

// ReminderWorker texts registered students the day before their event.
type ReminderWorker struct {
	store      ReminderStore
	dispatcher notifier.Dispatcher
	interval   time.Duration
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewReminderWorker(store ReminderStore, dispatcher notifier.Dispatcher, interval time.Duration, loc *time.Location, logger *zap.Logger) *ReminderWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderWorker{
		store:      store,
		dispatcher: dispatcher,
		interval:   interval,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// Start runs a pass immediately and then on every tick until ctx is done.
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("reminder pass failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce sends reminders for events taking place tomorrow and returns how
// many were delivered. Failed sends are left for the next pass.
func (w *ReminderWorker) RunOnce(ctx context.Context) (int, error) {
	tomorrow := listing.Day(w.now().In(w.loc)).AddDate(0, 0, 1)
	candidates, err := w.store.ReminderCandidates(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, c := range candidates {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		message := notifier.ReminderMessage(models.Event{
			Title:     c.Title,
			EventDate: c.EventDate,
			TimeStart: c.TimeStart,
			Location:  c.Location,
		})
		if err := w.dispatcher.Dispatch(ctx, c.Phone, message); err != nil {
			w.logger.Warn("failed to send reminder", zap.Uint("rsvp_id", c.RSVPID), zap.Error(err))
			continue
		}
		if err := w.store.MarkReminderSent(ctx, c.RSVPID); err != nil {
			w.logger.Error("failed to record reminder", zap.Uint("rsvp_id", c.RSVPID), zap.Error(err))
			continue
		}
		sent++
	}

	if sent > 0 {
		w.logger.Info("reminders sent", zap.Int("count", sent), zap.Time("event_date", tomorrow))
	}
	return sent, nil
}
