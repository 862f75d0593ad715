package worker

import (
	"context"
	"roost/internal/bookings/repository"
	"roost/pkg/config"
	"time"
)

// CompletionWorker periodically flips confirmed bookings whose checkout has
// passed to completed, which gates review eligibility.
type CompletionWorker struct {
	repo     repository.BookingRepository
	cfg      *config.Config
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewCompletionWorker(repo repository.BookingRepository, cfg *config.Config) *CompletionWorker {
	return &CompletionWorker{
		repo:     repo,
		cfg:      cfg,
		interval: cfg.CompletionInterval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background loop. One sweep runs immediately so a
// restart does not wait a full interval to catch up.
func (w *CompletionWorker) Start() {
	go func() {
		defer close(w.done)

		w.sweep()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.sweep()
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for the in-flight sweep.
func (w *CompletionWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *CompletionWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
	defer cancel()

	updated, err := w.repo.MarkCompletedBefore(ctx, time.Now())
	if err != nil {
		w.cfg.Log.Error("Completion sweep failed", "error", err)
		return
	}

	if updated > 0 {
		w.cfg.Log.Info("Completion sweep finished", "bookings_completed", updated)
	}
}
