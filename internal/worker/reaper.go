package worker

import (
	"context"
	"fmt"
	"time"

	"slot-ledger/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// ReaperWorker periodically rejects booking intents whose commit never finished.
type ReaperWorker struct {
	service   service.ReaperService
	interval  time.Duration
	logger    zerolog.Logger
	scheduler gocron.Scheduler
}

func NewReaperWorker(svc service.ReaperService, interval time.Duration, logger zerolog.Logger) (*ReaperWorker, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &ReaperWorker{
		service:   svc,
		interval:  interval,
		logger:    logger,
		scheduler: scheduler,
	}, nil
}

func (w *ReaperWorker) Start(ctx context.Context) error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			w.logger.Debug().Msg("Running stale intent reaper")
			if err := w.service.RejectStaleIntents(ctx); err != nil {
				w.logger.Error().Err(err).Msg("Failed to run stale intent reaper")
			}
		}),
		gocron.WithName("stale-intent-reaper"),
		// a slow run delays the next one instead of overlapping it
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule reaper: %w", err)
	}

	w.scheduler.Start()
	w.logger.Info().Dur("interval", w.interval).Msg("Reaper worker started")
	return nil
}

// Stop waits for a running job to finish.
func (w *ReaperWorker) Stop() {
	if err := w.scheduler.Shutdown(); err != nil {
		w.logger.Error().Err(err).Msg("Reaper worker shutdown error")
		return
	}
	w.logger.Info().Msg("Reaper worker stopped")
}
