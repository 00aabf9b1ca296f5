package application

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// MaturitySweepWorker periodically completes matured stakes for every user.
// Reads already derive maturity from the clock; the sweep keeps stored status current.
type MaturitySweepWorker struct {
	sweeper  StakeSweeper
	schedule string
	cron     *cron.Cron
}

// NewMaturitySweepWorker creates a new maturity sweep worker.
// schedule accepts standard cron expressions and descriptors such as "@every 1m".
func NewMaturitySweepWorker(sweeper StakeSweeper, schedule string) *MaturitySweepWorker {
	return &MaturitySweepWorker{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start schedules the sweep and returns a function that stops it and waits for a running sweep
func (w *MaturitySweepWorker) Start(ctx context.Context) (func(), error) {
	_, err := w.cron.AddFunc(w.schedule, func() {
		w.RunOnce(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid maturity sweep schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	log.Infof("Maturity sweep worker started (%s)", w.schedule)

	return func() {
		<-w.cron.Stop().Done()
		log.Info("Maturity sweep worker stopped")
	}, nil
}

// RunOnce sweeps matured stakes a single time
func (w *MaturitySweepWorker) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	count, err := w.sweeper.SweepMaturedStakes(ctx)
	if err != nil {
		log.WithError(err).Error("Error sweeping matured stakes")
		return
	}
	if count > 0 {
		log.WithFields(log.Fields{
			"completed": count,
		}).Info("Completed matured stakes")
	}
}
