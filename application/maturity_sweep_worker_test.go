package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) SweepMaturedStakes(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestMaturitySweepWorker_RunOnce(t *testing.T) {
	sweeper := &countingSweeper{}
	worker := NewMaturitySweepWorker(sweeper, "@every 1m")

	worker.RunOnce(context.Background())
	assert.Equal(t, int32(1), sweeper.calls.Load())

	sweeper.err = errors.New("database unavailable")
	worker.RunOnce(context.Background())
	assert.Equal(t, int32(2), sweeper.calls.Load())
}

func TestMaturitySweepWorker_SkipsCancelledContext(t *testing.T) {
	sweeper := &countingSweeper{}
	worker := NewMaturitySweepWorker(sweeper, "@every 1m")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.RunOnce(ctx)

	assert.Equal(t, int32(0), sweeper.calls.Load())
}

func TestMaturitySweepWorker_RejectsBadSchedule(t *testing.T) {
	worker := NewMaturitySweepWorker(&countingSweeper{}, "not a schedule")

	stop, err := worker.Start(context.Background())
	assert.Error(t, err)
	assert.Nil(t, stop)
}

func TestMaturitySweepWorker_RunsOnSchedule(t *testing.T) {
	sweeper := &countingSweeper{}
	worker := NewMaturitySweepWorker(sweeper, "@every 1s")

	stop, err := worker.Start(context.Background())
	require.NoError(t, err)
	defer stop()

	assert.Eventually(t, func() bool {
		return sweeper.calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)
}
