package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastetrack/wastetrack/internal/worker"
)

type reconcilerStub struct {
	updated bool
	err     error
	calls   int
}

func (s *reconcilerStub) ReconcileAlerts(ctx context.Context) (bool, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.updated, s.err
}

func TestDefaultReconcileConfig(t *testing.T) {
	cfg := worker.DefaultReconcileConfig()

	assert.Equal(t, 15*time.Minute, cfg.Interval)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestNewReconcileJob_DefaultsZeroValues(t *testing.T) {
	stub := &reconcilerStub{}
	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Logger:   zerolog.Nop(),
		Residues: stub,
	})

	// A zero-value config must not produce a job that times out instantly.
	result := job.Run(context.Background())
	require.NoError(t, result.Err)
	assert.Equal(t, 1, stub.calls)
}

func TestReconcileJob_Run_NoCorrections(t *testing.T) {
	stub := &reconcilerStub{updated: false}
	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config:   worker.DefaultReconcileConfig(),
		Logger:   zerolog.Nop(),
		Residues: stub,
	})

	result := job.Run(context.Background())

	require.NoError(t, result.Err)
	assert.False(t, result.Updated)
	assert.Equal(t, 1, stub.calls)
	assert.False(t, result.EndTime.Before(result.StartTime))
	assert.Equal(t, result.EndTime.Sub(result.StartTime), result.Duration)
}

func TestReconcileJob_Run_WithCorrections(t *testing.T) {
	stub := &reconcilerStub{updated: true}
	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config:   worker.DefaultReconcileConfig(),
		Logger:   zerolog.Nop(),
		Residues: stub,
	})

	result := job.Run(context.Background())

	require.NoError(t, result.Err)
	assert.True(t, result.Updated)
}

func TestReconcileJob_Run_Error(t *testing.T) {
	wantErr := errors.New("storage unavailable")
	stub := &reconcilerStub{err: wantErr}
	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config:   worker.DefaultReconcileConfig(),
		Logger:   zerolog.Nop(),
		Residues: stub,
	})

	result := job.Run(context.Background())

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, wantErr)
	assert.False(t, result.Updated)
}

func TestReconcileJob_Run_CancelledContext(t *testing.T) {
	stub := &reconcilerStub{}
	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config:   worker.DefaultReconcileConfig(),
		Logger:   zerolog.Nop(),
		Residues: stub,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := job.Run(ctx)
	require.Error(t, result.Err)
}

func TestReconcileJob_Start_StopsOnCancel(t *testing.T) {
	stub := &reconcilerStub{}
	job := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config: worker.ReconcileConfig{
			Interval: 10 * time.Millisecond,
			Timeout:  time.Second,
		},
		Logger:   zerolog.Nop(),
		Residues: stub,
	})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	// Let the immediate run plus at least one tick happen.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	assert.GreaterOrEqual(t, stub.calls, 2)
}
