// Package worker provides background job processing for WasteTrack.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api/middleware"
)

// AlertReconciler corrects drifted alert flags. Implemented by the residue
// service.
type AlertReconciler interface {
	ReconcileAlerts(ctx context.Context) (bool, error)
}

// ReconcileConfig holds configuration for the alert reconcile job.
type ReconcileConfig struct {
	// Interval between scheduled runs. Default: 15 minutes.
	Interval time.Duration

	// Timeout for a single run. Default: 1 minute.
	Timeout time.Duration
}

// DefaultReconcileConfig returns the default reconcile configuration.
func DefaultReconcileConfig() ReconcileConfig {
	return ReconcileConfig{
		Interval: 15 * time.Minute,
		Timeout:  time.Minute,
	}
}

// ReconcileJobConfig holds configuration for creating a ReconcileJob.
type ReconcileJobConfig struct {
	Config   ReconcileConfig
	Logger   zerolog.Logger
	Residues AlertReconciler

	// Metrics is optional; runs are recorded when set.
	Metrics *middleware.JobMetrics
}

// ReconcileJob periodically scans residues for alert flags that disagree
// with the live quantity/threshold comparison and corrects them.
type ReconcileJob struct {
	config   ReconcileConfig
	logger   zerolog.Logger
	residues AlertReconciler
	metrics  *middleware.JobMetrics
}

// NewReconcileJob creates a new reconcile job processor.
func NewReconcileJob(cfg ReconcileJobConfig) *ReconcileJob {
	config := cfg.Config
	if config.Interval <= 0 {
		config.Interval = DefaultReconcileConfig().Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultReconcileConfig().Timeout
	}

	return &ReconcileJob{
		config:   config,
		logger:   cfg.Logger,
		residues: cfg.Residues,
		metrics:  cfg.Metrics,
	}
}

// ReconcileResult contains the result of a reconcile run.
type ReconcileResult struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Updated reports whether any record was corrected.
	Updated bool

	// Err is the run error, nil on success.
	Err error
}

// Run executes a single reconcile pass.
func (j *ReconcileJob) Run(ctx context.Context) *ReconcileResult {
	startTime := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	updated, err := j.residues.ReconcileAlerts(runCtx)

	result := &ReconcileResult{
		StartTime: startTime,
		EndTime:   time.Now(),
		Updated:   updated,
		Err:       err,
	}
	result.Duration = result.EndTime.Sub(result.StartTime)

	if j.metrics != nil {
		j.metrics.RecordRun("alert_reconcile", result.Duration, err)
		if updated {
			j.metrics.RecordCorrection("alert_reconcile")
		}
	}

	if err != nil {
		j.logger.Error().
			Err(err).
			Dur("duration", result.Duration).
			Msg("alert reconcile run failed")
		return result
	}

	j.logger.Info().
		Bool("updated", updated).
		Dur("duration", result.Duration).
		Msg("alert reconcile run completed")

	return result
}

// Start runs the job on its configured interval until the context is
// cancelled. The first run happens immediately.
func (j *ReconcileJob) Start(ctx context.Context) {
	j.logger.Info().
		Dur("interval", j.config.Interval).
		Msg("starting alert reconcile loop")

	j.Run(ctx)

	ticker := time.NewTicker(j.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("alert reconcile loop stopped")
			return
		case <-ticker.C:
			j.Run(ctx)
		}
	}
}
