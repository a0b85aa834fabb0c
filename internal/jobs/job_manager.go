package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"vacancybot/internal/pkg/clock"
)

// Config tunes the scheduled jobs.
type Config struct {
	// DeliverySchedule is a six-field cron expression (with seconds).
	DeliverySchedule string
	// DeliveryTimeout bounds one delivery tick; zero means no bound.
	DeliveryTimeout time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	vacancyDeliveryJob *VacancyDeliveryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	deliveryTickHandler DeliveryTickHandler,
	cfg Config,
	clk clock.Clock,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		vacancyDeliveryJob: NewVacancyDeliveryJob(deliveryTickHandler, cfg.DeliverySchedule, cfg.DeliveryTimeout, clk, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.vacancyDeliveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start vacancy delivery job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully, waiting for running ticks.
func (jm *JobManager) StopAll() {
	jm.vacancyDeliveryJob.Stop()
}
