package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the client.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationReportJob *LocationReportJob
	sessionRefreshJob *SessionRefreshJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	sessions SessionSource,
	refresher SessionRefresher,
	source LocationSource,
	publisher LocationPublisher,
	locationSpec string,
	refreshSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationReportJob: NewLocationReportJob(sessions, source, publisher, locationSpec, logger),
		sessionRefreshJob: NewSessionRefreshJob(refresher, refreshSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start session refresh job: %w", err)
	}

	if err := jm.locationReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionRefreshJob.Stop()
		return fmt.Errorf("failed to start location report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.locationReportJob.Stop()
	jm.sessionRefreshJob.Stop()
}
