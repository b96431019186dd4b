package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionRefresher checks the session token and invalidates the session
// when the token has expired.
type SessionRefresher interface {
	RefreshIfExpired(ctx context.Context, now time.Time) (bool, error)
}

// SessionRefreshJob periodically checks the session token's expiry so an
// idle client signs itself out instead of failing on its next request.
type SessionRefreshJob struct {
	sessions SessionRefresher
	spec     string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionRefreshJob creates the session expiry job. spec is a cron
// expression with seconds, e.g. "0 * * * * *" for every minute.
func NewSessionRefreshJob(sessions SessionRefresher, spec string, logger *slog.Logger) *SessionRefreshJob {
	return &SessionRefreshJob{
		sessions: sessions,
		spec:     spec,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_refresh_job"),
	}
}

// Start schedules the job.
func (j *SessionRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		invalidated, err := j.sessions.RefreshIfExpired(ctx, time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Session refresh check failed", "error", err)
			return
		}
		if invalidated {
			j.logger.InfoContext(ctx, "Session token expired, signed out")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session refresh job started", "spec", j.spec)
	return nil
}

// Stop stops the job.
func (j *SessionRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session refresh job stopped")
}
