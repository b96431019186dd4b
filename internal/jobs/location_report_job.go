package jobs

import (
	"context"
	"errors"
	"log/slog"

	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// SessionSource exposes the current session to jobs.
type SessionSource interface {
	Snapshot() identity.Session
}

// LocationSource supplies the device's current position.
type LocationSource interface {
	Current(ctx context.Context) (kernel.GeoPoint, error)
}

// LocationPublisher broadcasts an agent position to the active tracking
// room.
type LocationPublisher interface {
	PublishLocation(ctx context.Context, agentID kernel.ID, location kernel.GeoPoint) error
}

// LocationReportJob periodically publishes the signed-in delivery agent's
// position to the order room being tracked. It stays quiet for customers
// and while no delivery is underway.
type LocationReportJob struct {
	sessions  SessionSource
	source    LocationSource
	publisher LocationPublisher
	spec      string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLocationReportJob creates the position reporting job. spec is a cron
// expression with seconds, e.g. "*/5 * * * * *" for every five seconds.
func NewLocationReportJob(
	sessions SessionSource,
	source LocationSource,
	publisher LocationPublisher,
	spec string,
	logger *slog.Logger,
) *LocationReportJob {
	return &LocationReportJob{
		sessions:  sessions,
		source:    source,
		publisher: publisher,
		spec:      spec,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "location_report_job"),
	}
}

// Start schedules the job.
func (j *LocationReportJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		j.run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location report job started", "spec", j.spec)
	return nil
}

// Stop stops the job.
func (j *LocationReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location report job stopped")
}

func (j *LocationReportJob) run(ctx context.Context) {
	session := j.sessions.Snapshot()
	if !session.IsAuthenticated() || session.User == nil ||
		session.User.Role() != identity.RoleDelivery {
		return
	}

	location, err := j.source.Current(ctx)
	if err != nil {
		j.logger.WarnContext(ctx, "Could not read current position", "error", err)
		return
	}

	if err := j.publisher.PublishLocation(ctx, session.User.ID(), location); err != nil {
		// no open tracking room just means no delivery is underway
		if errors.Is(err, errs.ErrChannel) {
			return
		}
		j.logger.ErrorContext(ctx, "Location report failed", "error", err)
	}
}
