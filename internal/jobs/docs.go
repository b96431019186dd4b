// Package jobs provides scheduled background tasks for the client.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic work the client needs while running.
//
// # Available Jobs
//
// 1. LocationReportJob - publishes the signed-in delivery agent's position
// to the tracked order's room
// 2. SessionRefreshJob - checks the session token's expiry and signs the
// client out when it has lapsed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sessions, sessions, source, view,
//		locationSpec, refreshSpec, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The location job stays silent while nobody is signed in as a
//     delivery agent or no tracking room is open
//   - The session job logs an expired token at info level; it is a normal
//     lifecycle event, not a failure
//   - Failed job starts will stop any already running jobs
package jobs
