// Package jobs provides scheduled background tasks for the delivery
// oracle.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. OverdueShipmentJob - Runs every minute to flag InTransit shipments
// past their due-by deadline
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(overdueHandler, recorder, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The overdue scan is observational: failures are logged and the next
// tick retries from scratch, so a transient database error never needs
// operator intervention.
package jobs
