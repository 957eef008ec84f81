// Package jobs provides scheduled background tasks, implemented as
// cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PaymentConfirmationJob - Polls the payment provider for every payment
// stuck in processing, as a safety net for missed webhooks.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(paymentPoller)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Polling errors are logged per payment and never abort the sweep; a
// payment that cannot be confirmed now is retried on the next tick.
package jobs
