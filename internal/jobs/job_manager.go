package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	paymentConfirmationJob *PaymentConfirmationJob
}

// NewJobManager creates a job manager owning the scheduled jobs.
func NewJobManager(paymentConfirmationJob *PaymentConfirmationJob) *JobManager {
	return &JobManager{
		paymentConfirmationJob: paymentConfirmationJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentConfirmationJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment confirmation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentConfirmationJob.Stop()
}
