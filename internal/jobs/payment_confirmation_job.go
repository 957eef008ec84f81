package jobs

import (
	"context"
	"errors"
	"log/slog"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// defaultPollSpec runs the sweep every two minutes.
const defaultPollSpec = "0 */2 * * * *"

// PaymentConfirmationJob periodically confirms every processing payment
// against the provider. Webhooks are the primary channel; this sweep picks
// up payments whose callback was lost.
type PaymentConfirmationJob struct {
	handler commands.ConfirmPaymentCommandHandler
	source  func(ctx context.Context) ([]*payment.Payment, error)
	cron    *cron.Cron
	logger  *slog.Logger
	spec    string
}

// NewPaymentConfirmationJob creates the polling job. source lists the
// payments to confirm; spec is a six-field cron expression, empty for the
// default of every two minutes.
func NewPaymentConfirmationJob(
	handler commands.ConfirmPaymentCommandHandler,
	source func(ctx context.Context) ([]*payment.Payment, error),
	spec string,
	logger *slog.Logger,
) *PaymentConfirmationJob {
	if spec == "" {
		spec = defaultPollSpec
	}
	return &PaymentConfirmationJob{
		handler: handler,
		source:  source,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "payment_confirmation_job"),
		spec:    spec,
	}
}

// Start schedules the sweep.
func (j *PaymentConfirmationJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.sweep); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment confirmation job started", "spec", j.spec)
	return nil
}

// Stop stops the sweep.
func (j *PaymentConfirmationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment confirmation job stopped")
}

// RunOnce executes one sweep immediately. Exposed for the manager and tests.
func (j *PaymentConfirmationJob) RunOnce(ctx context.Context) {
	payments, err := j.source(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Listing processing payments failed", "error", err)
		return
	}

	for _, pay := range payments {
		cmd, err := commands.NewConfirmPaymentCommand(pay.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Skipping malformed payment id", "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// A concurrent webhook winning the race is expected, not a fault.
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			j.logger.ErrorContext(ctx, "Payment confirmation failed",
				"payment_id", pay.ID().String(), "error", err)
		}
	}
}

func (j *PaymentConfirmationJob) sweep() {
	j.RunOnce(context.Background())
}
