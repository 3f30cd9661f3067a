package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/lib/email"
)

type lowStockMailer interface {
	SendLowStockEmail(ctx context.Context, to string, data email.LowStockData) error
}

// InitHandlers initializes dependencies required by job handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg.Alerts, logger)
	j.recipient = cfg.Alerts.Recipient
}

// handleLowStockTask sends the low-stock email. Returning an error makes
// Asynq retry the task.
func (j *JobService) handleLowStockTask(ctx context.Context, t *asynq.Task) error {
	var p LowStockPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal low stock payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskLowStock).
		Int64("product_id", p.ProductID).
		Str("to", j.recipient).
		Logger()

	if j.mailer == nil {
		return fmt.Errorf("job handlers not initialized: %w", asynq.SkipRetry)
	}

	logger.Info().Msg("processing low stock task")

	err := j.mailer.SendLowStockEmail(ctx, j.recipient, email.LowStockData{
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send low stock email")
		return err
	}

	logger.Info().Msg("sent low stock email")

	return nil
}
