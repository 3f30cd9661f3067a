package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/model"
)

// TaskLowStock is the task type stored in Redis.
const TaskLowStock = "inventory:low_stock"

// lowStockRetention keeps a completed alert around so a second alert for the
// same product conflicts with it for an hour.
const lowStockRetention = time.Hour

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LowStockPayload is the JSON payload of a low-stock task.
type LowStockPayload struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock string `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
}

// LowStockTaskID is the task id of the alert for productID. The id ignores
// the stock figures so every consumption of one product maps to one alert.
func LowStockTaskID(productID int64) string {
	return fmt.Sprintf("%s:%d", TaskLowStock, productID)
}

// NewLowStockTask builds the task for level.
func NewLowStockTask(level model.StockLevel) (*asynq.Task, error) {
	var minStock int64
	if level.MinStock != nil {
		minStock = *level.MinStock
	}

	payload, err := json.Marshal(LowStockPayload{
		ProductID:    level.ProductID,
		ProductName:  level.Name,
		CurrentStock: level.CurrentStock.String(),
		MinStock:     minStock,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskLowStock, payload, lowStockOptions(level.ProductID)...), nil
}

func lowStockOptions(productID int64) []asynq.Option {
	return []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30 * time.Second),
		asynq.TaskID(LowStockTaskID(productID)),
		asynq.Retention(lowStockRetention),
	}
}

// EnqueueLowStock queues an alert for level. An alert already pending or
// completed within the retention window is not an error.
func (j *JobService) EnqueueLowStock(ctx context.Context, level model.StockLevel) error {
	task, err := NewLowStockTask(level)
	if err != nil {
		return fmt.Errorf("failed to build low stock task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		j.logger.Debug().
			Int64("product_id", level.ProductID).
			Msg("low stock alert already queued")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue low stock task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("product_id", level.ProductID).
		Msg("low stock task enqueued")

	return nil
}
