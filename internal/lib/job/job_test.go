package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/lib/email"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/model"
)

type fakeMailer struct {
	to   string
	data email.LowStockData
	err  error
}

func (f *fakeMailer) SendLowStockEmail(_ context.Context, to string, data email.LowStockData) error {
	f.to = to
	f.data = data
	return f.err
}

func newTestJobService(mailer lowStockMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer, recipient: "owner@example.com"}
}

func TestNewLowStockTask(t *testing.T) {
	minStock := int64(3)
	task, err := NewLowStockTask(model.StockLevel{
		ProductID:    9,
		Name:         "Conditioner",
		CurrentStock: decimal.RequireFromString("2.50"),
		MinStock:     &minStock,
	})
	require.NoError(t, err)
	assert.Equal(t, TaskLowStock, task.Type())
	assert.JSONEq(t,
		`{"product_id":9,"product_name":"Conditioner","current_stock":"2.5","min_stock":3}`,
		string(task.Payload()))
}

func taskIDOption(t *testing.T, productID int64) string {
	t.Helper()
	for _, opt := range lowStockOptions(productID) {
		if opt.Type() == asynq.TaskIDOpt {
			id, ok := opt.Value().(string)
			require.True(t, ok)
			return id
		}
	}
	t.Fatal("low stock task has no task id")
	return ""
}

func TestLowStockTaskID_OnePerProduct(t *testing.T) {
	minStock := int64(5)
	first, err := NewLowStockTask(model.StockLevel{ProductID: 3, Name: "Gel", CurrentStock: decimal.NewFromInt(4), MinStock: &minStock})
	require.NoError(t, err)
	second, err := NewLowStockTask(model.StockLevel{ProductID: 3, Name: "Gel", CurrentStock: decimal.NewFromInt(3), MinStock: &minStock})
	require.NoError(t, err)

	// payloads differ, the alert id does not
	assert.NotEqual(t, string(first.Payload()), string(second.Payload()))
	assert.Equal(t, "inventory:low_stock:3", taskIDOption(t, 3))
	assert.Equal(t, LowStockTaskID(3), taskIDOption(t, 3))
	assert.NotEqual(t, taskIDOption(t, 3), taskIDOption(t, 4))
}

func TestHandleLowStockTask(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer)

	task := asynq.NewTask(TaskLowStock, []byte(`{"product_id":9,"product_name":"Conditioner","current_stock":"2.5","min_stock":3}`))
	require.NoError(t, j.handleLowStockTask(context.Background(), task))

	assert.Equal(t, "owner@example.com", mailer.to)
	assert.Equal(t, email.LowStockData{ProductID: 9, ProductName: "Conditioner", CurrentStock: "2.5", MinStock: 3}, mailer.data)
}

func TestHandleLowStockTask_Errors(t *testing.T) {
	t.Run("bad payload skips retry", func(t *testing.T) {
		j := newTestJobService(&fakeMailer{})
		err := j.handleLowStockTask(context.Background(), asynq.NewTask(TaskLowStock, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("mailer failure is retried", func(t *testing.T) {
		j := newTestJobService(&fakeMailer{err: errors.New("resend down")})
		err := j.handleLowStockTask(context.Background(), asynq.NewTask(TaskLowStock, []byte(`{"product_id":1}`)))
		require.EqualError(t, err, "resend down")
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("uninitialized handlers", func(t *testing.T) {
		j := newTestJobService(nil)
		err := j.handleLowStockTask(context.Background(), asynq.NewTask(TaskLowStock, []byte(`{"product_id":1}`)))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
