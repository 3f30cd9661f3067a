// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - the HTTP process enqueues tasks using asynq.Client
//   - a worker (in-process or `salon-api worker`) processes them using asynq.Server
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// mailer and recipient are set by InitHandlers.
	mailer    lowStockMailer
	recipient string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// mux routes task types to handlers.
func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskLowStock, j.handleLowStockTask)
	return mux
}

// Start starts the worker in the background and returns.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	return j.server.Start(j.mux())
}

// Run starts the worker and blocks until SIGTERM or SIGINT.
func (j *JobService) Run() error {
	j.logger.Info().Msg("running background job server")

	return j.server.Run(j.mux())
}

// Stop gracefully stops the job server and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("could not close job client")
	}
}

// Close only releases the enqueue client; used where no worker was started.
func (j *JobService) Close() error {
	return j.Client.Close()
}
