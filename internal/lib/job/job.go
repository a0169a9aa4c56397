// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with an asynq.Client
//   - a server runs workers that process those tasks (consumer) with an asynq.Server
package job

import (
	"github.com/deppfellow/employee-app/internal/config"
	"github.com/deppfellow/employee-app/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// emailClient is nil when no Resend key is configured.
	emailClient *email.Client
	recipient   string
}

// NewJobService creates a JobService backed by the configured Redis.
//
// Queue weights give "critical" tasks roughly six out of ten workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	j := &JobService{
		Client:    asynq.NewClient(redisOpt),
		server:    server,
		logger:    logger,
		recipient: cfg.Integration.NotificationEmail,
	}

	if cfg.Integration.ResendAPIKey != "" {
		j.emailClient = email.NewClient(cfg, logger)
	}

	return j
}

// Start registers task handlers and starts the worker server.
// asynq.Server.Start does not block; workers run in their own goroutines.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskEmployeeCreated, j.handleEmployeeCreatedTask)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

// Stop shuts the workers down and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
