package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleEmployeeCreatedTask emails the configured recipient about a new employee.
//
// A task that cannot be decoded is skipped with asynq.SkipRetry; send
// failures are returned so asynq retries them.
func (j *JobService) handleEmployeeCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p EmployeeCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal employee created payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskEmployeeCreated).
		Int64("employee_id", p.Employee.ID).
		Logger()

	if j.emailClient == nil || j.recipient == "" {
		logger.Debug().Msg("notification email not configured, skipping")
		return nil
	}

	logger.Info().Str("to", j.recipient).Msg("processing employee created task")

	if err := j.emailClient.SendEmployeeCreatedEmail(j.recipient, p.Employee); err != nil {
		logger.Error().Err(err).Str("to", j.recipient).Msg("failed to send employee created email")
		return err
	}

	logger.Info().Str("to", j.recipient).Msg("sent employee created email")
	return nil
}
