package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/employee-app/internal/model/employee"
	"github.com/hibiken/asynq"
)

// TaskEmployeeCreated is the task type enqueued after an employee is inserted.
const TaskEmployeeCreated = "employee:created"

// EmployeeCreatedPayload is the JSON payload stored in Redis.
type EmployeeCreatedPayload struct {
	Employee employee.Employee `json:"employee"`
}

// NewEmployeeCreatedTask builds the notification task for e.
// It retries up to 3 times in the default queue with a 30s timeout.
func NewEmployeeCreatedTask(e employee.Employee) (*asynq.Task, error) {
	payload, err := json.Marshal(EmployeeCreatedPayload{Employee: e})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskEmployeeCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueEmployeeCreated queues the "new employee" notification for e.
func (j *JobService) EnqueueEmployeeCreated(ctx context.Context, e employee.Employee) error {
	task, err := NewEmployeeCreatedTask(e)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskEmployeeCreated, err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskEmployeeCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("employee_id", e.ID).
		Msg("enqueued employee created task")

	return nil
}
