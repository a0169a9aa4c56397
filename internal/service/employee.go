package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/employee-app/internal/model/employee"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// EmployeeStore is the persistence surface the employee service needs.
// *repository.EmployeeRepository satisfies it.
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, payload *employee.CreateEmployeePayload) (*employee.Employee, error)
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*employee.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) (int64, error)
}

// EmployeeNotifier is told about every inserted employee.
// *job.JobService satisfies it.
type EmployeeNotifier interface {
	EnqueueEmployeeCreated(ctx context.Context, e employee.Employee) error
}

// EmployeeService returns store errors unchanged; the global error handler
// maps them to HTTP responses.
type EmployeeService struct {
	store    EmployeeStore
	notifier EmployeeNotifier
	logger   *zerolog.Logger
}

// NewEmployeeService wires the service. notifier may be nil.
func NewEmployeeService(store EmployeeStore, notifier EmployeeNotifier, logger *zerolog.Logger) *EmployeeService {
	return &EmployeeService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// NotifyTimeout bounds how long a create request waits on the job queue.
const NotifyTimeout = 2 * time.Second

// CreateEmployee inserts a row and returns it with its generated id.
//
// The notification is best effort: an enqueue failure is logged and the
// created employee is still returned.
func (s *EmployeeService) CreateEmployee(ctx context.Context, payload *employee.CreateEmployeePayload) (*employee.Employee, error) {
	created, err := s.store.CreateEmployee(ctx, payload)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(ctx, NotifyTimeout)
		err := s.notifier.EnqueueEmployeeCreated(notifyCtx, *created)
		cancel()
		if err != nil {
			s.logger.Error().Err(err).Int64("employee_id", created.ID).Msg("failed to enqueue employee created notification")
		}
	}

	return created, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id int64) (*employee.Employee, error) {
	return s.store.GetEmployeeByID(ctx, id)
}

// DeleteEmployee removes the row with id. Deleting a missing id succeeds.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteEmployee(ctx, id)
	if err != nil {
		return err
	}

	if deleted == 0 {
		s.logger.Debug().Int64("employee_id", id).Msg("delete matched no employee")
	}
	return nil
}

const exportSheet = "Employees"

// ExportEmployees renders every employee into an .xlsx workbook with an
// ID, Name, Role header row. NULL values are left as empty cells.
func (s *EmployeeService) ExportEmployees(ctx context.Context) (*bytes.Buffer, error) {
	items, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error().Err(err).Msg("failed to close export workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to rename export sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &[]any{"ID", "Name", "Role"}); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i, e := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		row := []any{e.ID, nil, nil}
		if e.Name != nil {
			row[1] = *e.Name
		}
		if e.Role != nil {
			row[2] = *e.Role
		}

		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write export row for employee %d: %w", e.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write export workbook: %w", err)
	}
	return buf, nil
}
