package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/employee-app/internal/model/employee"
	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	db DBTX
}

func NewEmployeeRepository(db DBTX) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, payload *employee.CreateEmployeePayload) (*employee.Employee, error) {
	stmt := `
		INSERT INTO
			employees (name, role)
		VALUES
			(@name, @role)
		RETURNING
			id, name, role
	`

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{
		"name": payload.Name,
		"role": payload.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create employee query on table:employees: %w", err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[employee.Employee])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:employees: %w", err)
	}

	return &item, nil
}

// ListEmployees returns every row in the database's default order.
// The result is never nil.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	stmt := `
		SELECT
			id, name, role
		FROM
			employees
	`

	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list employees query: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[employee.Employee])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:employees: %w", err)
	}

	if items == nil {
		items = []employee.Employee{}
	}
	return items, nil
}

func (r *EmployeeRepository) GetEmployeeByID(ctx context.Context, id int64) (*employee.Employee, error) {
	stmt := `
		SELECT
			id, name, role
		FROM
			employees
		WHERE
			id = @id
	`

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get employee by id query for id=%d: %w", id, err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[employee.Employee])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:employees: id=%d: %w", id, err)
	}

	return &item, nil
}

// DeleteEmployee removes the row with the given id and reports how many
// rows were deleted (0 or 1). A missing id is not an error.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id int64) (int64, error) {
	stmt := `
		DELETE FROM employees
		WHERE
			id = @id
	`

	tag, err := r.db.Exec(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete employee query for id=%d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}
