//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/deppfellow/employee-app/internal/database"
	"github.com/deppfellow/employee-app/internal/errs"
	"github.com/deppfellow/employee-app/internal/model/employee"
	"github.com/deppfellow/employee-app/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// newTestRepository connects to TEST_DATABASE_DSN, migrates it twice and
// truncates the table.
func newTestRepository(t *testing.T) *EmployeeRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	for i := 0; i < 2; i++ {
		if err := database.Migrate(ctx, &logger, dsn); err != nil {
			t.Fatalf("Migrate() run %d error = %v", i+1, err)
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, "TRUNCATE employees RESTART IDENTITY"); err != nil {
		t.Fatal(err)
	}

	return NewEmployeeRepository(pool)
}

func strPtr(s string) *string { return &s }

func TestEmployeeRepositoryLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	items, err := repo.ListEmployees(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("ListEmployees() on empty table = %#v, want empty non-nil", items)
	}

	alice, err := repo.CreateEmployee(ctx, &employee.CreateEmployeePayload{Name: strPtr("Alice"), Role: strPtr("Engineer")})
	if err != nil {
		t.Fatal(err)
	}
	bob, err := repo.CreateEmployee(ctx, &employee.CreateEmployeePayload{Name: strPtr("Bob")})
	if err != nil {
		t.Fatal(err)
	}
	if alice.ID != 1 || bob.ID != 2 || bob.Role != nil {
		t.Errorf("alice = %+v, bob = %+v", alice, bob)
	}

	got, err := repo.GetEmployeeByID(ctx, alice.ID)
	if err != nil || *got.Name != "Alice" {
		t.Fatalf("GetEmployeeByID() = %+v, %v", got, err)
	}

	deleted, err := repo.DeleteEmployee(ctx, alice.ID)
	if err != nil || deleted != 1 {
		t.Fatalf("DeleteEmployee() = %d, %v", deleted, err)
	}
	deleted, err = repo.DeleteEmployee(ctx, alice.ID)
	if err != nil || deleted != 0 {
		t.Fatalf("second DeleteEmployee() = %d, %v", deleted, err)
	}

	_, err = repo.GetEmployeeByID(ctx, alice.ID)
	if !errors.Is(err, pgx.ErrNoRows) || !strings.Contains(err.Error(), "table:employees") {
		t.Errorf("GetEmployeeByID() after delete error = %v", err)
	}

	carol, err := repo.CreateEmployee(ctx, &employee.CreateEmployeePayload{Name: strPtr("Carol")})
	if err != nil {
		t.Fatal(err)
	}
	if carol.ID != 3 {
		t.Errorf("ids must not be reused, got %d", carol.ID)
	}
}

func TestEmployeeRepositoryValueTooLong(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CreateEmployee(context.Background(), &employee.CreateEmployeePayload{Name: strPtr(strings.Repeat("x", 101))})

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "22001" {
		t.Fatalf("error = %v, want SQLSTATE 22001", err)
	}

	var httpErr *errs.HTTPError
	if !errors.As(sqlerr.HandleError(err), &httpErr) {
		t.Fatalf("HandleError() did not return an *errs.HTTPError")
	}
	if httpErr.Status != http.StatusBadRequest || httpErr.Code != "EMPLOYEE_TOO_LONG" {
		t.Errorf("mapped to %d %q, want 400 EMPLOYEE_TOO_LONG", httpErr.Status, httpErr.Code)
	}
}

func TestEmployeeRepositoryCountsAfterEachStep(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	assertCount := func(step string, want int) []employee.Employee {
		t.Helper()
		items, err := repo.ListEmployees(ctx)
		if err != nil {
			t.Fatalf("%s: ListEmployees() error = %v", step, err)
		}
		if len(items) != want {
			t.Fatalf("%s: ListEmployees() returned %d rows, want %d", step, len(items), want)
		}
		return items
	}

	const n = 4
	for i := 1; i <= n; i++ {
		if _, err := repo.CreateEmployee(ctx, &employee.CreateEmployeePayload{Name: strPtr(fmt.Sprintf("E%d", i))}); err != nil {
			t.Fatal(err)
		}
		assertCount(fmt.Sprintf("after create %d", i), i)
	}

	if _, err := repo.DeleteEmployee(ctx, 2); err != nil {
		t.Fatal(err)
	}
	items := assertCount("after delete", n-1)

	if _, err := repo.DeleteEmployee(ctx, 2); err != nil {
		t.Fatal(err)
	}
	assertCount("after repeated delete", n-1)

	for _, e := range items {
		if e.ID == 2 {
			t.Error("deleted row still listed")
		}
		if want := fmt.Sprintf("E%d", e.ID); e.Name == nil || *e.Name != want {
			t.Errorf("row %d name = %v, want %q", e.ID, e.Name, want)
		}
	}
}
