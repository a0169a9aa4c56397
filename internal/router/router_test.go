package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/deppfellow/employee-app/internal/config"
	"github.com/deppfellow/employee-app/internal/errs"
	"github.com/deppfellow/employee-app/internal/handler"
	"github.com/deppfellow/employee-app/internal/model/employee"
	"github.com/deppfellow/employee-app/internal/server"
	"github.com/deppfellow/employee-app/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// memoryStore mimics the employees table: SERIAL ids that are never reused.
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]employee.Employee
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1, rows: map[int64]employee.Employee{}}
}

func (m *memoryStore) CreateEmployee(_ context.Context, p *employee.CreateEmployeePayload) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := employee.Employee{ID: m.nextID, Name: p.Name, Role: p.Role}
	m.rows[e.ID] = e
	m.nextID++
	return &e, nil
}

func (m *memoryStore) ListEmployees(context.Context) ([]employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []employee.Employee{}
	for _, e := range m.rows {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *memoryStore) GetEmployeeByID(_ context.Context, id int64) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("failed to collect row from table:employees: id=%d: %w", id, pgx.ErrNoRows)
	}
	return &e, nil
}

func (m *memoryStore) DeleteEmployee(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func newTestRouter(t *testing.T, configure func(cfg *config.Config)) *echo.Echo {
	t.Helper()

	frontend := t.TempDir()
	if err := os.WriteFile(filepath.Join(frontend, "index.html"), []byte("<h1>Employees</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
			FrontendDir:        frontend,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	cfg.Observability.HealthChecks.Checks = nil
	if configure != nil {
		configure(cfg)
	}

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	employees := service.NewEmployeeService(newMemoryStore(), nil, &logger)
	h := &handler.Handlers{
		Employee: handler.NewEmployeeHandler(s, employees),
		Health:   handler.NewHealthHandler(s),
		OpenAPI:  handler.NewOpenAPIHandler(s),
	}

	return NewRouter(s, h)
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return v
}

func TestEmployeeLifecycle(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodPost, "/employees", `{"name":"Alice","role":"Engineer"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d, body = %s", rec.Code, rec.Body.String())
	}
	created := decode[employee.Employee](t, rec)
	if created.ID != 1 || *created.Name != "Alice" || *created.Role != "Engineer" {
		t.Errorf("created = %+v", created)
	}

	rec = do(r, http.MethodGet, "/employees", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	if list := decode[[]employee.Employee](t, rec); len(list) != 1 || list[0].ID != 1 {
		t.Errorf("list = %+v", list)
	}

	rec = do(r, http.MethodDelete, "/employees/1", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "Deleted" {
		t.Fatalf("DELETE = %d %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextPlain) {
		t.Errorf("DELETE content type = %q", ct)
	}

	rec = do(r, http.MethodGet, "/employees", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty list body = %q, want []", rec.Body.String())
	}
}

func TestCreateEmployeeWithMissingFields(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodPost, "/employees", `{"name":"Bob"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	body := decode[map[string]any](t, rec)
	if role, ok := body["role"]; !ok || role != nil {
		t.Errorf("role = %v (present %v), want null", role, ok)
	}
}

func TestCreateEmployeeMalformedBody(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodPost, "/employees", `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decode[errs.HTTPError](t, rec); got.Code != "BAD_REQUEST" {
		t.Errorf("code = %q", got.Code)
	}
}

func TestDeleteMissingEmployeeStillDeleted(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodDelete, "/employees/999", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "Deleted" {
		t.Errorf("DELETE = %d %q", rec.Code, rec.Body.String())
	}
}

func TestDeleteNonNumericID(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodDelete, "/employees/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetEmployeeByID(t *testing.T) {
	r := newTestRouter(t, nil)

	do(r, http.MethodPost, "/employees", `{"name":"Alice","role":"Engineer"}`)

	rec := do(r, http.MethodGet, "/employees/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[employee.Employee](t, rec); got.ID != 1 {
		t.Errorf("got %+v", got)
	}

	rec = do(r, http.MethodGet, "/employees/2", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing id status = %d, want 404", rec.Code)
	}
	if got := decode[errs.HTTPError](t, rec); got.Message != "Employee not found" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestExportEmployees(t *testing.T) {
	r := newTestRouter(t, nil)

	do(r, http.MethodPost, "/employees", `{"name":"Alice","role":"Engineer"}`)

	rec := do(r, http.MethodGet, "/employees/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != "attachment; filename=employees.xlsx" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Body.Len() == 0 || !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("export should be a zip-based workbook")
	}
}

func TestFrontendIndex(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<h1>Employees</h1>") {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decode[errs.HTTPError](t, rec); got.Message != "Route not found" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestStatus(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := decode[map[string]any](t, rec); got["status"] != "healthy" {
		t.Errorf("body = %v", got)
	}

	r = newTestRouter(t, func(cfg *config.Config) {
		cfg.Observability.HealthChecks.Checks = []string{"database"}
	})

	rec = do(r, http.MethodGet, "/status", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status without a database = %d, want 503", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
	})

	if rec := do(r, http.MethodGet, "/employees", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec := do(r, http.MethodGet, "/employees", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if got := decode[errs.HTTPError](t, rec); got.Code != "TOO_MANY_REQUESTS" {
		t.Errorf("code = %q", got.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodGet, "/employees", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("responses should carry X-Request-ID")
	}
}

func TestPathIDWinsOverBodyAndQuery(t *testing.T) {
	r := newTestRouter(t, nil)

	do(r, http.MethodPost, "/employees", `{"name":"A"}`)
	do(r, http.MethodPost, "/employees", `{"name":"B"}`)

	rec := do(r, http.MethodGet, "/employees/1?id=2", `{"id":2}`)
	if got := decode[employee.Employee](t, rec); got.ID != 1 || *got.Name != "A" {
		t.Errorf("GET /employees/1 returned %+v", got)
	}

	rec = do(r, http.MethodDelete, "/employees/1?id=2", `{"id":2}`)
	if rec.Code != http.StatusOK || rec.Body.String() != "Deleted" {
		t.Fatalf("DELETE = %d %q", rec.Code, rec.Body.String())
	}

	list := decode[[]employee.Employee](t, do(r, http.MethodGet, "/employees", ""))
	if len(list) != 1 || list[0].ID != 2 || *list[0].Name != "B" {
		t.Errorf("after deleting id 1, list = %+v, want only B (id 2)", list)
	}
}

func TestCreateEmployeeNonJSONBodyStoresNulls(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("name=Alice"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := decode[employee.Employee](t, rec); got.ID != 1 || got.Name != nil || got.Role != nil {
		t.Errorf("created = %+v, want id 1 with null name and role", got)
	}
}

func TestCreateEmployeeStoresNumbersAsText(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodPost, "/employees", `{"name":123,"role":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := decode[employee.Employee](t, rec); *got.Name != "123" || *got.Role != "true" {
		t.Errorf("created = %+v", got)
	}
}

func TestEmployeeCountsAcrossCreatesAndDeletes(t *testing.T) {
	tests := []struct {
		name     string
		create   int
		deleteID int64
	}{
		{name: "delete first of three", create: 3, deleteID: 1},
		{name: "delete middle of four", create: 4, deleteID: 2},
		{name: "delete last of five", create: 5, deleteID: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, nil)

			for i := 1; i <= tt.create; i++ {
				rec := do(r, http.MethodPost, "/employees", fmt.Sprintf(`{"name":"E%d","role":"R%d"}`, i, i))
				if got := decode[employee.Employee](t, rec); got.ID != int64(i) {
					t.Fatalf("create %d got id %d", i, got.ID)
				}
			}

			list := decode[[]employee.Employee](t, do(r, http.MethodGet, "/employees", ""))
			if len(list) != tt.create {
				t.Fatalf("list after creates has %d rows, want %d", len(list), tt.create)
			}

			for attempt := 0; attempt < 2; attempt++ {
				rec := do(r, http.MethodDelete, fmt.Sprintf("/employees/%d", tt.deleteID), "")
				if rec.Body.String() != "Deleted" {
					t.Fatalf("DELETE attempt %d = %q", attempt+1, rec.Body.String())
				}

				list = decode[[]employee.Employee](t, do(r, http.MethodGet, "/employees", ""))
				if len(list) != tt.create-1 {
					t.Fatalf("list after delete attempt %d has %d rows, want %d", attempt+1, len(list), tt.create-1)
				}
			}

			for _, e := range list {
				if e.ID == tt.deleteID {
					t.Errorf("deleted id %d still listed", e.ID)
				}
				if want := fmt.Sprintf("E%d", e.ID); *e.Name != want {
					t.Errorf("row %d name = %q, want %q", e.ID, *e.Name, want)
				}
			}
		})
	}
}
