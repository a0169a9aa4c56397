package handler

import (
	"net/http"

	"github.com/deppfellow/employee-app/internal/model/employee"
	"github.com/deppfellow/employee-app/internal/server"
	"github.com/deppfellow/employee-app/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	// DeletedBody is the plain-text body of a successful delete.
	DeletedBody = "Deleted"

	exportFilename    = "employees.xlsx"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type EmployeeHandler struct {
	Handler
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(s *server.Server, employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		Handler:         NewHandler(s),
		employeeService: employeeService,
	}
}

// CreateEmployee handles POST /employees and answers 200 with the stored row.
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *employee.CreateEmployeePayload) (*employee.Employee, error) {
			return h.employeeService.CreateEmployee(c.Request().Context(), payload)
		},
		http.StatusOK,
		func() *employee.CreateEmployeePayload { return &employee.CreateEmployeePayload{} },
	)(c)
}

// GetEmployees handles GET /employees. An empty table yields [].
func (h *EmployeeHandler) GetEmployees(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, _ *employee.GetEmployeesQuery) ([]employee.Employee, error) {
			return h.employeeService.ListEmployees(c.Request().Context())
		},
		http.StatusOK,
		func() *employee.GetEmployeesQuery { return &employee.GetEmployeesQuery{} },
	)(c)
}

func (h *EmployeeHandler) GetEmployeeByID(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *employee.GetEmployeeByIDPayload) (*employee.Employee, error) {
			return h.employeeService.GetEmployeeByID(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		func() *employee.GetEmployeeByIDPayload { return &employee.GetEmployeeByIDPayload{} },
	)(c)
}

// DeleteEmployee handles DELETE /employees/:id. It answers "Deleted"
// whether or not a row matched.
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	return HandleText(
		h.Handler,
		func(c echo.Context, payload *employee.DeleteEmployeePayload) error {
			return h.employeeService.DeleteEmployee(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		DeletedBody,
		func() *employee.DeleteEmployeePayload { return &employee.DeleteEmployeePayload{} },
	)(c)
}

// ExportEmployees handles GET /employees/export with an .xlsx download.
func (h *EmployeeHandler) ExportEmployees(c echo.Context) error {
	return HandleFile(
		h.Handler,
		func(c echo.Context, _ *employee.GetEmployeesQuery) ([]byte, error) {
			buf, err := h.employeeService.ExportEmployees(c.Request().Context())
			if err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		http.StatusOK,
		func() *employee.GetEmployeesQuery { return &employee.GetEmployeesQuery{} },
		exportFilename,
		exportContentType,
	)(c)
}
