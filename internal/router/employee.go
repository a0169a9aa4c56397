package router

import (
	"github.com/deppfellow/employee-app/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerEmployeeRoutes(r *echo.Echo, h *handler.Handlers) {
	employees := r.Group("/employees")

	employees.POST("", h.Employee.CreateEmployee)
	employees.GET("", h.Employee.GetEmployees)
	employees.GET("/export", h.Employee.ExportEmployees)
	employees.GET("/:id", h.Employee.GetEmployeeByID)
	employees.DELETE("/:id", h.Employee.DeleteEmployee)
}
