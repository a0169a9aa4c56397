package handler

import (
	"github.com/deppfellow/employee-app/internal/server"
	"github.com/deppfellow/employee-app/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Employee *EmployeeHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Employee: NewEmployeeHandler(s, services.Employee),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
