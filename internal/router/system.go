package router

import (
	"github.com/deppfellow/employee-app/internal/handler"
	"github.com/deppfellow/employee-app/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// employee API: health, docs and the docs assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}

// registerFrontendRoutes serves the pre-built frontend; "/" answers with
// its index.html. API routes take precedence over files of the same name.
func registerFrontendRoutes(r *echo.Echo, s *server.Server) {
	r.Static("/", s.Config.Server.FrontendDir)
}
