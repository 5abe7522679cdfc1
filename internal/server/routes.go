package server

import (
	"github.com/labstack/echo/v4"

	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Project routes
	apiRoutes.GET("/projects", routes.GetProjectsHandler)
	apiRoutes.GET("/projects/:id", routes.GetProjectHandler)
	apiRoutes.POST("/projects", routes.CreateProjectHandler, middleware.RequirePermission("project.create"))
	apiRoutes.DELETE("/projects/:id", routes.DeleteProjectHandler, middleware.RequirePermission("project.delete"))

	// Codex entity routes
	apiRoutes.GET("/projects/:project_id/codex", routes.GetCodexEntitiesHandler)
	apiRoutes.POST("/projects/:project_id/codex", routes.CreateCodexEntityHandler, middleware.RequirePermission("codex.create"))
	apiRoutes.GET("/codex/:id", routes.GetCodexEntityHandler)
	apiRoutes.PUT("/codex/:id", routes.UpdateCodexEntityHandler, middleware.RequirePermission("codex.update"))
	apiRoutes.DELETE("/codex/:id", routes.DeleteCodexEntityHandler, middleware.RequirePermission("codex.delete"))
	apiRoutes.GET("/codex/:id/relationships", routes.GetEntityRelationshipsHandler)

	// Relationship routes
	apiRoutes.GET("/projects/:project_id/relationships", routes.GetRelationshipsHandler)
	apiRoutes.POST("/projects/:project_id/relationships", routes.CreateRelationshipHandler, middleware.RequirePermission("relationship.create"))
	apiRoutes.DELETE("/relationships/:id", routes.DeleteRelationshipHandler, middleware.RequirePermission("relationship.delete"))

	// Network view
	apiRoutes.GET("/projects/:project_id/relationships/network", routes.GetNetworkHandler)
}
