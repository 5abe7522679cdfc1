package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/pkg/logger"
)

// CreateProjectHandler creates a new project with an empty codex.
func CreateProjectHandler(c echo.Context) error {
	type createProjectBody struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	data := new(createProjectBody)
	if err := c.Bind(data); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	publicID, err := gonanoid.New()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	project, err := q.CreateProject(ctx, db.CreateProjectParams{
		PublicID:    publicID,
		Name:        data.Name,
		Description: data.Description,
	})
	if err != nil {
		logger.Error("Failed to create project", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	return respondOK(c, project)
}
