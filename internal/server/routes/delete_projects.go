package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/pkg/logger"
)

// DeleteProjectHandler deletes a project and its entire codex. Entities,
// relationships, and the cached network snapshot go with it through the
// FK cascades.
func DeleteProjectHandler(c echo.Context) error {
	type deleteProjectParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(deleteProjectParams)
	if err := c.Bind(params); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request params")
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	project, err := q.GetProjectByPublicID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Project not found")
		}
		logger.Error("Failed to get project", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	if err := q.DeleteProject(ctx, project.ID); err != nil {
		logger.Error("Failed to delete project", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	return respondMessage(c, "Project deleted")
}
