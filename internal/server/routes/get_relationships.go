package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/pkg/codex"
	"github.com/storyloom/backend/pkg/logger"
)

// GetRelationshipsHandler lists every relationship of a project.
func GetRelationshipsHandler(c echo.Context) error {
	type getRelationshipsParams struct {
		ProjectID string `param:"project_id" validate:"required"`
	}

	params := new(getRelationshipsParams)
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

	project, err := q.GetProjectByPublicID(ctx, params.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Project not found")
		}
		logger.Error("Failed to get project", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	rows, err := q.ListProjectRelationships(ctx, project.ID)
	if err != nil {
		logger.Error("Failed to list relationships", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	rels := make([]codex.Relationship, 0, len(rows))
	for _, row := range rows {
		rels = append(rels, relationshipView(row, project.PublicID))
	}

	return respondOK(c, rels)
}
