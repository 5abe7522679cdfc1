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

// DeleteRelationshipHandler deletes exactly one edge. An inverse edge
// created alongside it is an independent record and stays untouched.
func DeleteRelationshipHandler(c echo.Context) error {
	type deleteRelationshipParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(deleteRelationshipParams)
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

	row, err := q.GetRelationshipByPublicID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Relationship not found")
		}
		logger.Error("Failed to get relationship", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	projectPublicID, err := q.GetProjectPublicID(ctx, row.ProjectID)
	if err != nil {
		logger.Error("Failed to get project for relationship", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	if err := q.DeleteRelationship(ctx, row.ID); err != nil {
		logger.Error("Failed to delete relationship", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	publishNetworkEvent(c, projectPublicID, "relationship.deleted")

	return respondMessage(c, "Relationship deleted")
}
