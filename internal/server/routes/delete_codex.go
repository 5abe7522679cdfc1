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

// DeleteCodexEntityHandler deletes an entity. Every relationship
// referencing it goes with it through the FK cascade, in both
// directions.
func DeleteCodexEntityHandler(c echo.Context) error {
	type deleteEntityParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(deleteEntityParams)
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

	entity, err := q.GetEntityByPublicID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Entity not found")
		}
		logger.Error("Failed to get entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	projectPublicID, err := q.GetProjectPublicID(ctx, entity.ProjectID)
	if err != nil {
		logger.Error("Failed to get project for entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	if err := q.DeleteEntity(ctx, entity.ID); err != nil {
		logger.Error("Failed to delete entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	publishNetworkEvent(c, projectPublicID, "entity.deleted")

	return respondMessage(c, "Entity deleted")
}
