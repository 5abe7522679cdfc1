package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/pkg/codex"
	"github.com/storyloom/backend/pkg/logger"
)

// UpdateCodexEntityHandler replaces the mutable fields of an entity.
// Writes are last-write-wins; there is no version check against
// intervening edits. The entity's type is fixed at creation and a body
// naming a different type is rejected.
func UpdateCodexEntityHandler(c echo.Context) error {
	type updateEntityBody struct {
		ID          string          `param:"id" validate:"required"`
		Type        string          `json:"type"`
		Name        string          `json:"name" validate:"required"`
		Description string          `json:"description"`
		Attributes  json.RawMessage `json:"attributes"`
		Tags        []string        `json:"tags"`
	}

	data := new(updateEntityBody)
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

	row, err := q.GetEntityByPublicID(ctx, data.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Entity not found")
		}
		logger.Error("Failed to get entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	if data.Type != "" && data.Type != row.Type {
		return respondError(c, http.StatusBadRequest, "Entity type cannot be changed")
	}

	attrs, err := codex.DecodeAttributes(codex.EntityType(row.Type), data.Attributes)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid attributes for entity type")
	}
	attributes, err := codex.EncodeAttributes(attrs)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	updated, err := q.UpdateEntity(ctx, db.UpdateEntityParams{
		ID:          row.ID,
		Name:        data.Name,
		Description: data.Description,
		Attributes:  attributes,
		Tags:        dedupeTags(data.Tags),
	})
	if err != nil {
		logger.Error("Failed to update entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	projectPublicID, err := q.GetProjectPublicID(ctx, row.ProjectID)
	if err != nil {
		logger.Error("Failed to get project for entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	entity, err := entityView(updated, projectPublicID)
	if err != nil {
		logger.Error("Failed to decode entity attributes", "entity_id", updated.PublicID, "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	publishNetworkEvent(c, projectPublicID, "entity.updated")

	return respondOK(c, entity)
}
