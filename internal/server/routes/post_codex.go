package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/pkg/codex"
	"github.com/storyloom/backend/pkg/logger"
)

// CreateCodexEntityHandler creates a codex entity. The entity starts
// with the empty attribute set for its type; attributes are filled in
// through updates.
func CreateCodexEntityHandler(c echo.Context) error {
	type createEntityBody struct {
		ProjectID   string   `param:"project_id" validate:"required"`
		Type        string   `json:"type" validate:"required"`
		Name        string   `json:"name" validate:"required"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}

	data := new(createEntityBody)
	if err := c.Bind(data); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	entityType := codex.EntityType(data.Type)
	if !entityType.Valid() {
		return respondError(c, http.StatusBadRequest, "Invalid entity type")
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	project, err := q.GetProjectByPublicID(ctx, data.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Project not found")
		}
		logger.Error("Failed to get project", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	empty, err := codex.EmptyAttributes(entityType)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}
	attributes, err := codex.EncodeAttributes(empty)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	row, err := q.CreateEntity(ctx, db.CreateEntityParams{
		PublicID:    publicID,
		ProjectID:   project.ID,
		Type:        data.Type,
		Name:        data.Name,
		Description: data.Description,
		Attributes:  attributes,
		Tags:        dedupeTags(data.Tags),
	})
	if err != nil {
		logger.Error("Failed to create entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	entity, err := entityView(row, project.PublicID)
	if err != nil {
		logger.Error("Failed to decode entity attributes", "entity_id", row.PublicID, "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	publishNetworkEvent(c, project.PublicID, "entity.created")

	return respondOK(c, entity)
}
