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

// GetCodexEntitiesHandler lists every codex entity of a project in
// insertion order.
func GetCodexEntitiesHandler(c echo.Context) error {
	type getEntitiesParams struct {
		ProjectID string `param:"project_id" validate:"required"`
	}

	params := new(getEntitiesParams)
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

	rows, err := q.ListProjectEntities(ctx, project.ID)
	if err != nil {
		logger.Error("Failed to list entities", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	entities := make([]codex.Entity, 0, len(rows))
	for _, row := range rows {
		entity, err := entityView(row, project.PublicID)
		if err != nil {
			logger.Error("Failed to decode entity attributes", "entity_id", row.PublicID, "err", err)
			return respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		entities = append(entities, entity)
	}

	return respondOK(c, entities)
}

// GetCodexEntityHandler returns a single codex entity.
func GetCodexEntityHandler(c echo.Context) error {
	type getEntityParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getEntityParams)
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

	row, err := q.GetEntityByPublicID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Entity not found")
		}
		logger.Error("Failed to get entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	projectPublicID, err := q.GetProjectPublicID(ctx, row.ProjectID)
	if err != nil {
		logger.Error("Failed to get project for entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	entity, err := entityView(row, projectPublicID)
	if err != nil {
		logger.Error("Failed to decode entity attributes", "entity_id", row.PublicID, "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	return respondOK(c, entity)
}

// GetEntityRelationshipsHandler returns every edge touching an entity,
// tagged with the direction relative to it.
func GetEntityRelationshipsHandler(c echo.Context) error {
	type getEntityRelationshipsParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getEntityRelationshipsParams)
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

	rows, err := q.ListEntityRelationships(ctx, entity.ID)
	if err != nil {
		logger.Error("Failed to list entity relationships", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	rels := make([]codex.EntityRelationship, 0, len(rows))
	for _, row := range rows {
		direction := codex.DirectionIncoming
		if row.SourceID == entity.ID {
			direction = codex.DirectionOutgoing
		}
		rels = append(rels, codex.EntityRelationship{
			Relationship: relationshipView(row, projectPublicID),
			Direction:    direction,
		})
	}

	return respondOK(c, rels)
}
