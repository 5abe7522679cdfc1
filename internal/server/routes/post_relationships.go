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

// CreateRelationshipHandler creates one directed edge, or two when the
// body asks for an inverse. Both edges are inserted in one transaction
// and carry independent ids with no reference to each other: deleting
// one later never affects its counterpart.
func CreateRelationshipHandler(c echo.Context) error {
	type createRelationshipBody struct {
		ProjectID     string `param:"project_id" validate:"required"`
		SourceID      string `json:"sourceId" validate:"required"`
		TargetID      string `json:"targetId" validate:"required"`
		Type          string `json:"type" validate:"required"`
		Description   string `json:"description"`
		CreateInverse bool   `json:"createInverse"`
		InverseType   string `json:"inverseType"`
	}

	type createRelationshipData struct {
		Relationship        codex.Relationship  `json:"relationship"`
		InverseRelationship *codex.Relationship `json:"inverseRelationship,omitempty"`
	}

	data := new(createRelationshipBody)
	if err := c.Bind(data); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	if data.SourceID == data.TargetID {
		return respondError(c, http.StatusBadRequest, "Source and target must be different entities")
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	tx, err := conn.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}
	defer tx.Rollback(ctx)
	q := db.New(conn)
	qtx := q.WithTx(tx)

	project, err := qtx.GetProjectByPublicID(ctx, data.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Project not found")
		}
		logger.Error("Failed to get project", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	source, err := qtx.GetProjectEntityByPublicID(ctx, data.SourceID, project.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Source entity not found")
		}
		logger.Error("Failed to get source entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}
	target, err := qtx.GetProjectEntityByPublicID(ctx, data.TargetID, project.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, http.StatusNotFound, "Target entity not found")
		}
		logger.Error("Failed to get target entity", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	sourceRef := codex.EntityRef{ID: source.PublicID, Name: source.Name, Type: codex.EntityType(source.Type)}
	targetRef := codex.EntityRef{ID: target.PublicID, Name: target.Name, Type: codex.EntityType(target.Type)}

	publicID, err := gonanoid.New()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	forward, err := qtx.CreateRelationship(ctx, db.CreateRelationshipParams{
		PublicID:    publicID,
		ProjectID:   project.ID,
		SourceID:    source.ID,
		TargetID:    target.ID,
		Type:        data.Type,
		Description: data.Description,
	})
	if err != nil {
		logger.Error("Failed to create relationship", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	result := createRelationshipData{
		Relationship: codex.Relationship{
			ID:          forward.PublicID,
			ProjectID:   project.PublicID,
			Source:      sourceRef,
			Target:      targetRef,
			Type:        forward.Type,
			Description: forward.Description,
		},
	}

	if data.CreateInverse {
		inverseType := data.InverseType
		if inverseType == "" {
			inverseType = data.Type
		}

		inversePublicID, err := gonanoid.New()
		if err != nil {
			return respondError(c, http.StatusInternalServerError, "Internal server error")
		}

		inverse, err := qtx.CreateRelationship(ctx, db.CreateRelationshipParams{
			PublicID:    inversePublicID,
			ProjectID:   project.ID,
			SourceID:    target.ID,
			TargetID:    source.ID,
			Type:        inverseType,
			Description: data.Description,
		})
		if err != nil {
			logger.Error("Failed to create inverse relationship", "err", err)
			return respondError(c, http.StatusInternalServerError, "Internal server error")
		}

		result.InverseRelationship = &codex.Relationship{
			ID:          inverse.PublicID,
			ProjectID:   project.PublicID,
			Source:      targetRef,
			Target:      sourceRef,
			Type:        inverse.Type,
			Description: inverse.Description,
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	publishNetworkEvent(c, project.PublicID, "relationship.created")

	return respondOK(c, result)
}
