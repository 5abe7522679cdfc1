package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/internal/queue"
	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/pkg/codex"
	"github.com/storyloom/backend/pkg/logger"
)

// GetNetworkHandler serves the denormalized network view of a project.
// It answers from the cached snapshot the worker maintains; on a cold
// read, or when the stored snapshot fails to decode, it rebuilds the
// view from the live rows and stores it best effort.
func GetNetworkHandler(c echo.Context) error {
	type getNetworkParams struct {
		ProjectID string `param:"project_id" validate:"required"`
	}

	params := new(getNetworkParams)
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

	snapshot, err := q.GetNetworkSnapshot(ctx, project.ID)
	if err == nil {
		var network codex.Network
		if err := json.Unmarshal(snapshot.Data, &network); err == nil {
			return respondOK(c, network)
		}
		logger.Error("Stored network snapshot is unreadable, rebuilding", "project_id", project.PublicID)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error("Failed to get network snapshot", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	network, err := queue.BuildProjectNetwork(ctx, q, project.ID)
	if err != nil {
		logger.Error("Failed to build network", "err", err)
		return respondError(c, http.StatusInternalServerError, "Internal server error")
	}

	if payload, err := json.Marshal(network); err == nil {
		if err := q.UpsertNetworkSnapshot(ctx, project.ID, payload); err != nil {
			logger.Warn("Failed to store network snapshot", "err", err)
		}
	}

	return respondOK(c, network)
}
