package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/internal/queue"
	"github.com/storyloom/backend/internal/server/middleware"
	"github.com/storyloom/backend/internal/util"
	"github.com/storyloom/backend/pkg/codex"
	"github.com/storyloom/backend/pkg/logger"
)

// apiResponse is the envelope every route answers with.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, apiResponse{Success: true, Message: message})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, apiResponse{Success: false, Message: message})
}

// entityView maps an entity row to its API shape, resolving the stored
// attribute document into the typed variant for the entity's type.
func entityView(row db.Entity, projectPublicID string) (codex.Entity, error) {
	attrs, err := codex.DecodeAttributes(codex.EntityType(row.Type), row.Attributes)
	if err != nil {
		return codex.Entity{}, err
	}
	return codex.Entity{
		ID:          row.PublicID,
		ProjectID:   projectPublicID,
		Type:        codex.EntityType(row.Type),
		Name:        row.Name,
		Description: row.Description,
		Attributes:  attrs,
		Tags:        row.Tags,
	}, nil
}

func relationshipView(row db.RelationshipRow, projectPublicID string) codex.Relationship {
	return codex.Relationship{
		ID:        row.PublicID,
		ProjectID: projectPublicID,
		Source: codex.EntityRef{
			ID:   row.SourcePubID,
			Name: row.SourceName,
			Type: codex.EntityType(row.SourceType),
		},
		Target: codex.EntityRef{
			ID:   row.TargetPubID,
			Name: row.TargetName,
			Type: codex.EntityType(row.TargetType),
		},
		Type:        row.Type,
		Description: row.Description,
	}
}

// dedupeTags drops duplicate tags while keeping first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}

// publishNetworkEvent asks the worker to rebuild the project's network
// snapshot. Publish failures are logged, never surfaced: the mutation
// itself already succeeded.
func publishNetworkEvent(c echo.Context, projectPublicID string, event string) {
	ch := c.(*middleware.AppContext).App.Queue
	msg := queue.NetworkEventMsg{
		Message:   "Codex changed",
		ProjectID: projectPublicID,
		Event:     event,
	}
	err := queue.PublishFIFO(ch, queue.NetworkQueue, []byte(util.ConvertStructToJson(msg)))
	if err != nil {
		logger.Error("Failed to publish to network_queue", "err", err)
	}
}
