package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storyloom/backend/internal/db"
	"github.com/storyloom/backend/pkg/codex"
	"github.com/storyloom/backend/pkg/logger"
)

// NetworkEventMsg announces a codex mutation whose project needs its
// network snapshot rebuilt.
type NetworkEventMsg struct {
	Message   string `json:"message"`
	ProjectID string `json:"project_id"`
	Event     string `json:"event"`
}

// ProcessNetworkMessage rebuilds and stores the network snapshot for the
// project named in the message. Rebuilding is idempotent, so redelivery
// after a retry is harmless.
func ProcessNetworkMessage(
	ctx context.Context,
	conn *pgxpool.Pool,
	msg string,
) error {
	data := new(NetworkEventMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("unmarshal network event: %w", err)
	}

	q := db.New(conn)
	project, err := q.GetProjectByPublicID(ctx, data.ProjectID)
	if err != nil {
		return fmt.Errorf("load project %s: %w", data.ProjectID, err)
	}

	network, err := BuildProjectNetwork(ctx, q, project.ID)
	if err != nil {
		return fmt.Errorf("build network for project %s: %w", data.ProjectID, err)
	}

	payload, err := json.Marshal(network)
	if err != nil {
		return err
	}
	if err := q.UpsertNetworkSnapshot(ctx, project.ID, payload); err != nil {
		return fmt.Errorf("store network snapshot for project %s: %w", data.ProjectID, err)
	}

	logger.Debug("[Queue] Network snapshot rebuilt",
		"project_id", data.ProjectID,
		"event", data.Event,
		"nodes", len(network.Nodes),
		"edges", len(network.Edges),
	)
	return nil
}

// BuildProjectNetwork derives the denormalized network view from the
// project's current entity and relationship rows. The API serves the
// stored snapshot when present and falls back to this on a cold read.
func BuildProjectNetwork(ctx context.Context, q *db.Queries, projectID int64) (codex.Network, error) {
	rows, err := q.ListProjectEntities(ctx, projectID)
	if err != nil {
		return codex.Network{}, err
	}
	entities := make([]codex.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, codex.Entity{
			ID:   row.PublicID,
			Type: codex.EntityType(row.Type),
			Name: row.Name,
		})
	}

	relRows, err := q.ListProjectRelationships(ctx, projectID)
	if err != nil {
		return codex.Network{}, err
	}
	relationships := make([]codex.Relationship, 0, len(relRows))
	for _, row := range relRows {
		relationships = append(relationships, codex.Relationship{
			ID:          row.PublicID,
			Source:      codex.EntityRef{ID: row.SourcePubID, Name: row.SourceName, Type: codex.EntityType(row.SourceType)},
			Target:      codex.EntityRef{ID: row.TargetPubID, Name: row.TargetName, Type: codex.EntityType(row.TargetType)},
			Type:        row.Type,
			Description: row.Description,
		})
	}

	return codex.BuildNetwork(entities, relationships), nil
}
