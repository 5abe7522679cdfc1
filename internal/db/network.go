package db

import "context"

const upsertNetworkSnapshot = `
INSERT INTO codex_network_snapshots (project_id, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (project_id)
DO UPDATE SET data = EXCLUDED.data, updated_at = now()
`

func (q *Queries) UpsertNetworkSnapshot(ctx context.Context, projectID int64, data []byte) error {
	_, err := q.db.Exec(ctx, upsertNetworkSnapshot, projectID, data)
	return err
}

const getNetworkSnapshot = `
SELECT project_id, data, updated_at
FROM codex_network_snapshots
WHERE project_id = $1
`

func (q *Queries) GetNetworkSnapshot(ctx context.Context, projectID int64) (NetworkSnapshot, error) {
	row := q.db.QueryRow(ctx, getNetworkSnapshot, projectID)
	var s NetworkSnapshot
	err := row.Scan(&s.ProjectID, &s.Data, &s.UpdatedAt)
	return s, err
}

const deleteNetworkSnapshot = `
DELETE FROM codex_network_snapshots WHERE project_id = $1
`

func (q *Queries) DeleteNetworkSnapshot(ctx context.Context, projectID int64) error {
	_, err := q.db.Exec(ctx, deleteNetworkSnapshot, projectID)
	return err
}
