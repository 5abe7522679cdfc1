package db

import "context"

const createRelationship = `
INSERT INTO codex_relationships (public_id, project_id, source_id, target_id, type, description)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, public_id, project_id, source_id, target_id, type, description, created_at
`

type CreateRelationshipParams struct {
	PublicID    string
	ProjectID   int64
	SourceID    int64
	TargetID    int64
	Type        string
	Description string
}

func (q *Queries) CreateRelationship(ctx context.Context, arg CreateRelationshipParams) (Relationship, error) {
	row := q.db.QueryRow(ctx, createRelationship,
		arg.PublicID, arg.ProjectID, arg.SourceID, arg.TargetID, arg.Type, arg.Description)
	var r Relationship
	err := row.Scan(&r.ID, &r.PublicID, &r.ProjectID, &r.SourceID, &r.TargetID,
		&r.Type, &r.Description, &r.CreatedAt)
	return r, err
}

const relationshipRowColumns = `
SELECT r.id, r.public_id, r.project_id, r.type, r.description,
       s.id, s.public_id, s.name, s.type,
       t.id, t.public_id, t.name, t.type
FROM codex_relationships r
JOIN codex_entities s ON s.id = r.source_id
JOIN codex_entities t ON t.id = r.target_id
`

const getRelationshipByPublicID = relationshipRowColumns + `
WHERE r.public_id = $1
`

func (q *Queries) GetRelationshipByPublicID(ctx context.Context, publicID string) (RelationshipRow, error) {
	return scanRelationshipRow(q.db.QueryRow(ctx, getRelationshipByPublicID, publicID))
}

const listProjectRelationships = relationshipRowColumns + `
WHERE r.project_id = $1
ORDER BY r.id
`

func (q *Queries) ListProjectRelationships(ctx context.Context, projectID int64) ([]RelationshipRow, error) {
	rows, err := q.db.Query(ctx, listProjectRelationships, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]RelationshipRow, 0)
	for rows.Next() {
		r, err := scanRelationshipRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

const listEntityRelationships = relationshipRowColumns + `
WHERE r.source_id = $1 OR r.target_id = $1
ORDER BY r.id
`

// ListEntityRelationships returns every edge touching the entity. The
// caller derives the direction by comparing the entity id against the
// source side.
func (q *Queries) ListEntityRelationships(ctx context.Context, entityID int64) ([]RelationshipRow, error) {
	rows, err := q.db.Query(ctx, listEntityRelationships, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]RelationshipRow, 0)
	for rows.Next() {
		r, err := scanRelationshipRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

const deleteRelationship = `
DELETE FROM codex_relationships WHERE id = $1
`

func (q *Queries) DeleteRelationship(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteRelationship, id)
	return err
}

func scanRelationshipRow(row entityRow) (RelationshipRow, error) {
	var r RelationshipRow
	err := row.Scan(&r.ID, &r.PublicID, &r.ProjectID, &r.Type, &r.Description,
		&r.SourceID, &r.SourcePubID, &r.SourceName, &r.SourceType,
		&r.TargetID, &r.TargetPubID, &r.TargetName, &r.TargetType)
	return r, err
}
