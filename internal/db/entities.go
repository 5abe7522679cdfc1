package db

import "context"

const createEntity = `
INSERT INTO codex_entities (public_id, project_id, type, name, description, attributes, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, public_id, project_id, type, name, description, attributes, tags, created_at
`

type CreateEntityParams struct {
	PublicID    string
	ProjectID   int64
	Type        string
	Name        string
	Description string
	Attributes  []byte
	Tags        []string
}

func (q *Queries) CreateEntity(ctx context.Context, arg CreateEntityParams) (Entity, error) {
	row := q.db.QueryRow(ctx, createEntity,
		arg.PublicID, arg.ProjectID, arg.Type, arg.Name, arg.Description, arg.Attributes, arg.Tags)
	return scanEntity(row)
}

const getEntityByPublicID = `
SELECT id, public_id, project_id, type, name, description, attributes, tags, created_at
FROM codex_entities
WHERE public_id = $1
`

func (q *Queries) GetEntityByPublicID(ctx context.Context, publicID string) (Entity, error) {
	return scanEntity(q.db.QueryRow(ctx, getEntityByPublicID, publicID))
}

const getProjectEntityByPublicID = `
SELECT id, public_id, project_id, type, name, description, attributes, tags, created_at
FROM codex_entities
WHERE public_id = $1 AND project_id = $2
`

func (q *Queries) GetProjectEntityByPublicID(ctx context.Context, publicID string, projectID int64) (Entity, error) {
	return scanEntity(q.db.QueryRow(ctx, getProjectEntityByPublicID, publicID, projectID))
}

const listProjectEntities = `
SELECT id, public_id, project_id, type, name, description, attributes, tags, created_at
FROM codex_entities
WHERE project_id = $1
ORDER BY id
`

func (q *Queries) ListProjectEntities(ctx context.Context, projectID int64) ([]Entity, error) {
	rows, err := q.db.Query(ctx, listProjectEntities, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entities := make([]Entity, 0)
	for rows.Next() {
		var e Entity
		if err := rows.Scan(&e.ID, &e.PublicID, &e.ProjectID, &e.Type, &e.Name,
			&e.Description, &e.Attributes, &e.Tags, &e.CreatedAt); err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

const updateEntity = `
UPDATE codex_entities
SET name = $2, description = $3, attributes = $4, tags = $5
WHERE id = $1
RETURNING id, public_id, project_id, type, name, description, attributes, tags, created_at
`

type UpdateEntityParams struct {
	ID          int64
	Name        string
	Description string
	Attributes  []byte
	Tags        []string
}

// UpdateEntity replaces the mutable fields of an entity. The type column
// is deliberately absent: an entity's type is fixed at creation.
func (q *Queries) UpdateEntity(ctx context.Context, arg UpdateEntityParams) (Entity, error) {
	row := q.db.QueryRow(ctx, updateEntity,
		arg.ID, arg.Name, arg.Description, arg.Attributes, arg.Tags)
	return scanEntity(row)
}

const deleteEntity = `
DELETE FROM codex_entities WHERE id = $1
`

// DeleteEntity removes an entity. Relationships referencing it go with it
// via the FK cascade.
func (q *Queries) DeleteEntity(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteEntity, id)
	return err
}

type entityRow interface {
	Scan(dest ...any) error
}

func scanEntity(row entityRow) (Entity, error) {
	var e Entity
	err := row.Scan(&e.ID, &e.PublicID, &e.ProjectID, &e.Type, &e.Name,
		&e.Description, &e.Attributes, &e.Tags, &e.CreatedAt)
	return e, err
}
