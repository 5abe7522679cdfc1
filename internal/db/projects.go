package db

import "context"

const createProject = `
INSERT INTO projects (public_id, name, description)
VALUES ($1, $2, $3)
RETURNING id, public_id, name, description, created_at
`

type CreateProjectParams struct {
	PublicID    string
	Name        string
	Description string
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, createProject, arg.PublicID, arg.Name, arg.Description)
	var p Project
	err := row.Scan(&p.ID, &p.PublicID, &p.Name, &p.Description, &p.CreatedAt)
	return p, err
}

const getProjectByPublicID = `
SELECT id, public_id, name, description, created_at
FROM projects
WHERE public_id = $1
`

func (q *Queries) GetProjectByPublicID(ctx context.Context, publicID string) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByPublicID, publicID)
	var p Project
	err := row.Scan(&p.ID, &p.PublicID, &p.Name, &p.Description, &p.CreatedAt)
	return p, err
}

const getProjectPublicID = `
SELECT public_id FROM projects WHERE id = $1
`

func (q *Queries) GetProjectPublicID(ctx context.Context, id int64) (string, error) {
	var publicID string
	err := q.db.QueryRow(ctx, getProjectPublicID, id).Scan(&publicID)
	return publicID, err
}

const listProjects = `
SELECT id, public_id, name, description, created_at
FROM projects
ORDER BY id
`

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.Query(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.PublicID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const deleteProject = `
DELETE FROM projects WHERE id = $1
`

func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteProject, id)
	return err
}
