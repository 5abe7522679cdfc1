package db

import "time"

// Project is one writing project. The public id is what the API exposes;
// the serial id stays internal.
type Project struct {
	ID          int64     `json:"-"`
	PublicID    string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Entity is one codex record row. Attributes hold the raw JSONB document;
// the handlers validate it against the typed variant for the entity type
// before it gets here.
type Entity struct {
	ID          int64     `json:"-"`
	PublicID    string    `json:"id"`
	ProjectID   int64     `json:"-"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Attributes  []byte    `json:"-"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Relationship is one directed edge row between two entities.
type Relationship struct {
	ID          int64
	PublicID    string
	ProjectID   int64
	SourceID    int64
	TargetID    int64
	Type        string
	Description string
	CreatedAt   time.Time
}

// RelationshipRow is a relationship joined with the denormalized endpoint
// data the API serves.
type RelationshipRow struct {
	ID          int64
	PublicID    string
	ProjectID   int64
	Type        string
	Description string
	SourceID    int64
	SourcePubID string
	SourceName  string
	SourceType  string
	TargetID    int64
	TargetPubID string
	TargetName  string
	TargetType  string
}

// NetworkSnapshot is the cached denormalized network view of one project,
// rebuilt by the worker after codex mutations.
type NetworkSnapshot struct {
	ProjectID int64
	Data      []byte
	UpdatedAt time.Time
}
