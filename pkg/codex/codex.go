package codex

import "encoding/json"

// EntityType identifies which kind of codex record an entity is.
// The set is closed and an entity's type is fixed at creation.
type EntityType string

const (
	TypeCharacter EntityType = "character"
	TypeLocation  EntityType = "location"
	TypeItem      EntityType = "item"
	TypeEvent     EntityType = "event"
	TypeConcept   EntityType = "concept"
)

// EntityTypes lists every valid entity type in display order.
var EntityTypes = []EntityType{
	TypeCharacter,
	TypeLocation,
	TypeItem,
	TypeEvent,
	TypeConcept,
}

// Valid reports whether t is one of the five known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case TypeCharacter, TypeLocation, TypeItem, TypeEvent, TypeConcept:
		return true
	}
	return false
}

// Label returns the human-readable name for an entity type.
func (t EntityType) Label() string {
	switch t {
	case TypeCharacter:
		return "Character"
	case TypeLocation:
		return "Location"
	case TypeItem:
		return "Item"
	case TypeEvent:
		return "Event"
	case TypeConcept:
		return "Concept"
	}
	return "Entity"
}

// Entity is a single codex record: a character, location, item, event, or
// concept belonging to one project. Names are not unique; only the id is.
//
// Entities carry a typed attribute set (see Attributes) and a list of
// free-form tags. Tags keep their insertion order and hold no duplicates.
type Entity struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId,omitempty"`
	Type        EntityType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Attributes  Attributes `json:"attributes,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// UnmarshalJSON decodes an entity, resolving the attribute document into
// the variant matching the entity's type.
func (e *Entity) UnmarshalJSON(data []byte) error {
	type plain Entity
	aux := struct {
		*plain
		Attributes json.RawMessage `json:"attributes,omitempty"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	attrs, err := DecodeAttributes(e.Type, aux.Attributes)
	if err != nil {
		return err
	}
	e.Attributes = attrs
	return nil
}

// Ref returns the denormalized reference used on relationship endpoints.
func (e Entity) Ref() EntityRef {
	return EntityRef{ID: e.ID, Name: e.Name, Type: e.Type}
}

// EntityRef is the denormalized endpoint of a relationship: enough of an
// entity to display an edge without another lookup.
type EntityRef struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type EntityType `json:"type"`
}

// Relationship is one directed, typed edge between two entities of the same
// project. The type string is free form; the suggestion vocabulary is
// advisory only.
//
// A "bidirectional" relationship is two independent edges created from one
// gesture. The edges carry independent ids and no reference to each other,
// so deleting one never affects its counterpart.
type Relationship struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId,omitempty"`
	Source      EntityRef `json:"source"`
	Target      EntityRef `json:"target"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
}

// Direction tags a relationship relative to a queried entity.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// EntityRelationship is a relationship as seen from one entity's detail
// view, tagged with the edge direction relative to that entity.
type EntityRelationship struct {
	Relationship
	Direction Direction `json:"direction"`
}
