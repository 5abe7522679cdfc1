package codex

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Attributes is the per-type attribute set of an entity. Exactly one
// implementation exists per entity type, so a mistyped or unknown field is
// a decode error rather than silently kept data.
type Attributes interface {
	EntityType() EntityType
}

// CharacterAttributes describes a character entity.
type CharacterAttributes struct {
	Age                 int      `json:"age,omitempty"`
	Occupation          string   `json:"occupation,omitempty"`
	PhysicalDescription string   `json:"physicalDescription,omitempty"`
	Personality         string   `json:"personality,omitempty"`
	Background          string   `json:"background,omitempty"`
	Goals               []string `json:"goals,omitempty"`
	Fears               []string `json:"fears,omitempty"`
}

func (CharacterAttributes) EntityType() EntityType { return TypeCharacter }

// LocationAttributes describes a location entity.
type LocationAttributes struct {
	Geography string `json:"geography,omitempty"`
	Climate   string `json:"climate,omitempty"`
	Culture   string `json:"culture,omitempty"`
	History   string `json:"history,omitempty"`
}

func (LocationAttributes) EntityType() EntityType { return TypeLocation }

// ItemAttributes describes an item entity.
type ItemAttributes struct {
	Appearance   string `json:"appearance,omitempty"`
	History      string `json:"history,omitempty"`
	Powers       string `json:"powers,omitempty"`
	Significance string `json:"significance,omitempty"`
}

func (ItemAttributes) EntityType() EntityType { return TypeItem }

// EventAttributes describes an event entity.
type EventAttributes struct {
	Date         string   `json:"date,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Outcome      string   `json:"outcome,omitempty"`
	Significance string   `json:"significance,omitempty"`
}

func (EventAttributes) EntityType() EntityType { return TypeEvent }

// ConceptAttributes describes a concept entity.
type ConceptAttributes struct {
	Rules        string   `json:"rules,omitempty"`
	Examples     []string `json:"examples,omitempty"`
	Implications string   `json:"implications,omitempty"`
}

func (ConceptAttributes) EntityType() EntityType { return TypeConcept }

// EmptyAttributes returns the zero attribute set for an entity type.
func EmptyAttributes(t EntityType) (Attributes, error) {
	switch t {
	case TypeCharacter:
		return CharacterAttributes{}, nil
	case TypeLocation:
		return LocationAttributes{}, nil
	case TypeItem:
		return ItemAttributes{}, nil
	case TypeEvent:
		return EventAttributes{}, nil
	case TypeConcept:
		return ConceptAttributes{}, nil
	}
	return nil, fmt.Errorf("unknown entity type: %q", t)
}

// DecodeAttributes parses an attribute document against the variant for the
// given entity type. Fields that do not belong to the variant are rejected.
// An empty or null document yields the zero attribute set.
func DecodeAttributes(t EntityType, raw []byte) (Attributes, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return EmptyAttributes(t)
	}

	decode := func(v any) error {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}

	switch t {
	case TypeCharacter:
		var a CharacterAttributes
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("decode character attributes: %w", err)
		}
		return a, nil
	case TypeLocation:
		var a LocationAttributes
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("decode location attributes: %w", err)
		}
		return a, nil
	case TypeItem:
		var a ItemAttributes
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("decode item attributes: %w", err)
		}
		return a, nil
	case TypeEvent:
		var a EventAttributes
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("decode event attributes: %w", err)
		}
		return a, nil
	case TypeConcept:
		var a ConceptAttributes
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("decode concept attributes: %w", err)
		}
		return a, nil
	}
	return nil, fmt.Errorf("unknown entity type: %q", t)
}

// EncodeAttributes serializes an attribute set for storage or transport.
// A nil set encodes as an empty document.
func EncodeAttributes(a Attributes) ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}
