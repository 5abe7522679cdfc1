package codex

import (
	"encoding/json"
	"testing"
)

func TestDecodeAttributes_Character(t *testing.T) {
	raw := []byte(`{"age": 31, "occupation": "knight", "goals": ["find the blade", "go home"]}`)
	attrs, err := DecodeAttributes(TypeCharacter, raw)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	char, ok := attrs.(CharacterAttributes)
	if !ok {
		t.Fatalf("expected CharacterAttributes, got %T", attrs)
	}
	if char.Age != 31 || char.Occupation != "knight" {
		t.Fatalf("unexpected scalar fields: %+v", char)
	}
	if len(char.Goals) != 2 || char.Goals[0] != "find the blade" {
		t.Fatalf("unexpected goals: %v", char.Goals)
	}
}

func TestDecodeAttributes_RejectsUnknownFields(t *testing.T) {
	// "climate" belongs to locations, not characters.
	raw := []byte(`{"climate": "temperate"}`)
	if _, err := DecodeAttributes(TypeCharacter, raw); err == nil {
		t.Fatal("expected error for foreign attribute field, got nil")
	}
}

func TestDecodeAttributes_EmptyAndNull(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("null")} {
		attrs, err := DecodeAttributes(TypeLocation, raw)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if _, ok := attrs.(LocationAttributes); !ok {
			t.Fatalf("expected empty LocationAttributes, got %T", attrs)
		}
	}
}

func TestDecodeAttributes_UnknownType(t *testing.T) {
	if _, err := DecodeAttributes("spaceship", []byte(`{}`)); err == nil {
		t.Fatal("expected error for unknown entity type, got nil")
	}
}

func TestDecodeAttributes_EveryVariant(t *testing.T) {
	cases := []struct {
		typ EntityType
		raw string
	}{
		{TypeCharacter, `{"personality": "stoic", "fears": ["fire"]}`},
		{TypeLocation, `{"geography": "cliffs", "history": "old"}`},
		{TypeItem, `{"appearance": "silver", "powers": "glows"}`},
		{TypeEvent, `{"date": "year 312", "participants": ["Alice"]}`},
		{TypeConcept, `{"rules": "no iron", "examples": ["the ban"]}`},
	}
	for _, tc := range cases {
		attrs, err := DecodeAttributes(tc.typ, []byte(tc.raw))
		if err != nil {
			t.Fatalf("%s: expected nil error, got %v", tc.typ, err)
		}
		if attrs.EntityType() != tc.typ {
			t.Fatalf("expected variant for %s, got %s", tc.typ, attrs.EntityType())
		}
	}
}

func TestEntityJSONRoundTrip(t *testing.T) {
	entity := Entity{
		ID:        "e1",
		ProjectID: "p1",
		Type:      TypeEvent,
		Name:      "The Sundering",
		Attributes: EventAttributes{
			Date:         "third age",
			Participants: []string{"Alice", "Carol"},
			Outcome:      "the realm split",
		},
		Tags: []string{"pivotal"},
	}

	data, err := json.Marshal(entity)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Entity
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	attrs, ok := decoded.Attributes.(EventAttributes)
	if !ok {
		t.Fatalf("expected EventAttributes, got %T", decoded.Attributes)
	}
	if attrs.Outcome != "the realm split" || len(attrs.Participants) != 2 {
		t.Fatalf("unexpected attributes: %+v", attrs)
	}
	if decoded.Name != entity.Name || decoded.Type != entity.Type {
		t.Fatalf("unexpected entity: %+v", decoded)
	}
}
