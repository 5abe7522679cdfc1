package codex

import (
	"reflect"
	"testing"
)

func sampleEntities() []Entity {
	return []Entity{
		{ID: "e1", Type: TypeCharacter, Name: "Alice", Description: "a wandering knight", Tags: []string{"protagonist"}},
		{ID: "e2", Type: TypeCharacter, Name: "Bob", Tags: []string{}},
		{ID: "e3", Type: TypeCharacter, Name: "Carol", Tags: []string{"villain"}},
		{ID: "e4", Type: TypeLocation, Name: "Ravenwood", Description: "a dark forest"},
		{ID: "e5", Type: TypeItem, Name: "Moonblade", Tags: []string{"artifact", "villain"}},
	}
}

func TestFilterEntities_EmptyFilterReturnsAll(t *testing.T) {
	entities := sampleEntities()
	got := FilterEntities(entities, Filter{Type: "all", Search: "", Tags: []string{}})
	if !reflect.DeepEqual(got, entities) {
		t.Fatalf("expected unchanged list, got %v", got)
	}
}

func TestFilterEntities_TypeAxis(t *testing.T) {
	got := FilterEntities(sampleEntities(), Filter{Type: "character"})
	if len(got) != 3 {
		t.Fatalf("expected 3 characters, got %d", len(got))
	}
	for _, e := range got {
		if e.Type != TypeCharacter {
			t.Fatalf("unexpected type %q in result", e.Type)
		}
	}
}

func TestFilterEntities_SearchMatchesNameOrDescription(t *testing.T) {
	got := FilterEntities(sampleEntities(), Filter{Search: "DARK"})
	if len(got) != 1 || got[0].ID != "e4" {
		t.Fatalf("expected description match on e4, got %v", got)
	}

	got = FilterEntities(sampleEntities(), Filter{Search: "ali"})
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("expected name match on e1, got %v", got)
	}

	// An entity with no description still matches on name.
	got = FilterEntities(sampleEntities(), Filter{Search: "bob"})
	if len(got) != 1 || got[0].ID != "e2" {
		t.Fatalf("expected name match on e2, got %v", got)
	}
}

func TestFilterEntities_TagORSemantics(t *testing.T) {
	entities := []Entity{
		{ID: "x", Name: "X", Tags: []string{"a"}},
		{ID: "y", Name: "Y", Tags: []string{"b"}},
	}

	got := FilterEntities(entities, Filter{Tags: []string{"a", "b"}})
	if len(got) != 2 {
		t.Fatalf("expected both entities for tags [a b], got %d", len(got))
	}

	got = FilterEntities(entities, Filter{Tags: []string{"c"}})
	if len(got) != 0 {
		t.Fatalf("expected no entities for tag c, got %d", len(got))
	}
}

func TestFilterEntities_UntaggedExcludedWhenFilterActive(t *testing.T) {
	entities := []Entity{
		{ID: "b", Name: "Bob", Tags: []string{}},
		{ID: "c", Name: "Carol", Tags: []string{"villain"}},
	}
	got := FilterEntities(entities, Filter{Tags: []string{"villain"}})
	if len(got) != 1 || got[0].Name != "Carol" {
		t.Fatalf("expected only Carol, got %v", got)
	}
}

func TestFilterEntities_AxesComposeWithAND(t *testing.T) {
	got := FilterEntities(sampleEntities(), Filter{
		Type:   "character",
		Search: "caro",
		Tags:   []string{"villain"},
	})
	if len(got) != 1 || got[0].ID != "e3" {
		t.Fatalf("expected only e3, got %v", got)
	}

	// Moonblade carries the tag but is an item, so the type axis drops it.
	got = FilterEntities(sampleEntities(), Filter{
		Type: "character",
		Tags: []string{"villain"},
	})
	if len(got) != 1 || got[0].ID != "e3" {
		t.Fatalf("expected only e3, got %v", got)
	}
}

func TestFilterEntities_PreservesOrderAndInput(t *testing.T) {
	entities := sampleEntities()
	got := FilterEntities(entities, Filter{Tags: []string{"villain", "protagonist"}})
	want := []string{"e1", "e3", "e5"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected %s at index %d, got %s", id, i, got[i].ID)
		}
	}
	if entities[0].ID != "e1" || len(entities) != 5 {
		t.Fatal("input slice was modified")
	}
}

func TestFilterRelationships(t *testing.T) {
	rels := []Relationship{
		{ID: "r1", Source: EntityRef{ID: "e1", Name: "Alice", Type: TypeCharacter}, Target: EntityRef{ID: "e4", Name: "Ravenwood", Type: TypeLocation}, Type: "lives in"},
		{ID: "r2", Source: EntityRef{ID: "e3", Name: "Carol", Type: TypeCharacter}, Target: EntityRef{ID: "e1", Name: "Alice", Type: TypeCharacter}, Type: "enemy of"},
	}

	got := FilterRelationships(rels, Filter{Type: "location"})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected only r1, got %v", got)
	}

	got = FilterRelationships(rels, Filter{Search: "enemy"})
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("expected only r2, got %v", got)
	}

	got = FilterRelationships(rels, Filter{})
	if len(got) != 2 {
		t.Fatalf("expected both relationships, got %d", len(got))
	}
}

func TestTargetCandidates_ExcludesSource(t *testing.T) {
	entities := sampleEntities()
	got := TargetCandidates(entities, "e1")
	if len(got) != len(entities)-1 {
		t.Fatalf("expected %d candidates, got %d", len(entities)-1, len(got))
	}
	for _, e := range got {
		if e.ID == "e1" {
			t.Fatal("source entity present in target candidates")
		}
	}

	// No selected source: everything is a candidate.
	got = TargetCandidates(entities, "")
	if len(got) != len(entities) {
		t.Fatalf("expected %d candidates, got %d", len(entities), len(got))
	}
}

func TestAllTags(t *testing.T) {
	got := AllTags(sampleEntities())
	want := []string{"artifact", "protagonist", "villain"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
