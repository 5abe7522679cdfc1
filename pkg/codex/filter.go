package codex

import (
	"slices"
	"strings"
)

// Filter is the display filter applied to locally held codex lists. It is
// never persisted or sent to the server; the visible subset is recomputed
// on every change.
type Filter struct {
	// Type keeps only entities of one type. Empty or "all" passes every
	// entity.
	Type string
	// Search is matched case-insensitively as a substring against name
	// and description.
	Search string
	// Tags keeps entities sharing at least one tag with the set.
	Tags []string
}

// FilterEntities returns the entities matching every axis of the filter.
// The three axes compose with AND; tag matching is OR across the selected
// tags. Input order is preserved and the input slice is never modified.
func FilterEntities(entities []Entity, f Filter) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if !matchType(f.Type, e.Type) {
			continue
		}
		if !matchSearch(f.Search, e.Name, e.Description) {
			continue
		}
		if !matchTags(f.Tags, e.Tags) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterRelationships returns the relationships matching the filter. The
// type axis matches when either endpoint has the wanted entity type; the
// search axis matches against either endpoint name or the relationship
// type.
func FilterRelationships(rels []Relationship, f Filter) []Relationship {
	out := make([]Relationship, 0, len(rels))
	for _, r := range rels {
		if !matchType(f.Type, r.Source.Type) && !matchType(f.Type, r.Target.Type) {
			continue
		}
		if !matchSearch(f.Search, r.Source.Name, r.Target.Name, r.Type) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TargetCandidates returns the entities selectable as the target of a new
// relationship from the given source. The source itself is excluded, which
// is what rules out self-relationships.
func TargetCandidates(entities []Entity, sourceID string) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.ID == sourceID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AllTags collects the distinct tags across entities, sorted for display.
func AllTags(entities []Entity) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, e := range entities {
		for _, tag := range e.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	slices.Sort(tags)
	return tags
}

func matchType(want string, t EntityType) bool {
	return want == "" || want == "all" || want == string(t)
}

func matchSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchTags(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, tag := range wanted {
		if slices.Contains(have, tag) {
			return true
		}
	}
	return false
}
