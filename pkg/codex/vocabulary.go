package codex

// Vocabulary maps entity-type pairs to suggested relationship types. The
// suggestions are advisory; any non-empty string is a valid relationship
// type. Injecting the table keeps the suggestion logic substitutable in
// tests and configuration.
type Vocabulary struct {
	// SameType holds suggestion lists for edges between two entities of
	// the same type.
	SameType map[EntityType][]string
	// Mixed is the fallback list for cross-type edges and for same-type
	// pairs with no registered list.
	Mixed []string
}

// DefaultVocabulary returns the built-in suggestion table.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SameType: map[EntityType][]string{
			TypeCharacter: {
				"friend of", "enemy of", "parent of", "child of", "sibling of",
				"mentor of", "student of", "ally of", "rival of", "lover of",
				"spouse of", "acquaintance of", "boss of", "employee of",
			},
			TypeLocation: {
				"contains", "is inside", "is north of", "is south of", "is east of",
				"is west of", "borders", "is connected to", "is part of",
				"is capital of", "is in region of",
			},
			TypeItem: {
				"belongs to", "is owned by", "is used by", "is made by",
				"is component of", "contains", "is found in", "is paired with",
			},
		},
		Mixed: []string{
			"knows about", "is related to", "created", "destroyed",
			"visited", "lives in", "works in", "influences", "is influenced by",
			"participated in", "discovered", "affected", "is in possession of",
		},
	}
}

// Suggest returns the suggestion list for an edge from sourceType to
// targetType. Same-type pairs get that type's list, falling back to the
// mixed list when none is registered; cross-type pairs always get the
// mixed list. When either type is unset there is nothing to suggest.
func (v Vocabulary) Suggest(sourceType, targetType EntityType) []string {
	if sourceType == "" || targetType == "" {
		return nil
	}
	if sourceType == targetType {
		if list, ok := v.SameType[sourceType]; ok {
			return list
		}
	}
	return v.Mixed
}
