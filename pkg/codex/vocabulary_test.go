package codex

import (
	"reflect"
	"testing"
)

func TestSuggest_SameTypeUsesRegisteredList(t *testing.T) {
	v := DefaultVocabulary()
	got := v.Suggest(TypeCharacter, TypeCharacter)
	if !reflect.DeepEqual(got, v.SameType[TypeCharacter]) {
		t.Fatalf("expected character list, got %v", got)
	}
}

func TestSuggest_CrossTypeUsesMixedList(t *testing.T) {
	v := DefaultVocabulary()
	got := v.Suggest(TypeCharacter, TypeLocation)
	if !reflect.DeepEqual(got, v.Mixed) {
		t.Fatalf("expected mixed list, got %v", got)
	}
}

func TestSuggest_SameTypeWithoutListFallsBackToMixed(t *testing.T) {
	v := DefaultVocabulary()
	// Events and concepts have no same-type list of their own.
	for _, typ := range []EntityType{TypeEvent, TypeConcept} {
		got := v.Suggest(typ, typ)
		if !reflect.DeepEqual(got, v.Mixed) {
			t.Fatalf("expected mixed fallback for %s, got %v", typ, got)
		}
	}
}

func TestSuggest_UnsetTypesSuggestNothing(t *testing.T) {
	v := DefaultVocabulary()
	if got := v.Suggest("", TypeCharacter); got != nil {
		t.Fatalf("expected nil for unset source, got %v", got)
	}
	if got := v.Suggest(TypeCharacter, ""); got != nil {
		t.Fatalf("expected nil for unset target, got %v", got)
	}
	if got := v.Suggest("", ""); got != nil {
		t.Fatalf("expected nil for both unset, got %v", got)
	}
}

func TestSuggest_InjectedTable(t *testing.T) {
	v := Vocabulary{
		SameType: map[EntityType][]string{TypeItem: {"forged with"}},
		Mixed:    []string{"linked to"},
	}
	if got := v.Suggest(TypeItem, TypeItem); !reflect.DeepEqual(got, []string{"forged with"}) {
		t.Fatalf("expected injected item list, got %v", got)
	}
	if got := v.Suggest(TypeItem, TypeEvent); !reflect.DeepEqual(got, []string{"linked to"}) {
		t.Fatalf("expected injected mixed list, got %v", got)
	}
}
