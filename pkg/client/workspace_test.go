package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storyloom/backend/pkg/codex"
)

// fakeService implements just enough of the codex service contract for
// workspace tests: relationship create/delete and the network view, all
// answered in the response envelope.
type fakeService struct {
	mux *http.ServeMux

	entities []codex.Entity

	createCalls  int
	deleteCalls  int
	networkCalls int
	lastCreate   CreateRelationshipParams
	nextID       int

	failCreate  bool
	failNetwork bool
}

func newFakeService(entities []codex.Entity) *fakeService {
	f := &fakeService{entities: entities, mux: http.NewServeMux()}

	f.mux.HandleFunc("GET /projects/p1/codex", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, f.entities, "")
	})
	f.mux.HandleFunc("GET /projects/p1/relationships", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []codex.Relationship{}, "")
	})
	f.mux.HandleFunc("GET /projects/p1/relationships/network", func(w http.ResponseWriter, r *http.Request) {
		f.networkCalls++
		if f.failNetwork {
			writeEnvelope(w, http.StatusInternalServerError, nil, "Internal server error")
			return
		}
		writeEnvelope(w, http.StatusOK, codex.Network{}, "")
	})
	f.mux.HandleFunc("POST /projects/p1/relationships", func(w http.ResponseWriter, r *http.Request) {
		f.createCalls++
		if f.failCreate {
			writeEnvelope(w, http.StatusInternalServerError, nil, "Internal server error")
			return
		}
		var params CreateRelationshipParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeEnvelope(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}
		f.lastCreate = params

		created := CreatedRelationships{
			Relationship: f.edge(params.SourceID, params.TargetID, params.Type, params.Description),
		}
		if params.CreateInverse {
			inverseType := params.InverseType
			if inverseType == "" {
				inverseType = params.Type
			}
			inverse := f.edge(params.TargetID, params.SourceID, inverseType, params.Description)
			created.InverseRelationship = &inverse
		}
		writeEnvelope(w, http.StatusOK, created, "")
	})
	f.mux.HandleFunc("DELETE /relationships/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.deleteCalls++
		writeEnvelope(w, http.StatusOK, map[string]bool{"deleted": true}, "")
	})

	return f
}

func (f *fakeService) edge(sourceID, targetID, relType, description string) codex.Relationship {
	f.nextID++
	return codex.Relationship{
		ID:          fmt.Sprintf("r%d", f.nextID),
		ProjectID:   "p1",
		Source:      f.ref(sourceID),
		Target:      f.ref(targetID),
		Type:        relType,
		Description: description,
	}
}

func (f *fakeService) ref(id string) codex.EntityRef {
	for _, e := range f.entities {
		if e.ID == id {
			return e.Ref()
		}
	}
	return codex.EntityRef{ID: id}
}

func writeEnvelope(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": status >= 200 && status <= 299,
		"data":    data,
		"message": message,
	})
}

func newTestWorkspace(t *testing.T) (*Workspace, *fakeService) {
	t.Helper()
	alice := codex.Entity{ID: "e1", ProjectID: "p1", Type: codex.TypeCharacter, Name: "Alice"}
	ravenwood := codex.Entity{ID: "e2", ProjectID: "p1", Type: codex.TypeLocation, Name: "Ravenwood"}

	fake := newFakeService([]codex.Entity{alice, ravenwood})
	server := httptest.NewServer(fake.mux)
	t.Cleanup(server.Close)

	c := NewClient(NewClientParams{BaseURL: server.URL, Token: "test-token"})
	w := NewWorkspace(c, "p1", codex.Vocabulary{}, NewNotifier(16))
	if err := w.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return w, fake
}

func drainNotifications(w *Workspace) []Notification {
	var notes []Notification
	for {
		select {
		case n := <-w.Notifier().Events():
			notes = append(notes, n)
		default:
			return notes
		}
	}
}

func entityByID(t *testing.T, w *Workspace, id string) *codex.Entity {
	t.Helper()
	for i := range w.Entities() {
		if w.Entities()[i].ID == id {
			return &w.Entities()[i]
		}
	}
	t.Fatalf("entity %s not loaded", id)
	return nil
}

func TestCreateRelationship_MissingEndpointsFailFirst(t *testing.T) {
	w, fake := newTestWorkspace(t)
	fake.createCalls = 0
	fake.networkCalls = 0

	// Types are filled in, yet the endpoint check still wins.
	_, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source:        nil,
		Target:        entityByID(t, w, "e2"),
		Type:          "lives in",
		Bidirectional: true,
		InverseType:   "home of",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Reason != "missing endpoints" {
		t.Fatalf("expected endpoints error, got %q", verr.Reason)
	}
	if fake.createCalls != 0 || fake.networkCalls != 0 {
		t.Fatalf("expected zero network calls, got create=%d network=%d", fake.createCalls, fake.networkCalls)
	}

	notes := drainNotifications(w)
	if len(notes) != 1 || notes[0].Severity != SeverityError {
		t.Fatalf("expected one error notification, got %v", notes)
	}
}

func TestCreateRelationship_MissingTypeAfterEndpoints(t *testing.T) {
	w, fake := newTestWorkspace(t)
	fake.createCalls = 0

	_, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source: entityByID(t, w, "e1"),
		Target: entityByID(t, w, "e2"),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Reason != "missing relationship type" {
		t.Fatalf("expected missing type error, got %v", err)
	}

	// "custom" selected with an empty custom field resolves to empty.
	_, err = w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source: entityByID(t, w, "e1"),
		Target: entityByID(t, w, "e2"),
		Type:   TypeCustom,
	})
	var verr2 *ValidationError
	if !errors.As(err, &verr2) || verr2.Reason != "missing relationship type" {
		t.Fatalf("expected missing type error, got %v", err)
	}
	if fake.createCalls != 0 {
		t.Fatalf("expected zero create calls, got %d", fake.createCalls)
	}
}

func TestCreateRelationship_MissingInverseType(t *testing.T) {
	w, fake := newTestWorkspace(t)
	fake.createCalls = 0

	_, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source:        entityByID(t, w, "e1"),
		Target:        entityByID(t, w, "e2"),
		Type:          "lives in",
		Bidirectional: true,
		InverseType:   TypeCustom, // custom chosen but left blank
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Reason != "missing inverse type" {
		t.Fatalf("expected missing inverse type error, got %v", err)
	}
	if fake.createCalls != 0 {
		t.Fatalf("expected zero create calls, got %d", fake.createCalls)
	}
}

func TestCreateRelationship_BlankInverseDefaultsToForward(t *testing.T) {
	w, fake := newTestWorkspace(t)

	edges, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source:        entityByID(t, w, "e1"),
		Target:        entityByID(t, w, "e2"),
		Type:          "lives in",
		Bidirectional: true,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fake.lastCreate.InverseType != "lives in" {
		t.Fatalf("expected inverse type to default to forward, got %q", fake.lastCreate.InverseType)
	}
	if len(edges) != 2 {
		t.Fatalf("expected two edges, got %d", len(edges))
	}
	forward, inverse := edges[0], edges[1]
	if forward.Source.Name != "Alice" || forward.Target.Name != "Ravenwood" || forward.Type != "lives in" {
		t.Fatalf("unexpected forward edge: %+v", forward)
	}
	if inverse.Source.Name != "Ravenwood" || inverse.Target.Name != "Alice" || inverse.Type != "lives in" {
		t.Fatalf("unexpected inverse edge: %+v", inverse)
	}
	if forward.ID == inverse.ID {
		t.Fatal("forward and inverse edges share an id")
	}
	if len(w.Relationships()) != 2 {
		t.Fatalf("expected both edges merged locally, got %d", len(w.Relationships()))
	}
}

func TestCreateRelationship_CustomTypeResolution(t *testing.T) {
	w, fake := newTestWorkspace(t)

	edges, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source:     entityByID(t, w, "e1"),
		Target:     entityByID(t, w, "e2"),
		Type:       TypeCustom,
		CustomType: "guards",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fake.lastCreate.Type != "guards" {
		t.Fatalf("expected resolved type guards, got %q", fake.lastCreate.Type)
	}
	if fake.lastCreate.CreateInverse {
		t.Fatal("expected no inverse for unidirectional create")
	}
	if len(edges) != 1 || edges[0].Type != "guards" {
		t.Fatalf("expected one guards edge, got %v", edges)
	}
}

func TestCreateRelationship_NetworkRefreshFailureKeepsEdge(t *testing.T) {
	w, fake := newTestWorkspace(t)
	fake.failNetwork = true

	edges, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source: entityByID(t, w, "e1"),
		Target: entityByID(t, w, "e2"),
		Type:   "lives in",
	})
	if err != nil {
		t.Fatalf("expected nil error despite refresh failure, got %v", err)
	}
	if len(w.Relationships()) != 1 || w.Relationships()[0].ID != edges[0].ID {
		t.Fatalf("expected created edge to stay, got %v", w.Relationships())
	}

	// The refresh failure is secondary: the user still sees success.
	notes := drainNotifications(w)
	if len(notes) != 1 || notes[0].Severity != SeveritySuccess {
		t.Fatalf("expected a single success notification, got %v", notes)
	}
}

func TestCreateRelationship_RequestFailureLeavesStateUntouched(t *testing.T) {
	w, fake := newTestWorkspace(t)
	fake.failCreate = true

	_, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source: entityByID(t, w, "e1"),
		Target: entityByID(t, w, "e2"),
		Type:   "lives in",
	})
	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if len(w.Relationships()) != 0 {
		t.Fatalf("expected no local mutation on failure, got %v", w.Relationships())
	}
}

func TestDeleteRelationship_RemovesOnlyThatEdge(t *testing.T) {
	w, fake := newTestWorkspace(t)

	edges, err := w.CreateRelationship(context.Background(), CreateRelationshipInput{
		Source:        entityByID(t, w, "e1"),
		Target:        entityByID(t, w, "e2"),
		Type:          "lives in",
		Bidirectional: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	drainNotifications(w)

	if err := w.DeleteRelationship(context.Background(), edges[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fake.deleteCalls != 1 {
		t.Fatalf("expected exactly one delete request, got %d", fake.deleteCalls)
	}
	if len(w.Relationships()) != 1 || w.Relationships()[0].ID != edges[1].ID {
		t.Fatalf("expected the inverse edge to survive, got %v", w.Relationships())
	}

	notes := drainNotifications(w)
	if len(notes) != 1 || notes[0].Severity != SeveritySuccess {
		t.Fatalf("expected one success notification, got %v", notes)
	}
}

func TestWorkspace_SuggestionsAndCandidates(t *testing.T) {
	w, _ := newTestWorkspace(t)
	alice := entityByID(t, w, "e1")
	ravenwood := entityByID(t, w, "e2")

	vocab := codex.DefaultVocabulary()
	got := w.Suggestions(alice, ravenwood)
	if len(got) != len(vocab.Mixed) {
		t.Fatalf("expected mixed suggestions for cross-type pair, got %v", got)
	}
	if got := w.Suggestions(nil, ravenwood); got != nil {
		t.Fatalf("expected no suggestions while source unset, got %v", got)
	}

	candidates := w.TargetCandidates(alice)
	if len(candidates) != 1 || candidates[0].ID != "e2" {
		t.Fatalf("expected only e2 as candidate, got %v", candidates)
	}
}
