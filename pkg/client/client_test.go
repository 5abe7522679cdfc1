package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storyloom/backend/pkg/codex"
)

func TestClient_EnvelopeSuccessFalseIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with success=false still counts as a failed request.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "data": null, "message": "entity not found"}`))
	}))
	defer server.Close()

	c := NewClient(NewClientParams{BaseURL: server.URL})
	_, err := c.GetEntity(context.Background(), "missing")

	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if rerr.Message != "entity not found" || rerr.Status != http.StatusOK {
		t.Fatalf("unexpected request error: %+v", rerr)
	}
}

func TestClient_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := NewClient(NewClientParams{BaseURL: server.URL})
	if _, err := c.ListEntities(context.Background(), "p1"); err == nil {
		t.Fatal("expected error for malformed envelope, got nil")
	}
}

func TestClient_BearerTokenSent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []codex.Entity{}, "")
	}))
	defer server.Close()

	c := NewClient(NewClientParams{BaseURL: server.URL, Token: "secret"})
	if _, err := c.ListEntities(context.Background(), "p1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
}

func TestWorkspace_LoadFailureLeavesListsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, nil, "Internal server error")
	}))
	defer server.Close()

	c := NewClient(NewClientParams{BaseURL: server.URL})
	w := NewWorkspace(c, "p1", codex.Vocabulary{}, NewNotifier(16))
	if err := w.Load(context.Background()); err == nil {
		t.Fatal("expected load error, got nil")
	}
	if len(w.Entities()) != 0 || len(w.Relationships()) != 0 {
		t.Fatalf("expected empty lists after failed load")
	}

	notes := drainNotifications(w)
	if len(notes) != 1 || notes[0].Severity != SeverityError {
		t.Fatalf("expected one failure notification, got %v", notes)
	}
}
