package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/storyloom/backend/pkg/codex"
	"github.com/storyloom/backend/pkg/logger"
)

// TypeCustom is the sentinel suggestion value that resolves to the
// accompanying free-text type.
const TypeCustom = "custom"

// Workspace holds one project's locally loaded codex — entity list,
// relationship list, and network view — and orchestrates mutations
// against the service. Lists are independent local copies; after a
// mutation the network view is re-fetched wholesale rather than patched.
//
// A Workspace is meant for a single UI event loop and is not safe for
// concurrent use.
type Workspace struct {
	client    *Client
	projectID string
	vocab     codex.Vocabulary
	notifier  *Notifier

	entities      []codex.Entity
	relationships []codex.Relationship
	network       codex.Network
}

// NewWorkspace creates a workspace for one project. A zero-value
// vocabulary falls back to the default suggestion table.
func NewWorkspace(c *Client, projectID string, vocab codex.Vocabulary, notifier *Notifier) *Workspace {
	if vocab.SameType == nil && vocab.Mixed == nil {
		vocab = codex.DefaultVocabulary()
	}
	if notifier == nil {
		notifier = NewNotifier(16)
	}
	return &Workspace{
		client:    c,
		projectID: projectID,
		vocab:     vocab,
		notifier:  notifier,
	}
}

// Notifier returns the workspace's notification channel owner.
func (w *Workspace) Notifier() *Notifier {
	return w.notifier
}

// Entities returns the locally held entity list.
func (w *Workspace) Entities() []codex.Entity {
	return w.entities
}

// Relationships returns the locally held relationship list.
func (w *Workspace) Relationships() []codex.Relationship {
	return w.relationships
}

// Network returns the last fetched network view.
func (w *Workspace) Network() codex.Network {
	return w.network
}

// Load fetches the entity list, relationship list, and network view
// concurrently. A failed fetch leaves its list empty rather than stale
// and raises one failure notification for the load as a whole.
func (w *Workspace) Load(ctx context.Context) error {
	w.entities = nil
	w.relationships = nil
	w.network = codex.Network{}

	var g errgroup.Group
	g.Go(func() error {
		entities, err := w.client.ListEntities(ctx, w.projectID)
		if err != nil {
			return err
		}
		w.entities = entities
		return nil
	})
	g.Go(func() error {
		rels, err := w.client.ListRelationships(ctx, w.projectID)
		if err != nil {
			return err
		}
		w.relationships = rels
		return nil
	})
	g.Go(func() error {
		network, err := w.client.GetNetwork(ctx, w.projectID)
		if err != nil {
			return err
		}
		w.network = network
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to load codex data", "project", w.projectID, "err", err)
		w.notifier.Publish("Failed to load relationships data", SeverityError)
		return err
	}
	return nil
}

// Suggestions returns the advisory relationship types for the selected
// endpoint pair. Either endpoint may be nil while the user is still
// choosing.
func (w *Workspace) Suggestions(source, target *codex.Entity) []string {
	var sourceType, targetType codex.EntityType
	if source != nil {
		sourceType = source.Type
	}
	if target != nil {
		targetType = target.Type
	}
	return w.vocab.Suggest(sourceType, targetType)
}

// TargetCandidates returns the entities selectable as the target for the
// given source entity. The source itself is never a candidate.
func (w *Workspace) TargetCandidates(source *codex.Entity) []codex.Entity {
	sourceID := ""
	if source != nil {
		sourceID = source.ID
	}
	return codex.TargetCandidates(w.entities, sourceID)
}

// CreateRelationshipInput is one user gesture: connect a source entity to
// a target entity with a typed edge, optionally creating the inverse edge
// in the same call.
type CreateRelationshipInput struct {
	Source *codex.Entity
	Target *codex.Entity

	// Type is the selected suggestion, or TypeCustom to use CustomType.
	Type       string
	CustomType string

	Description string

	// Bidirectional asks for a second, independent inverse edge.
	// InverseType left blank means "same as the forward type".
	Bidirectional     bool
	InverseType       string
	CustomInverseType string
}

func resolveType(selected, custom string) string {
	if selected == TypeCustom {
		return custom
	}
	return selected
}

// CreateRelationship turns the gesture into one creation request and
// merges the result into the workspace. Validation fails fast in a fixed
// order: endpoints, forward type, inverse type. Once the service
// acknowledges the creation the edges are durable; a failure of the
// follow-up network refresh is logged and does not undo anything.
func (w *Workspace) CreateRelationship(ctx context.Context, input CreateRelationshipInput) ([]codex.Relationship, error) {
	if input.Source == nil || input.Target == nil {
		w.notifier.Publish("Please select both source and target entities", SeverityError)
		return nil, &ValidationError{Reason: "missing endpoints"}
	}

	forwardType := resolveType(input.Type, input.CustomType)
	if forwardType == "" {
		w.notifier.Publish("Please specify a relationship type", SeverityError)
		return nil, &ValidationError{Reason: "missing relationship type"}
	}

	inverseType := ""
	if input.Bidirectional {
		if input.InverseType == TypeCustom {
			inverseType = input.CustomInverseType
		} else if input.InverseType != "" {
			inverseType = input.InverseType
		} else {
			inverseType = forwardType
		}
		if inverseType == "" {
			w.notifier.Publish("Please specify an inverse relationship type", SeverityError)
			return nil, &ValidationError{Reason: "missing inverse type"}
		}
	}

	created, err := w.client.CreateRelationship(ctx, w.projectID, CreateRelationshipParams{
		SourceID:      input.Source.ID,
		TargetID:      input.Target.ID,
		Type:          forwardType,
		Description:   input.Description,
		CreateInverse: input.Bidirectional,
		InverseType:   inverseType,
	})
	if err != nil {
		logger.Error("Failed to create relationship", "project", w.projectID, "err", err)
		w.notifier.Publish("Failed to create relationship", SeverityError)
		return nil, err
	}

	edges := []codex.Relationship{created.Relationship}
	if created.InverseRelationship != nil {
		edges = append(edges, *created.InverseRelationship)
	}
	w.relationships = append(w.relationships, edges...)

	w.refreshNetwork(ctx)
	w.notifier.Publish("Relationship created successfully", SeveritySuccess)
	return edges, nil
}

// DeleteRelationship deletes exactly one edge. On success only that id is
// removed from the local list; an independently created inverse edge is
// left alone. On failure local state is unchanged.
func (w *Workspace) DeleteRelationship(ctx context.Context, relationshipID string) error {
	if err := w.client.DeleteRelationship(ctx, relationshipID); err != nil {
		logger.Error("Failed to delete relationship", "relationship", relationshipID, "err", err)
		w.notifier.Publish("Failed to delete relationship", SeverityError)
		return err
	}

	kept := make([]codex.Relationship, 0, len(w.relationships))
	for _, r := range w.relationships {
		if r.ID != relationshipID {
			kept = append(kept, r)
		}
	}
	w.relationships = kept

	w.refreshNetwork(ctx)
	w.notifier.Publish("Relationship deleted successfully", SeveritySuccess)
	return nil
}

// refreshNetwork re-fetches the network view after a mutation. The
// primary operation already succeeded, so a refresh failure is logged and
// the stale view kept; no user-facing error is raised.
func (w *Workspace) refreshNetwork(ctx context.Context) {
	network, err := w.client.GetNetwork(ctx, w.projectID)
	if err != nil {
		logger.Error("Failed to refresh network view", "project", w.projectID, "err", err)
		return
	}
	w.network = network
}
