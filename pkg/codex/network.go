package codex

// Network is the denormalized graph view of a project's codex, consumed by
// visualization clients. It is a plain snapshot; the service rebuilds it
// after mutations rather than patching it incrementally.
type Network struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// NetworkNode is one entity in the network view.
type NetworkNode struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Type  EntityType `json:"type"`
}

// NetworkEdge is one relationship in the network view.
type NetworkEdge struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
	Title string `json:"title,omitempty"`
}

// BuildNetwork derives the network view from an entity and relationship
// list. Edges whose endpoints are missing from the entity list are dropped
// rather than rendered dangling.
func BuildNetwork(entities []Entity, relationships []Relationship) Network {
	nodes := make([]NetworkNode, 0, len(entities))
	known := make(map[string]bool, len(entities))
	for _, e := range entities {
		known[e.ID] = true
		nodes = append(nodes, NetworkNode{
			ID:    e.ID,
			Label: e.Name,
			Type:  e.Type,
		})
	}

	edges := make([]NetworkEdge, 0, len(relationships))
	for _, r := range relationships {
		if !known[r.Source.ID] || !known[r.Target.ID] {
			continue
		}
		edges = append(edges, NetworkEdge{
			ID:    r.ID,
			From:  r.Source.ID,
			To:    r.Target.ID,
			Label: r.Type,
			Title: r.Description,
		})
	}

	return Network{Nodes: nodes, Edges: edges}
}
