package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/storyloom/backend/pkg/codex"
)

// Client talks to the codex service. Every response is expected in the
// {success, data, message} envelope; anything else is a RequestError.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClientParams contains configuration options for creating a Client.
type NewClientParams struct {
	// BaseURL is the service root, e.g. "https://api.example.com/api".
	BaseURL string
	// Token is sent as a bearer token on every request.
	Token string
	// HTTPClient overrides the transport; nil gets a default client.
	HTTPClient *http.Client
}

// NewClient creates a client for the codex service.
func NewClient(params NewClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		token:      params.Token,
		httpClient: httpClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// do issues one request and decodes the envelope payload into out. A
// transport failure, non-2xx status, or success=false all come back as a
// *RequestError; out is untouched on failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return &RequestError{Op: op, Status: res.StatusCode, Err: fmt.Errorf("malformed envelope: %w", err)}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 || !env.Success {
		return &RequestError{Op: op, Status: res.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &RequestError{Op: op, Status: res.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

// ListProjects returns the projects visible to the caller.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Project is a writing project owning one codex.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, name, description string) (Project, error) {
	body := map[string]string{"name": name, "description": description}
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects", body, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// DeleteProject deletes a project and its entire codex.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+projectID, nil, nil)
}

// ListEntities returns every codex entity of a project in insertion order.
func (c *Client) ListEntities(ctx context.Context, projectID string) ([]codex.Entity, error) {
	var entities []codex.Entity
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/codex", nil, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// CreateEntityParams describes a new codex entity.
type CreateEntityParams struct {
	Type        codex.EntityType `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
}

// CreateEntity creates a codex entity with an empty attribute set.
func (c *Client) CreateEntity(ctx context.Context, projectID string, params CreateEntityParams) (codex.Entity, error) {
	var entity codex.Entity
	if err := c.do(ctx, http.MethodPost, "/projects/"+projectID+"/codex", params, &entity); err != nil {
		return codex.Entity{}, err
	}
	return entity, nil
}

// GetEntity fetches a single entity.
func (c *Client) GetEntity(ctx context.Context, entityID string) (codex.Entity, error) {
	var entity codex.Entity
	if err := c.do(ctx, http.MethodGet, "/codex/"+entityID, nil, &entity); err != nil {
		return codex.Entity{}, err
	}
	return entity, nil
}

// UpdateEntity replaces an entity's record with the given one. The write
// is last-write-wins: no version check is made against intervening edits.
func (c *Client) UpdateEntity(ctx context.Context, entity codex.Entity) (codex.Entity, error) {
	var updated codex.Entity
	if err := c.do(ctx, http.MethodPut, "/codex/"+entity.ID, entity, &updated); err != nil {
		return codex.Entity{}, err
	}
	return updated, nil
}

// DeleteEntity deletes an entity. The service deletes every relationship
// referencing it in the same operation.
func (c *Client) DeleteEntity(ctx context.Context, entityID string) error {
	return c.do(ctx, http.MethodDelete, "/codex/"+entityID, nil, nil)
}

// EntityRelationships returns every edge touching an entity, tagged with
// the direction relative to it.
func (c *Client) EntityRelationships(ctx context.Context, entityID string) ([]codex.EntityRelationship, error) {
	var rels []codex.EntityRelationship
	if err := c.do(ctx, http.MethodGet, "/codex/"+entityID+"/relationships", nil, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

// ListRelationships returns every relationship of a project.
func (c *Client) ListRelationships(ctx context.Context, projectID string) ([]codex.Relationship, error) {
	var rels []codex.Relationship
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/relationships", nil, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

// CreateRelationshipParams is the wire form of one relationship-creation
// request. When CreateInverse is set the service creates the inverse edge
// in the same transaction.
type CreateRelationshipParams struct {
	SourceID      string `json:"sourceId"`
	TargetID      string `json:"targetId"`
	Type          string `json:"type"`
	Description   string `json:"description,omitempty"`
	CreateInverse bool   `json:"createInverse"`
	InverseType   string `json:"inverseType,omitempty"`
}

// CreatedRelationships is the service's answer to a creation request. The
// inverse is present only when the request asked for one.
type CreatedRelationships struct {
	Relationship        codex.Relationship  `json:"relationship"`
	InverseRelationship *codex.Relationship `json:"inverseRelationship,omitempty"`
}

// CreateRelationship creates one edge, or two when CreateInverse is set.
func (c *Client) CreateRelationship(ctx context.Context, projectID string, params CreateRelationshipParams) (CreatedRelationships, error) {
	var created CreatedRelationships
	if err := c.do(ctx, http.MethodPost, "/projects/"+projectID+"/relationships", params, &created); err != nil {
		return CreatedRelationships{}, err
	}
	return created, nil
}

// DeleteRelationship deletes exactly one edge. A paired inverse edge, if
// any, is untouched.
func (c *Client) DeleteRelationship(ctx context.Context, relationshipID string) error {
	return c.do(ctx, http.MethodDelete, "/relationships/"+relationshipID, nil, nil)
}

// GetNetwork fetches the denormalized network view of a project.
func (c *Client) GetNetwork(ctx context.Context, projectID string) (codex.Network, error) {
	var network codex.Network
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/relationships/network", nil, &network); err != nil {
		return codex.Network{}, err
	}
	return network, nil
}
