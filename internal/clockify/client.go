// Package clockify is a minimal read-only client for the Clockify REST API
// (v1). It supplies the reconciliation engine with a time entry feed and a
// project name lookup; it never writes anything back.
package clockify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/solks/sprintrec/internal/entry"
)

// DefaultBaseURL is the public Clockify API endpoint.
const DefaultBaseURL = "https://api.clockify.me/api/v1"

// pageSize is the number of records requested per page on paginated
// endpoints.
const pageSize = 200

var (
	// ErrWorkspaceNotFound indicates that no workspace matched the
	// configured workspace name.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrUserNotFound indicates that no workspace user matched the
	// configured user name.
	ErrUserNotFound = errors.New("user not found")
)

// Client talks to the Clockify API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and self-hosted
// installations).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// New creates a Client authenticated with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workspace is a Clockify workspace.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a member of a workspace.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// project is the wire shape of a Clockify project.
type project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

// timeEntry is the wire shape of a Clockify time entry.
type timeEntry struct {
	ID           string       `json:"id"`
	Description  string       `json:"description"`
	ProjectID    string       `json:"projectId"`
	TimeInterval timeInterval `json:"timeInterval"`
}

// timeInterval carries the entry's start instant and raw duration encoding.
// Duration is null while the timer is running.
type timeInterval struct {
	Start    time.Time `json:"start"`
	Duration *string   `json:"duration"`
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request to %s returned status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// Workspaces lists all workspaces visible to the API key.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var workspaces []Workspace
	if err := c.get(ctx, "/workspaces", nil, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// FindWorkspace returns the workspace matching name. An empty name selects
// the last workspace in the listing, mirroring the behavior users rely on
// when they only belong to one workspace.
func (c *Client) FindWorkspace(ctx context.Context, name string) (Workspace, error) {
	workspaces, err := c.Workspaces(ctx)
	if err != nil {
		return Workspace{}, err
	}

	var found *Workspace
	for i := range workspaces {
		if workspaces[i].Name == name || name == "" {
			found = &workspaces[i]
		}
	}
	if found == nil {
		return Workspace{}, fmt.Errorf("%w: %q", ErrWorkspaceNotFound, name)
	}
	return *found, nil
}

// WorkspaceUsers lists the members of a workspace.
func (c *Client) WorkspaceUsers(ctx context.Context, workspaceID string) ([]User, error) {
	var users []User
	path := "/workspaces/" + workspaceID + "/users"
	if err := c.get(ctx, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindUser returns the workspace user matching name. An empty name selects
// the last user in the listing.
func (c *Client) FindUser(ctx context.Context, workspaceID, name string) (User, error) {
	users, err := c.WorkspaceUsers(ctx, workspaceID)
	if err != nil {
		return User{}, err
	}

	var found *User
	for i := range users {
		if users[i].Name == name || name == "" {
			found = &users[i]
		}
	}
	if found == nil {
		return User{}, fmt.Errorf("%w: %q", ErrUserNotFound, name)
	}
	return *found, nil
}

// Projects returns the display names of all non-archived projects in the
// workspace, keyed by project identifier.
func (c *Client) Projects(ctx context.Context, workspaceID string) (entry.ProjectLookup, error) {
	lookup := entry.ProjectLookup{}
	path := "/workspaces/" + workspaceID + "/projects"

	for page := 1; ; page++ {
		var projects []project
		if err := c.get(ctx, path, pageQuery(page), &projects); err != nil {
			return nil, err
		}
		for _, p := range projects {
			if !p.Archived {
				lookup[p.ID] = p.Name
			}
		}
		if len(projects) < pageSize {
			return lookup, nil
		}
	}
}

// TimeEntries returns all time entries logged by the user in the workspace.
// The API is known to repeat entries across pages; callers must deduplicate
// by entry identifier.
func (c *Client) TimeEntries(ctx context.Context, workspaceID, userID string) ([]entry.Entry, error) {
	var entries []entry.Entry
	path := "/workspaces/" + workspaceID + "/user/" + userID + "/time-entries"

	for page := 1; ; page++ {
		var raw []timeEntry
		if err := c.get(ctx, path, pageQuery(page), &raw); err != nil {
			return nil, err
		}
		for _, te := range raw {
			entries = append(entries, entry.Entry{
				ID:          te.ID,
				Start:       te.TimeInterval.Start,
				Duration:    te.TimeInterval.Duration,
				ProjectID:   te.ProjectID,
				Description: te.Description,
			})
		}
		if len(raw) < pageSize {
			return entries, nil
		}
	}
}

func pageQuery(page int) url.Values {
	return url.Values{
		"page":      {strconv.Itoa(page)},
		"page-size": {strconv.Itoa(pageSize)},
	}
}
