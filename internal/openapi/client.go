package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"ticktick-cli/internal/logging"
	"ticktick-cli/internal/model"
)

// DefaultBaseURL is the documented Open API base.
const DefaultBaseURL = "https://api.ticktick.com/open/v1"

// Client issues bearer-token-authenticated requests against the official
// TickTick Open API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new Open API client for the given access token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("access token cannot be empty")
	}

	c := &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     logging.WithInterface(slog.Default(), logging.InterfaceOpen),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do performs a single request/response exchange. A non-2xx response is
// returned as *APIError carrying the raw body; an empty 2xx body leaves
// out untouched.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("request", logging.Operation(op), logging.Endpoint(path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("request failed", logging.Operation(op), logging.Status(resp.StatusCode))
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// GetTask retrieves a single task.
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*model.Task, error) {
	path := fmt.Sprintf("/project/%s/task/%s", url.PathEscape(projectID), url.PathEscape(taskID))
	var task model.Task
	if err := c.do(ctx, "get task", http.MethodGet, path, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTaskRaw retrieves a single task as an undecoded JSON object. Callers
// that get-merge-post use this so backend fields the Task struct does not
// declare survive the round trip.
func (c *Client) GetTaskRaw(ctx context.Context, projectID, taskID string) (map[string]any, error) {
	path := fmt.Sprintf("/project/%s/task/%s", url.PathEscape(projectID), url.PathEscape(taskID))
	raw := map[string]any{}
	if err := c.do(ctx, "get task", http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CreateTask creates a task. The returned task carries the backend-assigned id.
func (c *Client) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	var created model.Task
	if err := c.do(ctx, "create task", http.MethodPost, "/task", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask submits a complete task representation as a raw JSON object.
// The backend treats the submitted task as authoritative: fields absent
// from it are erased on the remote record, so callers must send the full
// object as fetched (see GetTaskRaw), not a typed delta.
func (c *Client) UpdateTask(ctx context.Context, taskID string, task map[string]any) (*model.Task, error) {
	path := "/task/" + url.PathEscape(taskID)
	var updated model.Task
	if err := c.do(ctx, "update task", http.MethodPost, path, task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) error {
	path := fmt.Sprintf("/project/%s/task/%s/complete", url.PathEscape(projectID), url.PathEscape(taskID))
	return c.do(ctx, "complete task", http.MethodPost, path, nil, nil)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	path := fmt.Sprintf("/project/%s/task/%s", url.PathEscape(projectID), url.PathEscape(taskID))
	return c.do(ctx, "delete task", http.MethodDelete, path, nil, nil)
}

// ListProjects lists all projects.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, "list projects", http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject retrieves a single project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	path := "/project/" + url.PathEscape(projectID)
	var project model.Project
	if err := c.do(ctx, "get project", http.MethodGet, path, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectData retrieves a project together with its tasks and columns.
func (c *Client) GetProjectData(ctx context.Context, projectID string) (*model.ProjectData, error) {
	path := "/project/" + url.PathEscape(projectID) + "/data"
	var data model.ProjectData
	if err := c.do(ctx, "get project data", http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	var created model.Project
	if err := c.do(ctx, "create project", http.MethodPost, "/project", project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject updates a project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, project *model.Project) (*model.Project, error) {
	path := "/project/" + url.PathEscape(projectID)
	var updated model.Project
	if err := c.do(ctx, "update project", http.MethodPost, path, project, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	path := "/project/" + url.PathEscape(projectID)
	return c.do(ctx, "delete project", http.MethodDelete, path, nil, nil)
}
