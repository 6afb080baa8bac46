package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"ticktick-cli/internal/logging"
	"ticktick-cli/internal/model"
)

const (
	// DefaultBaseURL is the web client's API base. Undocumented; observed
	// from the vendor's own web client.
	DefaultBaseURL = "https://api.ticktick.com/api/v2"

	// DefaultAttachmentBaseURL hosts the attachment upload endpoint, which
	// lives on a different path version than the rest of the interface.
	DefaultAttachmentBaseURL = "https://api.ticktick.com"

	// DefaultOrigin is the web origin presented in the browser fingerprint
	// and used to construct attachment access URLs.
	DefaultOrigin = "https://ticktick.com"
)

// Client issues session-authenticated requests against the internal
// TickTick web API, emulating the vendor's own web client.
//
// Session state (session token, CSRF token, inbox id) is written once by
// Login and read for the remainder of the process; it is never persisted.
type Client struct {
	username string
	password string

	// deviceID is generated once at construction so the whole process
	// presents a single device identity.
	deviceID string

	sessionToken string
	csrfToken    string
	inboxID      string

	baseURL           string
	attachmentBaseURL string
	origin            string
	httpClient        *http.Client
	logger            *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithAttachmentBaseURL overrides the attachment endpoint base. Used by tests.
func WithAttachmentBaseURL(u string) Option {
	return func(c *Client) { c.attachmentBaseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new web API client. No network access happens until
// the first operation; Login is called lazily.
func NewClient(username, password string, opts ...Option) (*Client, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password cannot be empty")
	}

	c := &Client{
		username:          username,
		password:          password,
		deviceID:          newDeviceID(),
		baseURL:           DefaultBaseURL,
		attachmentBaseURL: DefaultAttachmentBaseURL,
		origin:            DefaultOrigin,
		httpClient:        http.DefaultClient,
		logger:            logging.WithInterface(slog.Default(), logging.InterfaceWeb),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// InboxID returns the account's inbox project id. Empty until Login.
func (c *Client) InboxID() string {
	return c.inboxID
}

// loginEndpoints are tried in order. The backend has accepted either name
// depending on its version; there is no documented way to know which, so
// both are kept.
var loginEndpoints = []string{"/user/signon", "/user/signin"}

type loginResponse struct {
	Token   string `json:"token"`
	InboxID string `json:"inboxId"`
}

// Login establishes the session. It tries each known login endpoint in
// order until one succeeds, extracting the session token from the response
// body and the CSRF token from the response cookies. Calling Login with a
// live session is a no-op.
func (c *Client) Login(ctx context.Context) error {
	if c.sessionToken != "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return fmt.Errorf("failed to encode login request: %w", err)
	}

	var lastErr error
	for _, endpoint := range loginEndpoints {
		u := c.baseURL + endpoint + "?wc=true&remember=true"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to build login request: %w", err)
		}
		c.setHeaders(req, "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("login %s: %w", endpoint, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("login %s: %w", endpoint, readErr)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			lastErr = &APIError{Op: "login " + endpoint, StatusCode: resp.StatusCode, Body: string(body)}
			c.logger.Debug("login endpoint failed",
				logging.Endpoint(endpoint), logging.Status(resp.StatusCode))
			continue
		}

		for _, cookie := range resp.Cookies() {
			if cookie.Name == "_csrf_token" {
				c.csrfToken = cookie.Value
			}
		}

		var result loginResponse
		if err := json.Unmarshal(body, &result); err != nil {
			lastErr = fmt.Errorf("login %s: failed to decode response: %w", endpoint, err)
			continue
		}
		if result.Token == "" {
			lastErr = fmt.Errorf("login %s: response carried no session token", endpoint)
			continue
		}

		c.sessionToken = result.Token
		c.inboxID = result.InboxID
		c.logger.Debug("session established",
			logging.Endpoint(endpoint),
			slog.String("session", logging.SanitizeToken(c.sessionToken)))
		return nil
	}

	return &LoginError{Err: lastErr}
}

// do performs a session-authenticated exchange. Login is ensured first.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	if err := c.Login(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	c.setHeaders(req, "application/json")

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

// Sync retrieves the entire account snapshot in one call: all tasks,
// projects, tags and folders. Derived views (search, tag listing, project
// fallback) filter this snapshot client-side.
func (c *Client) Sync(ctx context.Context) (*model.SyncSnapshot, error) {
	var snapshot model.SyncSnapshot
	if err := c.do(ctx, "sync", http.MethodGet, "/batch/check/0", nil, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// CompletedTasks lists completed tasks, newest first, up to limit. An
// empty projectID queries the "all projects" completed path.
func (c *Client) CompletedTasks(ctx context.Context, projectID string, limit int) ([]model.Task, error) {
	path := "/project/all/completed"
	if projectID != "" {
		path = "/project/" + url.PathEscape(projectID) + "/completed"
	}
	query := url.Values{
		"from":  {""},
		"to":    {""},
		"limit": {strconv.Itoa(limit)},
	}

	var tasks []model.Task
	if err := c.do(ctx, "completed tasks", http.MethodGet, path, query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// BatchTagRequest carries tag mutations for the batch tag endpoint.
type BatchTagRequest struct {
	Add    []model.Tag `json:"add,omitempty"`
	Update []model.Tag `json:"update,omitempty"`
	Delete []string    `json:"delete,omitempty"`
}

// BatchTag submits tag mutations. The response shape varies by backend
// version, so it is returned verbatim.
func (c *Client) BatchTag(ctx context.Context, req BatchTagRequest) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.do(ctx, "batch tag", http.MethodPost, "/batch/tag", nil, req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UserProfile retrieves the account's basic profile.
func (c *Client) UserProfile(ctx context.Context) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.do(ctx, "user profile", http.MethodGet, "/user/profile", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UserSettings retrieves the account's preference settings, including the
// account time zone.
func (c *Client) UserSettings(ctx context.Context) (json.RawMessage, error) {
	query := url.Values{"includeWeb": {"true"}}
	var result json.RawMessage
	if err := c.do(ctx, "user settings", http.MethodGet, "/user/preferences/settings", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
