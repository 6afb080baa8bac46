package ticktick

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"ticktick-cli/internal/config"
	"ticktick-cli/internal/logging"
	"ticktick-cli/internal/model"
	"ticktick-cli/internal/openapi"
	"ticktick-cli/internal/webapi"
)

// Client is the unified TickTick client. It holds at most one client per
// backend interface and decides, per operation, which one to use: the
// official open interface when it can serve the operation, the internal
// web interface for everything the open one cannot do.
type Client struct {
	open   *openapi.Client
	web    *webapi.Client
	logger *slog.Logger
}

// New constructs the unified client from whichever credentials the config
// carries. It fails with ErrNoCredentials when neither set is present and
// performs no network access; the web session is established lazily on
// first use.
func New(cfg *config.Config) (*Client, error) {
	var open *openapi.Client
	var web *webapi.Client

	if cfg.HasOpenAPI() {
		c, err := openapi.NewClient(cfg.AccessToken)
		if err != nil {
			return nil, err
		}
		open = c
	}
	if cfg.HasWebAPI() {
		c, err := webapi.NewClient(cfg.Username, cfg.Password)
		if err != nil {
			return nil, err
		}
		web = c
	}

	return NewWithClients(open, web)
}

// NewWithClients builds the unified client from pre-constructed backend
// clients. Either may be nil, but not both.
func NewWithClients(open *openapi.Client, web *webapi.Client) (*Client, error) {
	if open == nil && web == nil {
		return nil, ErrNoCredentials
	}
	return &Client{
		open:   open,
		web:    web,
		logger: slog.Default(),
	}, nil
}

func (c *Client) requireOpen(op string) error {
	if c.open == nil {
		return &CapabilityError{Op: op, Need: NeedOpen}
	}
	return nil
}

func (c *Client) requireWeb(op string) error {
	if c.web == nil {
		return &CapabilityError{Op: op, Need: NeedWeb}
	}
	return nil
}

// ListProjects lists all projects, preferring the open interface and
// falling back to the projects carried by a web sync snapshot.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	if c.open != nil {
		return c.open.ListProjects(ctx)
	}
	snapshot, err := c.web.Sync(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.ProjectProfiles, nil
}

// GetProject retrieves a single project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	if err := c.requireOpen("get project"); err != nil {
		return nil, err
	}
	return c.open.GetProject(ctx, projectID)
}

// GetProjectData retrieves a project with its tasks and columns.
func (c *Client) GetProjectData(ctx context.Context, projectID string) (*model.ProjectData, error) {
	if err := c.requireOpen("get project data"); err != nil {
		return nil, err
	}
	return c.open.GetProjectData(ctx, projectID)
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	if err := c.requireOpen("create project"); err != nil {
		return nil, err
	}
	return c.open.CreateProject(ctx, project)
}

// UpdateProject updates a project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, project *model.Project) (*model.Project, error) {
	if err := c.requireOpen("update project"); err != nil {
		return nil, err
	}
	return c.open.UpdateProject(ctx, projectID, project)
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if err := c.requireOpen("delete project"); err != nil {
		return err
	}
	return c.open.DeleteProject(ctx, projectID)
}

// ListTasks lists tasks, scoped to a project when projectID is non-empty.
//
// A scoped listing uses the open interface's project data when available.
// Otherwise the web sync snapshot serves both scoped and unscoped
// listings. The last resort — unscoped with only the open interface —
// enumerates every project and concatenates the task lists, skipping any
// project whose fetch fails rather than aborting the whole listing.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	if projectID != "" && c.open != nil {
		data, err := c.open.GetProjectData(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return data.Tasks, nil
	}

	if c.web != nil {
		snapshot, err := c.web.Sync(ctx)
		if err != nil {
			return nil, err
		}
		tasks := snapshot.SyncTaskBean.Update
		if projectID != "" {
			filtered := make([]model.Task, 0, len(tasks))
			for _, t := range tasks {
				if t.ProjectID == projectID {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		return tasks, nil
	}

	projects, err := c.open.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	var all []model.Task
	for _, p := range projects {
		data, err := c.open.GetProjectData(ctx, p.ID)
		if err != nil {
			c.logger.Debug("skipping project in task listing",
				logging.Project(p.ID), logging.Err(err))
			continue
		}
		all = append(all, data.Tasks...)
	}
	return all, nil
}

// GetTask retrieves a single task.
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*model.Task, error) {
	if err := c.requireOpen("get task"); err != nil {
		return nil, err
	}
	return c.open.GetTask(ctx, projectID, taskID)
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	if err := c.requireOpen("create task"); err != nil {
		return nil, err
	}
	return c.open.CreateTask(ctx, task)
}

// UpdateTask applies a partial update. The backend's update endpoint
// treats the submitted task as authoritative and erases whatever it
// omits, so the complete current task is fetched first as a raw JSON
// object, the patch overlaid on top (patch fields win), and the merged
// object resubmitted. Merging on the raw object means fields the patch
// does not touch survive unchanged even when the Task struct does not
// declare them.
func (c *Client) UpdateTask(ctx context.Context, projectID, taskID string, patch model.TaskPatch) (*model.Task, error) {
	if err := c.requireOpen("update task"); err != nil {
		return nil, err
	}

	existing, err := c.open.GetTaskRaw(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	patch.Apply(existing)
	existing["id"] = taskID
	existing["projectId"] = projectID

	return c.open.UpdateTask(ctx, taskID, existing)
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) error {
	if err := c.requireOpen("complete task"); err != nil {
		return err
	}
	return c.open.CompleteTask(ctx, projectID, taskID)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if err := c.requireOpen("delete task"); err != nil {
		return err
	}
	return c.open.DeleteTask(ctx, projectID, taskID)
}

// SearchTasks performs a case-insensitive substring search over task
// titles, contents and descriptions. The backend offers no search
// endpoint, so the full sync snapshot is fetched and filtered client-side.
func (c *Client) SearchTasks(ctx context.Context, query string) ([]model.Task, error) {
	if err := c.requireWeb("search"); err != nil {
		return nil, err
	}
	snapshot, err := c.web.Sync(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]model.Task, 0)
	for _, t := range snapshot.SyncTaskBean.Update {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Content), q) ||
			strings.Contains(strings.ToLower(t.Desc), q) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// CompletedTasks lists completed tasks, across all projects when
// projectID is empty.
func (c *Client) CompletedTasks(ctx context.Context, projectID string, limit int) ([]model.Task, error) {
	if err := c.requireWeb("completed"); err != nil {
		return nil, err
	}
	return c.web.CompletedTasks(ctx, projectID, limit)
}

// ListTags lists all tags, extracted from a sync snapshot.
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	if err := c.requireWeb("tags"); err != nil {
		return nil, err
	}
	snapshot, err := c.web.Sync(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Tags, nil
}

// CreateTag creates a tag. The tag's internal name is always lowercased —
// that is its identity on the backend — while the display label keeps the
// caller's casing. A parent tag name is lowercased the same way.
func (c *Client) CreateTag(ctx context.Context, name, color, parent string) (json.RawMessage, error) {
	if err := c.requireWeb("tag create"); err != nil {
		return nil, err
	}

	tag := model.Tag{
		Name:     strings.ToLower(name),
		Label:    name,
		Color:    color,
		SortType: "project",
	}
	if parent != "" {
		tag.Parent = strings.ToLower(parent)
	}

	return c.web.BatchTag(ctx, webapi.BatchTagRequest{Add: []model.Tag{tag}})
}

// Sync retrieves the full account snapshot.
func (c *Client) Sync(ctx context.Context) (*model.SyncSnapshot, error) {
	if err := c.requireWeb("sync"); err != nil {
		return nil, err
	}
	return c.web.Sync(ctx)
}

// UploadAttachment uploads a local file to a task.
func (c *Client) UploadAttachment(ctx context.Context, projectID, taskID, filePath string) (*model.Attachment, error) {
	if err := c.requireWeb("attachment upload"); err != nil {
		return nil, err
	}
	return c.web.UploadAttachment(ctx, projectID, taskID, filePath)
}

// UserProfile retrieves the account profile.
func (c *Client) UserProfile(ctx context.Context) (json.RawMessage, error) {
	if err := c.requireWeb("user profile"); err != nil {
		return nil, err
	}
	return c.web.UserProfile(ctx)
}

// UserSettings retrieves the account preference settings.
func (c *Client) UserSettings(ctx context.Context) (json.RawMessage, error) {
	if err := c.requireWeb("user settings"); err != nil {
		return nil, err
	}
	return c.web.UserSettings(ctx)
}
