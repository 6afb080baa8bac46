package model

// Task is a single task record as exchanged with both TickTick interfaces.
// Field names match the wire format; timestamps are passed through as the
// ISO-8601-like strings the backend uses (e.g. "2026-03-01T09:00:00+0800").
type Task struct {
	ID            string          `json:"id,omitempty"`
	ProjectID     string          `json:"projectId,omitempty"`
	Title         string          `json:"title,omitempty"`
	Content       string          `json:"content,omitempty"`
	Desc          string          `json:"desc,omitempty"`
	IsAllDay      bool            `json:"isAllDay,omitempty"`
	TimeZone      string          `json:"timeZone,omitempty"`
	Kind          string          `json:"kind,omitempty"`
	DueDate       string          `json:"dueDate,omitempty"`
	StartDate     string          `json:"startDate,omitempty"`
	CompletedTime string          `json:"completedTime,omitempty"`
	Priority      int             `json:"priority,omitempty"`
	Status        int             `json:"status,omitempty"`
	RepeatFlag    string          `json:"repeatFlag,omitempty"`
	Reminders     []string        `json:"reminders,omitempty"`
	Items         []ChecklistItem `json:"items,omitempty"`
	Attachments   []Attachment    `json:"attachments,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	SortOrder     int64           `json:"sortOrder,omitempty"`
	Etag          string          `json:"etag,omitempty"`
}

// TaskStatus values observed on the wire. The backend uses more, but only
// these two are filtered on.
const (
	StatusOpen      = 0
	StatusCompleted = 2
)

// FilterByStatus returns the tasks whose status equals want. Listings
// include every task the backend returns, so status selection happens
// client-side.
func FilterByStatus(tasks []Task, want int) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out
}

// ChecklistItem is a sub-item of a checklist task.
type ChecklistItem struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
}

// Attachment describes a file attached to a task. AttachmentURL is not a
// backend field; it is constructed client-side after an upload.
type Attachment struct {
	ID            string `json:"id,omitempty"`
	Path          string `json:"path,omitempty"`
	Size          int64  `json:"size,omitempty"`
	FileName      string `json:"fileName,omitempty"`
	FileType      string `json:"fileType,omitempty"`
	CreatedTime   string `json:"createdTime,omitempty"`
	Status        int    `json:"status,omitempty"`
	AttachmentURL string `json:"attachmentUrl,omitempty"`
}

// TaskPatch is a partial task update. Only non-nil fields are applied, so a
// patch can distinguish "leave unchanged" from "set to zero value".
type TaskPatch struct {
	Title     *string
	Content   *string
	Desc      *string
	Priority  *int
	DueDate   *string
	StartDate *string
}

// Apply overlays the patch's set fields onto a task decoded as a raw JSON
// object. Merging on the raw object rather than a typed Task keeps backend
// fields this package does not model (parent ids, kanban columns, recurrence
// exclusions) intact when the merged object is resubmitted.
func (p TaskPatch) Apply(raw map[string]any) {
	if p.Title != nil {
		raw["title"] = *p.Title
	}
	if p.Content != nil {
		raw["content"] = *p.Content
	}
	if p.Desc != nil {
		raw["desc"] = *p.Desc
	}
	if p.Priority != nil {
		raw["priority"] = *p.Priority
	}
	if p.DueDate != nil {
		raw["dueDate"] = *p.DueDate
	}
	if p.StartDate != nil {
		raw["startDate"] = *p.StartDate
	}
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Desc == nil &&
		p.Priority == nil && p.DueDate == nil && p.StartDate == nil
}

// Project is a task list (or note list) container.
type Project struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Color      string `json:"color,omitempty"`
	ViewMode   string `json:"viewMode,omitempty"`
	Kind       string `json:"kind,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
	SortOrder  int64  `json:"sortOrder,omitempty"`
	Closed     bool   `json:"closed,omitempty"`
	Permission string `json:"permission,omitempty"`
}

// ProjectData is the open interface's combined project view: the project
// itself, its tasks, and its kanban columns.
type ProjectData struct {
	Project Project  `json:"project"`
	Tasks   []Task   `json:"tasks"`
	Columns []Column `json:"columns,omitempty"`
}

// Column is a kanban column within a project.
type Column struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Name      string `json:"name,omitempty"`
	SortOrder int64  `json:"sortOrder,omitempty"`
}

// ProjectGroup is a folder of projects (internal interface only).
type ProjectGroup struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	SortOrder int64  `json:"sortOrder,omitempty"`
}

// Tag is identified by its lowercase Name; Label preserves the
// caller-supplied casing for display.
type Tag struct {
	Name      string `json:"name"`
	Label     string `json:"label,omitempty"`
	Color     string `json:"color,omitempty"`
	Parent    string `json:"parent,omitempty"`
	SortOrder int64  `json:"sortOrder,omitempty"`
	SortType  string `json:"sortType,omitempty"`
}

// SyncTaskBean carries the task portion of a sync snapshot. The backend
// reports current tasks under "update".
type SyncTaskBean struct {
	Update []Task `json:"update"`
	Add    []Task `json:"add,omitempty"`
}

// SyncSnapshot is the full-account dump returned by the internal
// interface's batch check endpoint. It is the data source for all derived
// views (search, tag listing, project fallback).
type SyncSnapshot struct {
	InboxID         string         `json:"inboxId,omitempty"`
	ProjectProfiles []Project      `json:"projectProfiles"`
	ProjectGroups   []ProjectGroup `json:"projectGroups,omitempty"`
	Tags            []Tag          `json:"tags"`
	SyncTaskBean    SyncTaskBean   `json:"syncTaskBean"`
}

// SyncSummary is the condensed form of a snapshot printed by default to
// keep output manageable.
type SyncSummary struct {
	InboxID        string `json:"inboxId"`
	Projects       int    `json:"projects"`
	ProjectFolders int    `json:"project_folders"`
	Tags           int    `json:"tags"`
	Tasks          int    `json:"tasks"`
}

// Summary condenses the snapshot to counts.
func (s *SyncSnapshot) Summary() SyncSummary {
	return SyncSummary{
		InboxID:        s.InboxID,
		Projects:       len(s.ProjectProfiles),
		ProjectFolders: len(s.ProjectGroups),
		Tags:           len(s.Tags),
		Tasks:          len(s.SyncTaskBean.Update),
	}
}
