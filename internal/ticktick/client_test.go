package ticktick

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ticktick-cli/internal/config"
	"ticktick-cli/internal/model"
	"ticktick-cli/internal/openapi"
	"ticktick-cli/internal/webapi"
)

func newOpenClient(t *testing.T, handler http.HandlerFunc) *openapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := openapi.NewClient("test-token", openapi.WithBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// newWebClient serves login requests itself and hands everything else to
// the given handler.
func newWebClient(t *testing.T, handler http.HandlerFunc) *webapi.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/user/sign") {
			json.NewEncoder(w).Encode(map[string]string{"token": "session-xyz"})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	client, err := webapi.NewClient("user@example.com", "secret", webapi.WithBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestNewWithoutCredentials(t *testing.T) {
	// Must fail before any network access; there is no server to talk to.
	_, err := New(&config.Config{})
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("err = %v, want ErrNoCredentials", err)
	}
}

func TestNewWithClientsRequiresOne(t *testing.T) {
	if _, err := NewWithClients(nil, nil); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("err = %v, want ErrNoCredentials", err)
	}
}

func TestCapabilityErrors(t *testing.T) {
	ctx := context.Background()

	openOnly, err := NewWithClients(newOpenClient(t, func(w http.ResponseWriter, r *http.Request) {}), nil)
	if err != nil {
		t.Fatal(err)
	}
	webOnly, err := NewWithClients(nil, newWebClient(t, func(w http.ResponseWriter, r *http.Request) {}))
	if err != nil {
		t.Fatal(err)
	}

	var capErr *CapabilityError

	if _, err := openOnly.SearchTasks(ctx, "report"); !errors.As(err, &capErr) {
		t.Errorf("search without web interface: err = %v", err)
	} else if capErr.Need != NeedWeb {
		t.Errorf("need = %q, want %q", capErr.Need, NeedWeb)
	}

	if _, err := webOnly.GetTask(ctx, "p1", "t1"); !errors.As(err, &capErr) {
		t.Errorf("get task without open interface: err = %v", err)
	} else if capErr.Need != NeedOpen {
		t.Errorf("need = %q, want %q", capErr.Need, NeedOpen)
	}

	if _, err := webOnly.CreateTask(ctx, &model.Task{Title: "x"}); !errors.As(err, &capErr) {
		t.Errorf("create task without open interface: err = %v", err)
	}
	if err := webOnly.DeleteProject(ctx, "p1"); !errors.As(err, &capErr) {
		t.Errorf("delete project without open interface: err = %v", err)
	}
	if _, err := openOnly.ListTags(ctx); !errors.As(err, &capErr) {
		t.Errorf("tags without web interface: err = %v", err)
	}
	if _, err := openOnly.UploadAttachment(ctx, "p1", "t1", "f"); !errors.As(err, &capErr) {
		t.Errorf("upload without web interface: err = %v", err)
	}
}

func TestListProjectsFallsBackToSync(t *testing.T) {
	web := newWebClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch/check/0" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.SyncSnapshot{
			ProjectProfiles: []model.Project{{ID: "p1", Name: "Work"}, {ID: "p2", Name: "Home"}},
		})
	})
	client, err := NewWithClients(nil, web)
	if err != nil {
		t.Fatal(err)
	}

	projects, err := client.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 || projects[0].Name != "Work" {
		t.Errorf("projects = %+v", projects)
	}
}

func TestListTasksUnscopedSkipsFailingProjects(t *testing.T) {
	open := newOpenClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project":
			json.NewEncoder(w).Encode([]model.Project{{ID: "p1"}, {ID: "p2"}})
		case "/project/p1/data":
			json.NewEncoder(w).Encode(model.ProjectData{
				Tasks: []model.Task{{ID: "t1", ProjectID: "p1"}, {ID: "t2", ProjectID: "p1"}},
			})
		case "/project/p2/data":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	})
	client, err := NewWithClients(open, nil)
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := client.ListTasks(context.Background(), "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want exactly the 2 from the healthy project", len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID != "p1" {
			t.Errorf("task %q from project %q", task.ID, task.ProjectID)
		}
	}
}

func TestListTasksScopedPrefersOpen(t *testing.T) {
	open := newOpenClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/p1/data" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.ProjectData{Tasks: []model.Task{{ID: "t1"}}})
	})
	web := newWebClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("web interface should not be used for a scoped listing when open is available")
	})
	client, err := NewWithClients(open, web)
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := client.ListTasks(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestListTasksScopedViaSyncFilters(t *testing.T) {
	web := newWebClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SyncSnapshot{
			SyncTaskBean: model.SyncTaskBean{Update: []model.Task{
				{ID: "t1", ProjectID: "p1"},
				{ID: "t2", ProjectID: "p2"},
				{ID: "t3", ProjectID: "p1"},
			}},
		})
	})
	client, err := NewWithClients(nil, web)
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := client.ListTasks(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
}

// A partial update must never erase fields the caller did not touch: the
// backend treats the submitted task as authoritative, so the merged record
// has to carry everything the remote one had, including fields the Task
// struct does not declare (parent, kanban column, recurrence exclusions).
func TestUpdateTaskMergePreservesFields(t *testing.T) {
	var submitted map[string]any
	open := newOpenClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/project/p1/task/t1":
			w.Write([]byte(`{
				"id": "t1",
				"projectId": "p1",
				"title": "old title",
				"content": "important notes",
				"priority": 5,
				"dueDate": "2026-03-01T09:00:00+0800",
				"attachments": [{"id": "a1", "fileName": "contract.pdf"}],
				"items": [{"title": "sign", "status": 0}],
				"parentId": "parent-1",
				"columnId": "col-9",
				"exDate": ["2026-03-08T09:00:00+0800"],
				"progress": 40
			}`))
		case r.Method == http.MethodPost && r.URL.Path == "/task/t1":
			if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
				t.Fatalf("decode submitted task: %v", err)
			}
			json.NewEncoder(w).Encode(submitted)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	client, err := NewWithClients(open, nil)
	if err != nil {
		t.Fatal(err)
	}

	title := "new title"
	updated, err := client.UpdateTask(context.Background(), "p1", "t1", model.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if submitted["title"] != "new title" {
		t.Errorf("submitted title = %v", submitted["title"])
	}
	if submitted["content"] != "important notes" {
		t.Errorf("content erased: %v", submitted["content"])
	}
	if submitted["priority"] != float64(model.PriorityHigh) {
		t.Errorf("priority erased: %v", submitted["priority"])
	}
	if submitted["dueDate"] != "2026-03-01T09:00:00+0800" {
		t.Errorf("due date erased: %v", submitted["dueDate"])
	}
	if atts, ok := submitted["attachments"].([]any); !ok || len(atts) != 1 {
		t.Errorf("attachments erased: %v", submitted["attachments"])
	}
	if submitted["parentId"] != "parent-1" {
		t.Errorf("parentId erased: %v", submitted["parentId"])
	}
	if submitted["columnId"] != "col-9" {
		t.Errorf("columnId erased: %v", submitted["columnId"])
	}
	if _, ok := submitted["exDate"]; !ok {
		t.Error("exDate erased")
	}
	if submitted["progress"] != float64(40) {
		t.Errorf("progress erased: %v", submitted["progress"])
	}
	if updated.Title != "new title" {
		t.Errorf("returned title = %v", updated.Title)
	}
}

func TestSearchTasks(t *testing.T) {
	web := newWebClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SyncSnapshot{
			SyncTaskBean: model.SyncTaskBean{Update: []model.Task{
				{ID: "t1", Title: "Weekly Report"},
				{ID: "t2", Content: "prepare REPORT slides"},
				{ID: "t3", Desc: "unrelated"},
				{ID: "t4", Desc: "report appendix"},
			}},
		})
	})
	client, err := NewWithClients(nil, web)
	if err != nil {
		t.Fatal(err)
	}

	matches, err := client.SearchTasks(context.Background(), "report")
	if err != nil {
		t.Fatalf("SearchTasks: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3: %+v", len(matches), matches)
	}
}

func TestCreateTagLowercasesName(t *testing.T) {
	var payload webapi.BatchTagRequest
	web := newWebClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch/tag" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{}`))
	})
	client, err := NewWithClients(nil, web)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.CreateTag(context.Background(), "Deep Work", "#57A8FF", "Focus")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if len(payload.Add) != 1 {
		t.Fatalf("add = %+v", payload.Add)
	}
	tag := payload.Add[0]
	if tag.Name != "deep work" {
		t.Errorf("name = %q, want lowercased", tag.Name)
	}
	if tag.Label != "Deep Work" {
		t.Errorf("label = %q, want verbatim", tag.Label)
	}
	if tag.Parent != "focus" {
		t.Errorf("parent = %q, want lowercased", tag.Parent)
	}
	if tag.SortType != "project" {
		t.Errorf("sortType = %q", tag.SortType)
	}
}

func TestListTags(t *testing.T) {
	web := newWebClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SyncSnapshot{
			Tags: []model.Tag{{Name: "work", Label: "Work"}},
		})
	})
	client, err := NewWithClients(nil, web)
	if err != nil {
		t.Fatal(err)
	}

	tags, err := client.ListTags(context.Background())
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "work" {
		t.Errorf("tags = %+v", tags)
	}
}
