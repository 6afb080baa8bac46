package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ticktick-cli/internal/model"
)

// loginHandler answers /user/signon with a session token and CSRF cookie,
// then delegates everything else to next.
func loginHandler(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/user/signon") || strings.HasPrefix(r.URL.Path, "/user/signin") {
			http.SetCookie(w, &http.Cookie{Name: "_csrf_token", Value: "csrf-abc"})
			json.NewEncoder(w).Encode(map[string]string{"token": "session-xyz", "inboxId": "inbox-1"})
			return
		}
		if next != nil {
			next(w, r)
			return
		}
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("user@example.com", "secret",
		WithBaseURL(server.URL), WithAttachmentBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient("", "p"); err == nil {
		t.Error("NewClient without username should fail")
	}
	if _, err := NewClient("u", ""); err == nil {
		t.Error("NewClient without password should fail")
	}
}

func TestDeviceIDFormat(t *testing.T) {
	client, err := NewClient("u", "p")
	if err != nil {
		t.Fatal(err)
	}
	id := client.deviceID
	if len(id) != 24 {
		t.Fatalf("device id length = %d, want 24: %q", len(id), id)
	}
	if !strings.HasPrefix(id, "65a0") {
		t.Errorf("device id prefix = %q", id[:4])
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("device id contains non-hex rune %q", r)
		}
	}

	// The identity is per-client, not per-call
	if client.deviceID != id {
		t.Error("device id changed between reads")
	}
	other, _ := NewClient("u", "p")
	if other.deviceID == id {
		t.Error("two clients generated the same device id")
	}
}

func TestXDeviceHeader(t *testing.T) {
	client, _ := NewClient("u", "p")

	var payload map[string]any
	if err := json.Unmarshal([]byte(client.xDevice()), &payload); err != nil {
		t.Fatalf("x-device is not valid JSON: %v", err)
	}
	if payload["platform"] != "web" {
		t.Errorf("platform = %v", payload["platform"])
	}
	if payload["id"] != client.deviceID {
		t.Errorf("id = %v, want %v", payload["id"], client.deviceID)
	}
	if payload["channel"] != "website" {
		t.Errorf("channel = %v", payload["channel"])
	}
	// Empty fields must still be present in the descriptor
	for _, key := range []string{"name", "campaign", "websocket"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("x-device missing %q field", key)
		}
	}
}

func TestLoginSuccess(t *testing.T) {
	var loginPath, query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		loginPath = r.URL.Path
		query = r.URL.RawQuery
		http.SetCookie(w, &http.Cookie{Name: "_csrf_token", Value: "csrf-abc"})
		json.NewEncoder(w).Encode(map[string]string{"token": "session-xyz", "inboxId": "inbox-1"})
	})

	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginPath != "/user/signon" {
		t.Errorf("first endpoint = %q, want /user/signon", loginPath)
	}
	if !strings.Contains(query, "wc=true") || !strings.Contains(query, "remember=true") {
		t.Errorf("query = %q", query)
	}
	if client.sessionToken != "session-xyz" {
		t.Errorf("session token = %q", client.sessionToken)
	}
	if client.csrfToken != "csrf-abc" {
		t.Errorf("csrf token = %q", client.csrfToken)
	}
	if client.InboxID() != "inbox-1" {
		t.Errorf("inbox id = %q", client.InboxID())
	}
}

func TestLoginFallsBackToSecondEndpoint(t *testing.T) {
	var attempts []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts = append(attempts, r.URL.Path)
		if r.URL.Path == "/user/signon" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "session-2"})
	})

	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	want := []string{"/user/signon", "/user/signin"}
	if len(attempts) != 2 || attempts[0] != want[0] || attempts[1] != want[1] {
		t.Errorf("attempts = %v, want %v", attempts, want)
	}
	if client.sessionToken != "session-2" {
		t.Errorf("session token = %q", client.sessionToken)
	}
}

func TestLoginAllEndpointsFail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorCode":"bad_password"}`))
	})

	err := client.Login(context.Background())
	if err == nil {
		t.Fatal("expected login failure")
	}

	var loginErr *LoginError
	if !errors.As(err, &loginErr) {
		t.Fatalf("expected *LoginError, got %T: %v", err, err)
	}
	// The aggregated failure references the last attempted endpoint's error
	var apiErr *APIError
	if !errors.As(loginErr.Err, &apiErr) {
		t.Fatalf("wrapped error = %T: %v", loginErr.Err, loginErr.Err)
	}
	if apiErr.Op != "login /user/signin" {
		t.Errorf("op = %q, want the last endpoint", apiErr.Op)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestLoginIsIdempotent(t *testing.T) {
	logins := 0
	client := newTestClient(t, loginHandler(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SyncSnapshot{})
	}))
	client.httpClient = &http.Client{Transport: countingTransport{inner: http.DefaultTransport, logins: &logins}}

	ctx := context.Background()
	if _, err := client.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, err := client.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if logins != 1 {
		t.Errorf("login requests = %d, want 1", logins)
	}
}

type countingTransport struct {
	inner  http.RoundTripper
	logins *int
}

func (t countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if strings.Contains(r.URL.Path, "/user/sign") {
		*t.logins++
	}
	return t.inner.RoundTrip(r)
}

func TestSyncSendsSessionAndFingerprint(t *testing.T) {
	var syncReq *http.Request
	client := newTestClient(t, loginHandler(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch/check/0" {
			t.Errorf("sync path = %q", r.URL.Path)
		}
		clone := *r
		syncReq = &clone
		json.NewEncoder(w).Encode(model.SyncSnapshot{
			InboxID: "inbox-1",
			Tags:    []model.Tag{{Name: "work", Label: "Work"}},
			SyncTaskBean: model.SyncTaskBean{
				Update: []model.Task{{ID: "t1", Title: "standup"}},
			},
		})
	}))

	snapshot, err := client.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if snapshot.InboxID != "inbox-1" || len(snapshot.SyncTaskBean.Update) != 1 {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}

	if got := syncReq.Header.Get("Cookie"); got != "t=session-xyz" {
		t.Errorf("cookie = %q", got)
	}
	if got := syncReq.Header.Get("User-Agent"); !strings.Contains(got, "Chrome/131.0.0.0") {
		t.Errorf("user-agent = %q", got)
	}
	if got := syncReq.Header.Get("x-device"); !strings.Contains(got, client.deviceID) {
		t.Errorf("x-device = %q does not carry device id", got)
	}
	if got := syncReq.Header.Get("X-Requested-With"); got != "XMLHttpRequest" {
		t.Errorf("x-requested-with = %q", got)
	}
}

func TestCompletedTasks(t *testing.T) {
	var gotPath, gotLimit string
	client := newTestClient(t, loginHandler(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode([]model.Task{{ID: "t9", Status: model.StatusCompleted}})
	}))

	tasks, err := client.CompletedTasks(context.Background(), "p1", 25)
	if err != nil {
		t.Fatalf("CompletedTasks: %v", err)
	}
	if gotPath != "/project/p1/completed" {
		t.Errorf("path = %q", gotPath)
	}
	if gotLimit != "25" {
		t.Errorf("limit = %q", gotLimit)
	}
	if len(tasks) != 1 || tasks[0].Status != model.StatusCompleted {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestCompletedTasksAllProjects(t *testing.T) {
	var gotPath string
	client := newTestClient(t, loginHandler(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]model.Task{})
	}))

	if _, err := client.CompletedTasks(context.Background(), "", 50); err != nil {
		t.Fatalf("CompletedTasks: %v", err)
	}
	if gotPath != "/project/all/completed" {
		t.Errorf("path = %q, want the all-projects completed path", gotPath)
	}
}

func TestBatchTag(t *testing.T) {
	var payload BatchTagRequest
	client := newTestClient(t, loginHandler(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch/tag" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"id2etag":{}}`))
	}))

	_, err := client.BatchTag(context.Background(), BatchTagRequest{
		Add: []model.Tag{{Name: "errands", Label: "Errands", SortType: "project"}},
	})
	if err != nil {
		t.Fatalf("BatchTag: %v", err)
	}
	if len(payload.Add) != 1 || payload.Add[0].Name != "errands" {
		t.Errorf("payload = %+v", payload)
	}
}
