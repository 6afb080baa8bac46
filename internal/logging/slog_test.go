package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithInterface(t *testing.T) {
	logger := slog.Default()
	result := WithInterface(logger, InterfaceWeb)
	if result == nil {
		t.Error("WithInterface returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("task.list")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "task.list" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "task.list")
	}
}

func TestInterfaceAttr(t *testing.T) {
	attr := Interface(InterfaceOpen)
	if attr.Key != KeyInterface {
		t.Errorf("Interface key = %q, want %q", attr.Key, KeyInterface)
	}
	if attr.Value.String() != "open" {
		t.Errorf("Interface value = %q, want %q", attr.Value.String(), "open")
	}
}

func TestProjectAttr(t *testing.T) {
	attr := Project("p-123")
	if attr.Key != KeyProject {
		t.Errorf("Project key = %q, want %q", attr.Key, KeyProject)
	}
	if attr.Value.String() != "p-123" {
		t.Errorf("Project value = %q, want %q", attr.Value.String(), "p-123")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("ticktick_create_task")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "ticktick_create_task" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "ticktick_create_task")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(404)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.Int64() != 404 {
		t.Errorf("Status value = %d, want 404", attr.Value.Int64())
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}
