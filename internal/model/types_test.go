package model

import "testing"

func TestFilterByStatus(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Title: "open one", Status: StatusOpen},
		{ID: "t2", Title: "done", Status: StatusCompleted},
		{ID: "t3", Title: "open two", Status: StatusOpen},
		{ID: "t4", Title: "odd backend status", Status: 1},
	}

	open := FilterByStatus(tasks, StatusOpen)
	if len(open) != 2 || open[0].ID != "t1" || open[1].ID != "t3" {
		t.Errorf("open filter = %+v", open)
	}

	completed := FilterByStatus(tasks, StatusCompleted)
	if len(completed) != 1 || completed[0].ID != "t2" {
		t.Errorf("completed filter = %+v", completed)
	}

	if none := FilterByStatus(nil, StatusOpen); len(none) != 0 {
		t.Errorf("nil input should filter to empty, got %+v", none)
	}
}
