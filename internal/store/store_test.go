package store

import (
	"os"
	"testing"

	"missionctl/internal/models"
)

func writeRaw(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func projectReq(name string) models.CreateProjectRequest {
	return models.CreateProjectRequest{Name: name, Color: "#123456"}
}

func taskReq(title, status string) models.CreateTaskRequest {
	return models.CreateTaskRequest{Title: title, Status: status}
}

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func intptr(n int) *int { return &n }

// orders maps task id to order for one status column.
func orders(t *testing.T, s *Store, project, status string) map[string]int {
	t.Helper()
	tasks, err := s.ListTasks(project)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	out := map[string]int{}
	for _, task := range tasks {
		if task.Status == status {
			out[task.ID] = task.Order
		}
	}
	return out
}

// requireDense fails unless the column's order values are exactly 0..n-1.
func requireDense(t *testing.T, got map[string]int) {
	t.Helper()
	seen := make([]bool, len(got))
	for id, ord := range got {
		if ord < 0 || ord >= len(got) {
			t.Fatalf("task %s has order %d outside [0,%d)", id, ord, len(got))
		}
		if seen[ord] {
			t.Fatalf("duplicate order %d in column", ord)
		}
		seen[ord] = true
	}
}
