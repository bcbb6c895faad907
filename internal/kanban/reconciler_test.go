package kanban

import (
	"testing"

	"missionctl/internal/models"
)

func boardTask(id, status string, order int) models.Task {
	return models.Task{ID: id, Title: id, Status: status, Order: order}
}

func findTask(t *testing.T, s State, id string) models.Task {
	t.Helper()
	for _, task := range s.Tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s missing from state", id)
	return models.Task{}
}

func TestDropOnColumnAppendsAndCollapsesSource(t *testing.T) {
	tasks := []models.Task{
		boardTask("A", models.StatusTodo, 0),
		boardTask("B", models.StatusTodo, 1),
		boardTask("C", models.StatusInProgress, 0),
	}

	s := Start(tasks, "A")
	s = s.Over(models.StatusInProgress)
	if findTask(t, s, "A").Status != models.StatusInProgress {
		t.Fatalf("hover must preview the destination status")
	}

	final, plan := s.End(models.StatusInProgress)
	if plan == nil {
		t.Fatalf("completed drop must yield a plan")
	}

	a := findTask(t, final, "A")
	if a.Status != models.StatusInProgress || a.Order != 1 {
		t.Fatalf("dragged task must append to the column: %+v", a)
	}
	if c := findTask(t, final, "C"); c.Order != 0 {
		t.Fatalf("existing occupant keeps its slot, got order %d", c.Order)
	}
	if b := findTask(t, final, "B"); b.Status != models.StatusTodo || b.Order != 0 {
		t.Fatalf("source column gap must collapse: %+v", b)
	}

	if plan.TaskID != "A" || plan.Status != models.StatusInProgress || plan.Recurring {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if plan.ReorderStatus != models.StatusInProgress {
		t.Fatalf("plan must rewrite the destination column, got %q", plan.ReorderStatus)
	}
	if len(plan.ReorderIDs) != 2 || plan.ReorderIDs[0] != "C" || plan.ReorderIDs[1] != "A" {
		t.Fatalf("expected reorder [C A], got %v", plan.ReorderIDs)
	}
}

func TestDropOnEmptyColumn(t *testing.T) {
	tasks := []models.Task{
		boardTask("A", models.StatusTodo, 0),
		boardTask("B", models.StatusTodo, 1),
	}

	s := Start(tasks, "B")
	final, plan := s.End(models.StatusDone)

	b := findTask(t, final, "B")
	if b.Status != models.StatusDone || b.Order != 0 {
		t.Fatalf("first task in an empty column starts at 0: %+v", b)
	}
	if a := findTask(t, final, "A"); a.Order != 0 {
		t.Fatalf("untouched column must not shift, got order %d", a.Order)
	}
	if len(plan.ReorderIDs) != 1 || plan.ReorderIDs[0] != "B" {
		t.Fatalf("expected reorder [B], got %v", plan.ReorderIDs)
	}
}

func TestDropOnTaskSplicesAtItsPosition(t *testing.T) {
	tasks := []models.Task{
		boardTask("A", models.StatusTodo, 0),
		boardTask("X", models.StatusInProgress, 0),
		boardTask("Y", models.StatusInProgress, 1),
		boardTask("Z", models.StatusInProgress, 2),
	}

	s := Start(tasks, "A")
	final, plan := s.End("Y")

	want := []string{"X", "A", "Y", "Z"}
	if len(plan.ReorderIDs) != len(want) {
		t.Fatalf("expected reorder %v, got %v", want, plan.ReorderIDs)
	}
	for i, id := range want {
		if plan.ReorderIDs[i] != id {
			t.Fatalf("expected reorder %v, got %v", want, plan.ReorderIDs)
		}
		if got := findTask(t, final, id); got.Order != i {
			t.Fatalf("task %s expected order %d, got %d", id, i, got.Order)
		}
	}
}

func TestReorderWithinColumn(t *testing.T) {
	tasks := []models.Task{
		boardTask("A", models.StatusTodo, 0),
		boardTask("B", models.StatusTodo, 1),
		boardTask("C", models.StatusTodo, 2),
	}

	s := Start(tasks, "C")
	final, plan := s.End("A")

	want := []string{"C", "A", "B"}
	for i, id := range want {
		if got := findTask(t, final, id); got.Order != i {
			t.Fatalf("task %s expected order %d, got %d", id, i, got.Order)
		}
	}
	if plan.Status != models.StatusTodo {
		t.Fatalf("same-column drop keeps the status, got %q", plan.Status)
	}
	if len(plan.ReorderIDs) != 3 || plan.ReorderIDs[0] != "C" {
		t.Fatalf("expected reorder %v, got %v", want, plan.ReorderIDs)
	}
}

func TestReorderWithinColumnDownward(t *testing.T) {
	tasks := []models.Task{
		boardTask("A", models.StatusTodo, 0),
		boardTask("B", models.StatusTodo, 1),
		boardTask("C", models.StatusTodo, 2),
	}

	s := Start(tasks, "A")
	final, plan := s.End("C")

	// A leaves slot 0, C's old slot is 2: A lands after C
	want := []string{"B", "C", "A"}
	for i, id := range want {
		if got := findTask(t, final, id); got.Order != i {
			t.Fatalf("task %s expected order %d, got %d", id, i, got.Order)
		}
	}
	if len(plan.ReorderIDs) != 3 {
		t.Fatalf("expected reorder %v, got %v", want, plan.ReorderIDs)
	}
	for i, id := range want {
		if plan.ReorderIDs[i] != id {
			t.Fatalf("expected reorder %v, got %v", want, plan.ReorderIDs)
		}
	}

	// one slot down: B's old slot is 1, A lands right after B
	s = Start(tasks, "A")
	final, _ = s.End("B")
	for i, id := range []string{"B", "A", "C"} {
		if got := findTask(t, final, id); got.Order != i {
			t.Fatalf("task %s expected order %d, got %d", id, i, got.Order)
		}
	}
}

func TestAbandonedGestureRestoresSnapshot(t *testing.T) {
	tasks := []models.Task{
		boardTask("A", models.StatusTodo, 0),
		boardTask("B", models.StatusInProgress, 0),
	}

	s := Start(tasks, "A")
	s = s.Over(models.StatusInProgress)

	// drop outside any target
	final, plan := s.End("")
	if plan != nil {
		t.Fatalf("abandoned gesture must not persist anything")
	}
	a := findTask(t, final, "A")
	if a.Status != models.StatusTodo || a.Order != 0 {
		t.Fatalf("abandoned gesture must restore the snapshot: %+v", a)
	}

	// drop on a target that no longer resolves
	s = Start(tasks, "A")
	final, plan = s.End("ghost")
	if plan != nil || findTask(t, final, "A").Status != models.StatusTodo {
		t.Fatalf("unresolvable target must behave like an abandoned gesture")
	}
}

func TestUnknownTaskLeavesStateIdle(t *testing.T) {
	tasks := []models.Task{boardTask("A", models.StatusTodo, 0)}

	s := Start(tasks, "ghost")
	if s.DraggingID != "" {
		t.Fatalf("unknown task must not start a gesture")
	}
	if next, plan := s.End(models.StatusDone); plan != nil || findTask(t, next, "A").Status != models.StatusTodo {
		t.Fatalf("idle state must ignore drop events")
	}
}

func TestRecurringFlagFollowsHover(t *testing.T) {
	tasks := []models.Task{
		boardTask("A", models.StatusTodo, 0),
		boardTask("R", models.StatusRecurring, 0),
	}
	tasks[1].Recurring = true

	s := Start(tasks, "A")
	s = s.Over(models.StatusRecurring)
	if got := findTask(t, s, "A"); !got.Recurring {
		t.Fatalf("entering the recurring column must set the flag")
	}
	s = s.Over(models.StatusTodo)
	if got := findTask(t, s, "A"); got.Recurring {
		t.Fatalf("leaving the recurring column must clear the flag")
	}

	final, plan := s.End(models.StatusRecurring)
	if !plan.Recurring || !findTask(t, final, "A").Recurring {
		t.Fatalf("dropping into recurring must persist the flag")
	}
}
