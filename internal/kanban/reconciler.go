// Package kanban implements the drag-and-drop reconciler for the task board
// as a pure state machine: each drag-lifecycle event maps an immutable task
// snapshot to the next one, and a completed drop additionally yields the
// persistence plan (status update + full-column reorder) the caller should
// fire. No I/O happens here; on any persistence failure the caller refetches
// the whole project and discards the optimistic state.
package kanban

import (
	"sort"

	"missionctl/internal/models"
)

// State is one in-flight drag gesture over a project's task list. The zero
// value is idle. Exactly one gesture is active at a time.
type State struct {
	// Tasks is the optimistic task list, updated as the gesture progresses.
	Tasks []models.Task
	// DraggingID is the task being dragged, empty when idle.
	DraggingID string

	origin       []models.Task
	originStatus string
}

// Plan is the persistence side of a completed drop: one status update for the
// dragged task and one bulk order rewrite for the destination column. Both
// calls are idempotent.
type Plan struct {
	TaskID        string
	Status        string
	Recurring     bool
	ReorderStatus string
	ReorderIDs    []string
}

type targetKind int

const (
	targetNone targetKind = iota
	targetColumn
	targetTask
)

// Start captures the dragged task and enters the dragging state. An unknown
// task id leaves the state idle.
func Start(tasks []models.Task, taskID string) State {
	s := State{Tasks: cloneTasks(tasks)}
	for _, t := range tasks {
		if t.ID == taskID {
			s.DraggingID = taskID
			s.originStatus = t.Status
			s.origin = cloneTasks(tasks)
			break
		}
	}
	return s
}

// Over previews a hover target: crossing into a different column (directly or
// by hovering one of its tasks) optimistically reassigns the dragged task's
// status. Order is untouched until the drop.
func (s State) Over(targetID string) State {
	if s.DraggingID == "" {
		return s
	}
	kind, status, _ := s.resolveTarget(targetID)
	if kind == targetNone {
		return s
	}

	next := State{
		Tasks:        cloneTasks(s.Tasks),
		DraggingID:   s.DraggingID,
		origin:       s.origin,
		originStatus: s.originStatus,
	}
	dragged := next.task(s.DraggingID)
	if dragged.Status != status {
		dragged.Status = status
		dragged.Recurring = status == models.StatusRecurring
	}
	return next
}

// End terminates the gesture. An empty target abandons it and restores the
// pre-gesture snapshot with no persistence. A resolved target produces the
// final optimistic list plus the persistence plan: column drops append the
// dragged task at the end of the column, task drops splice it in at the slot
// the hovered task held before the dragged one was removed, so a downward
// move within a column lands after the target. The destination column is
// renumbered dense and zero-based; the source column's gap is collapsed.
func (s State) End(targetID string) (State, *Plan) {
	if s.DraggingID == "" {
		return s, nil
	}
	if targetID == "" {
		return State{Tasks: s.origin}, nil
	}
	kind, status, overTask := s.resolveTarget(targetID)
	if kind == targetNone {
		return State{Tasks: s.origin}, nil
	}

	next := State{Tasks: cloneTasks(s.Tasks)}
	dragged := next.task(s.DraggingID)
	dragged.Status = status
	dragged.Recurring = status == models.StatusRecurring

	// destination column in display order, without the dragged task
	ids := []string{}
	for _, t := range columnOf(next.Tasks, status) {
		if t.ID != s.DraggingID {
			ids = append(ids, t.ID)
		}
	}

	switch kind {
	case targetColumn:
		ids = append(ids, s.DraggingID)
	case targetTask:
		// within a column the insertion index is the target's position in the
		// pre-removal order, clamped after the dragged task drops out
		at := len(ids)
		if s.originStatus == status {
			for i, t := range columnOf(next.Tasks, status) {
				if t.ID == overTask {
					at = i
					break
				}
			}
			if at > len(ids) {
				at = len(ids)
			}
		} else {
			for i, id := range ids {
				if id == overTask {
					at = i
					break
				}
			}
		}
		ids = append(ids[:at], append([]string{s.DraggingID}, ids[at:]...)...)
	}

	for i, id := range ids {
		next.task(id).Order = i
	}
	if s.originStatus != status {
		for i, t := range columnOf(next.Tasks, s.originStatus) {
			next.task(t.ID).Order = i
		}
	}

	return next, &Plan{
		TaskID:        s.DraggingID,
		Status:        status,
		Recurring:     status == models.StatusRecurring,
		ReorderStatus: status,
		ReorderIDs:    ids,
	}
}

// resolveTarget decides whether a hover/drop target id names a column or a
// task, and which status that implies.
func (s State) resolveTarget(targetID string) (targetKind, string, string) {
	if models.ValidStatus(targetID) {
		return targetColumn, targetID, ""
	}
	for _, t := range s.Tasks {
		if t.ID == targetID {
			return targetTask, t.Status, t.ID
		}
	}
	return targetNone, "", ""
}

func (s *State) task(id string) *models.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

func columnOf(tasks []models.Task, status string) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
