package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
)

// taskFrontmatter is the YAML metadata block of a task markdown file. The
// body of the file is the task description. assignedDeveloperId is the
// legacy spelling and is upcast on read.
type taskFrontmatter struct {
	ID                        string                  `yaml:"id"`
	ProjectID                 string                  `yaml:"projectId"`
	Title                     string                  `yaml:"title"`
	Status                    string                  `yaml:"status"`
	Recurring                 bool                    `yaml:"recurring"`
	Priority                  string                  `yaml:"priority"`
	AssignedMemberID          string                  `yaml:"assignedMemberId,omitempty"`
	LegacyAssignedDeveloperID string                  `yaml:"assignedDeveloperId,omitempty"`
	Order                     int                     `yaml:"order"`
	Attachments               []models.TaskAttachment `yaml:"attachments,omitempty"`
	Comments                  []models.TaskComment    `yaml:"comments,omitempty"`
	LinkedDocumentIDs         []string                `yaml:"linkedDocumentIds,omitempty"`
	CreatedAt                 time.Time               `yaml:"createdAt"`
	UpdatedAt                 time.Time               `yaml:"updatedAt"`
	CompletedAt               *time.Time              `yaml:"completedAt,omitempty"`
}

func (s *Store) tasksDir(slug string) string {
	return filepath.Join(s.projectDir(slug), "tasks")
}

func (s *Store) taskPath(slug, taskID string) string {
	return filepath.Join(s.tasksDir(slug), taskID+".md")
}

func (s *Store) readTaskFile(path string) (models.Task, error) {
	var fm taskFrontmatter
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Task{}, err
	}
	body, err := unmarshalFrontmatter(data, &fm)
	if err != nil {
		return models.Task{}, err
	}

	assigned := fm.AssignedMemberID
	if assigned == "" {
		assigned = fm.LegacyAssignedDeveloperID
	}
	t := models.Task{
		ID:                fm.ID,
		ProjectID:         fm.ProjectID,
		Title:             fm.Title,
		Description:       body,
		Status:            fm.Status,
		Recurring:         fm.Recurring,
		Priority:          fm.Priority,
		AssignedMemberID:  assigned,
		Order:             fm.Order,
		Attachments:       fm.Attachments,
		Comments:          fm.Comments,
		LinkedDocumentIDs: fm.LinkedDocumentIDs,
		CreatedAt:         fm.CreatedAt,
		UpdatedAt:         fm.UpdatedAt,
		CompletedAt:       fm.CompletedAt,
	}
	if t.Attachments == nil {
		t.Attachments = []models.TaskAttachment{}
	}
	if t.Comments == nil {
		t.Comments = []models.TaskComment{}
	}
	return t, nil
}

func (s *Store) writeTask(slug string, t models.Task) error {
	fm := taskFrontmatter{
		ID:                t.ID,
		ProjectID:         t.ProjectID,
		Title:             t.Title,
		Status:            t.Status,
		Recurring:         t.Recurring,
		Priority:          t.Priority,
		AssignedMemberID:  t.AssignedMemberID,
		Order:             t.Order,
		Attachments:       t.Attachments,
		Comments:          t.Comments,
		LinkedDocumentIDs: t.LinkedDocumentIDs,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		CompletedAt:       t.CompletedAt,
	}
	data, err := marshalFrontmatter(fm, t.Description)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.tasksDir(slug), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.taskPath(slug, t.ID), data, 0o644)
}

// ListTasks returns every task of a project, ordered by board column then by
// position within the column.
func (s *Store) ListTasks(projectIDOrSlug string) ([]models.Task, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	return s.loadTasks(p.Slug)
}

func (s *Store) loadTasks(slug string) ([]models.Task, error) {
	entries, err := os.ReadDir(s.tasksDir(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Task{}, nil
		}
		return nil, err
	}

	out := make([]models.Task, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		t, err := s.readTaskFile(filepath.Join(s.tasksDir(slug), e.Name()))
		if err != nil {
			log.Printf("failed to read task file %s: %v", e.Name(), err)
			continue
		}
		out = append(out, t)
	}

	statusRank := make(map[string]int, 5)
	for i, st := range models.Statuses() {
		statusRank[st] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return statusRank[out[i].Status] < statusRank[out[j].Status]
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

func (s *Store) GetTask(projectIDOrSlug, taskID string) (*models.Task, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	t, err := s.readTaskFile(s.taskPath(p.Slug, taskID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateTask(projectIDOrSlug string, req models.CreateTaskRequest) (*models.Task, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	if req.Recurring != nil && *req.Recurring {
		status = models.StatusRecurring
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	tasks, err := s.loadTasks(p.Slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := models.Task{
		ID:               uuid.NewString(),
		ProjectID:        p.ID,
		Title:            req.Title,
		Description:      req.Description,
		Status:           status,
		Recurring:        status == models.StatusRecurring,
		Priority:         priority,
		AssignedMemberID: req.AssignedMemberID,
		Order:            len(partition(tasks, status)),
		Attachments:      []models.TaskAttachment{},
		Comments:         []models.TaskComment{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if status == models.StatusDone {
		t.CompletedAt = &now
	}

	if err := s.writeTask(p.Slug, t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpdateTask(projectIDOrSlug, taskID string, req models.UpdateTaskRequest) (*models.Task, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return nil, err
	}

	prevStatus := t.Status

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.AssignedMemberID != nil {
		t.AssignedMemberID = *req.AssignedMemberID
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	// recurring and status stay coupled in both directions
	t.Recurring = t.Status == models.StatusRecurring
	if req.Recurring != nil {
		if *req.Recurring {
			t.Status = models.StatusRecurring
			t.Recurring = true
		} else if t.Status == models.StatusRecurring {
			t.Status = models.StatusTodo
			t.Recurring = false
		}
	}

	now := time.Now().UTC()
	if t.Status == models.StatusDone && prevStatus != models.StatusDone && t.CompletedAt == nil {
		t.CompletedAt = &now
	}
	t.UpdatedAt = now

	tasks, err := s.loadTasks(p.Slug)
	if err != nil {
		return nil, err
	}

	if t.Status != prevStatus {
		// append to the destination column, collapse the gap in the source
		t.Order = len(partition(tasks, t.Status))
		if err := s.renumber(p.Slug, tasks, prevStatus, t.ID); err != nil {
			return nil, err
		}
	} else if req.Order != nil {
		if err := s.moveWithin(p.Slug, tasks, t, *req.Order); err != nil {
			return nil, err
		}
		moved, err := s.GetTask(p.Slug, t.ID)
		if err != nil {
			return nil, err
		}
		t.Order = moved.Order
	}

	if err := s.writeTask(p.Slug, *t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) DeleteTask(projectIDOrSlug, taskID string) error {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return err
	}

	if err := os.Remove(s.taskPath(p.Slug, taskID)); err != nil {
		return err
	}
	// uploaded blobs live under attachments/<taskID>/
	if err := os.RemoveAll(s.attachmentsDir(p.Slug, taskID)); err != nil {
		return err
	}

	tasks, err := s.loadTasks(p.Slug)
	if err != nil {
		return err
	}
	return s.renumber(p.Slug, tasks, t.Status, "")
}

// ReorderTasks bulk-sets order for a status column: taskIDs is the full column
// in its new display order. Tasks of the column missing from taskIDs keep
// their relative order after the listed ones.
func (s *Store) ReorderTasks(projectIDOrSlug, status string, taskIDs []string) ([]models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, validationf("unknown status %q", status)
	}
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	tasks, err := s.loadTasks(p.Slug)
	if err != nil {
		return nil, err
	}

	col := partition(tasks, status)
	byID := make(map[string]*models.Task, len(col))
	for i := range col {
		byID[col[i].ID] = &col[i]
	}

	ordered := make([]*models.Task, 0, len(col))
	seen := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		t, ok := byID[id]
		if !ok {
			return nil, validationf("task %s is not in the %s column", id, status)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, t)
	}
	for i := range col {
		if !seen[col[i].ID] {
			ordered = append(ordered, &col[i])
		}
	}

	now := time.Now().UTC()
	out := make([]models.Task, 0, len(ordered))
	for i, t := range ordered {
		if t.Order != i {
			t.Order = i
			t.UpdatedAt = now
			if err := s.writeTask(p.Slug, *t); err != nil {
				return nil, err
			}
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *Store) AddComment(projectIDOrSlug, taskID string, req models.CreateCommentRequest) (*models.Task, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t.Comments = append(t.Comments, models.TaskComment{
		ID:         uuid.NewString(),
		AuthorName: req.AuthorName,
		Content:    req.Content,
		CreatedAt:  now,
	})
	t.UpdatedAt = now

	if err := s.writeTask(p.Slug, *t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) DeleteComment(projectIDOrSlug, taskID, commentID string) (*models.Task, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return nil, err
	}

	kept := t.Comments[:0]
	found := false
	for _, cm := range t.Comments {
		if cm.ID == commentID {
			found = true
			continue
		}
		kept = append(kept, cm)
	}
	if !found {
		return nil, ErrNotFound
	}
	t.Comments = kept
	t.UpdatedAt = time.Now().UTC()

	if err := s.writeTask(p.Slug, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// partition filters one status column, sorted by order.
func partition(tasks []models.Task, status string) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// renumber rewrites a column's order values to 0..n-1, skipping excludeID
// (a task that just left or is being rewritten separately).
func (s *Store) renumber(slug string, tasks []models.Task, status, excludeID string) error {
	col := partition(tasks, status)
	i := 0
	for _, t := range col {
		if t.ID == excludeID {
			continue
		}
		if t.Order != i {
			t.Order = i
			if err := s.writeTask(slug, t); err != nil {
				return err
			}
		}
		i++
	}
	return nil
}

// moveWithin splices a task to a target index inside its own column and
// renumbers the column dense.
func (s *Store) moveWithin(slug string, tasks []models.Task, t *models.Task, target int) error {
	col := partition(tasks, t.Status)
	ids := make([]string, 0, len(col))
	for _, c := range col {
		if c.ID != t.ID {
			ids = append(ids, c.ID)
		}
	}
	if target < 0 {
		target = 0
	}
	if target > len(ids) {
		target = len(ids)
	}
	ids = append(ids[:target], append([]string{t.ID}, ids[target:]...)...)
	_, err := s.ReorderTasks(slug, t.Status, ids)
	return err
}
