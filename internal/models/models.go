package models

import "time"

// Task statuses double as kanban column identifiers.
const (
	StatusRecurring  = "recurring"
	StatusBacklog    = "backlog"
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Attachment provenance.
const (
	AttachmentSourceUpload = "upload"
	AttachmentSourceDocs   = "docs"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusRecurring, StatusBacklog, StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Statuses lists every kanban column in board display order.
func Statuses() []string {
	return []string{StatusRecurring, StatusBacklog, StatusTodo, StatusInProgress, StatusDone}
}

type Project struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	MemberIDs   []string  `json:"memberIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Task struct {
	ID                string           `json:"id"`
	ProjectID         string           `json:"projectId"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Status            string           `json:"status"`
	Recurring         bool             `json:"recurring"`
	Priority          string           `json:"priority"`
	AssignedMemberID  string           `json:"assignedMemberId,omitempty"`
	Order             int              `json:"order"`
	Attachments       []TaskAttachment `json:"attachments"`
	Comments          []TaskComment    `json:"comments"`
	LinkedDocumentIDs []string         `json:"linkedDocumentIds,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
	CompletedAt       *time.Time       `json:"completedAt,omitempty"`
}

// TaskAttachment carries either an uploaded blob (StorageName) or a link to a
// document (DocumentID), never both. Source tags which one.
type TaskAttachment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mimeType"`
	Source      string    `json:"source"`
	StorageName string    `json:"storageName,omitempty"`
	DocumentID  string    `json:"documentId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TaskComment struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Member struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color"`
	LLMModel    string   `json:"llmModel,omitempty"`
	SoulMD      string   `json:"soulMd,omitempty"`
	MemoryMD    string   `json:"memoryMd,omitempty"`
	ProjectIDs  []string `json:"projectIds"`
}

type Document struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	FolderID         *string   `json:"folderId"`
	LinkedTaskIDs    []string  `json:"linkedTaskIds"`
	LinkedProjectIDs []string  `json:"linkedProjectIds"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Folder struct {
	ID       string  `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
	Order    int     `json:"order"`
}

// ScheduledTask is a weekly-recurring slot on the schedule page. It has no
// date, only a weekday and a wall-clock time; it is unrelated to the kanban
// "recurring" status.
type ScheduledTask struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Time             string    `json:"time"`
	DayOfWeek        int       `json:"dayOfWeek"`
	Color            string    `json:"color"`
	AssignedMemberID string    `json:"assignedMemberId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type MemoryMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// DayConversation is one day of bot transcript, produced externally and
// read-only from this service's perspective.
type DayConversation struct {
	Date     string          `json:"date"`
	Messages []MemoryMessage `json:"messages"`
}

// MemoryHit is one matching message line from a per-token memory text search.
type MemoryHit struct {
	Date         string `json:"date"`
	MessageIndex int    `json:"messageIndex"`
	Role         string `json:"role"`
	Timestamp    string `json:"timestamp"`
	Content      string `json:"content"`
}

// ProjectTask pairs a task with the project it belongs to, for cross-project
// views (member activity, global search).
type ProjectTask struct {
	Task        Task   `json:"task"`
	ProjectSlug string `json:"projectSlug"`
	ProjectName string `json:"projectName"`
}

type MemberActivity struct {
	Tasks     []ProjectTask   `json:"tasks"`
	Scheduled []ScheduledTask `json:"scheduled"`
}
