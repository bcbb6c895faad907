package models

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes "field absent" from "field set to null" in a
// partial update, which plain pointers cannot. Needed for nullable parent
// references (folder parent, document folder).
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=120"`
	Description string   `json:"description" binding:"max=2000"`
	Color       string   `json:"color" binding:"max=32"`
	MemberIDs   []string `json:"memberIds"`
}

type UpdateProjectRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Color       *string   `json:"color" binding:"omitempty,max=32"`
	MemberIDs   *[]string `json:"memberIds"`
}

type CreateTaskRequest struct {
	Title            string `json:"title" binding:"required,min=1,max=200"`
	Description      string `json:"description" binding:"max=20000"`
	Status           string `json:"status" binding:"omitempty,oneof=recurring backlog todo in_progress done"`
	Priority         string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedMemberID string `json:"assignedMemberId"`
	Recurring        *bool  `json:"recurring"`
}

type UpdateTaskRequest struct {
	Title            *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description      *string `json:"description" binding:"omitempty,max=20000"`
	Status           *string `json:"status" binding:"omitempty,oneof=recurring backlog todo in_progress done"`
	Priority         *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedMemberID *string `json:"assignedMemberId"`
	Recurring        *bool   `json:"recurring"`
	Order            *int    `json:"order" binding:"omitempty,gte=0"`
}

// ReorderTasksRequest is the bulk-reorder PATCH body. TaskIDs holds the full
// destination column in its new display order.
type ReorderTasksRequest struct {
	Reorder bool     `json:"reorder" binding:"required"`
	Status  string   `json:"status" binding:"required,oneof=recurring backlog todo in_progress done"`
	TaskIDs []string `json:"taskIds" binding:"required"`
}

type CreateCommentRequest struct {
	AuthorName string `json:"authorName" binding:"required,min=1,max=120"`
	Content    string `json:"content" binding:"required,min=1,max=4000"`
}

type LinkDocumentsRequest struct {
	DocumentIDs []string `json:"documentIds" binding:"required,min=1"`
}

type CreateDocumentRequest struct {
	Title            string   `json:"title" binding:"required,min=1,max=200"`
	Content          string   `json:"content"`
	FolderID         *string  `json:"folderId"`
	LinkedTaskIDs    []string `json:"linkedTaskIds"`
	LinkedProjectIDs []string `json:"linkedProjectIds"`
}

type UpdateDocumentRequest struct {
	Title            *string        `json:"title" binding:"omitempty,min=1,max=200"`
	Content          *string        `json:"content"`
	FolderID         OptionalString `json:"folderId"`
	LinkedTaskIDs    *[]string      `json:"linkedTaskIds"`
	LinkedProjectIDs *[]string      `json:"linkedProjectIds"`
}

type CreateFolderRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=120"`
	ParentID *string `json:"parentId"`
}

type UpdateFolderRequest struct {
	Name     *string        `json:"name" binding:"omitempty,min=1,max=120"`
	ParentID OptionalString `json:"parentId"`
	Order    *int           `json:"order" binding:"omitempty,gte=0"`
}

type CreateMemberRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=120"`
	Role        string   `json:"role" binding:"max=120"`
	Description string   `json:"description" binding:"max=2000"`
	Color       string   `json:"color" binding:"max=32"`
	LLMModel    string   `json:"llmModel" binding:"max=120"`
	ProjectIDs  []string `json:"projectIds"`
}

type UpdateMemberRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=120"`
	Role        *string   `json:"role" binding:"omitempty,max=120"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Color       *string   `json:"color" binding:"omitempty,max=32"`
	LLMModel    *string   `json:"llmModel" binding:"omitempty,max=120"`
	SoulMD      *string   `json:"soulMd"`
	MemoryMD    *string   `json:"memoryMd"`
	ProjectIDs  *[]string `json:"projectIds"`
}

type CreateScheduledRequest struct {
	Title            string `json:"title" binding:"required,min=1,max=200"`
	Description      string `json:"description" binding:"max=2000"`
	Time             string `json:"time" binding:"required"`
	DayOfWeek        int    `json:"dayOfWeek" binding:"min=0,max=6"`
	Color            string `json:"color" binding:"max=32"`
	AssignedMemberID string `json:"assignedMemberId"`
}

type UpdateScheduledRequest struct {
	Title            *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description      *string `json:"description" binding:"omitempty,max=2000"`
	Time             *string `json:"time"`
	DayOfWeek        *int    `json:"dayOfWeek" binding:"omitempty,min=0,max=6"`
	Color            *string `json:"color" binding:"omitempty,max=32"`
	AssignedMemberID *string `json:"assignedMemberId"`
}

type FavoriteRequest struct {
	Date string `json:"date" binding:"required"`
}
