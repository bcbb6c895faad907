package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"missionctl/internal/models"
)

func handleTaskList(c *gin.Context) {
	tasks, err := data.ListTasks(c.Param("project"))
	if err != nil {
		respondStoreError(c, err, "project")
		return
	}

	payload := gin.H{"items": tasks}
	if status := c.Query("status"); status != "" {
		filtered := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		payload["items"] = filtered
		payload["status"] = status
	}

	c.JSON(http.StatusOK, payload)
}

func handleTaskCreate(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	t, err := data.CreateTask(c.Param("project"), req)
	if err != nil {
		respondStoreError(c, err, "task")
		return
	}

	c.JSON(http.StatusCreated, t)
}

func handleTaskGet(c *gin.Context) {
	t, err := data.GetTask(c.Param("project"), c.Param("task"))
	if err != nil {
		respondStoreError(c, err, "task")
		return
	}

	c.JSON(http.StatusOK, t)
}

func handleTaskUpdate(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	t, err := data.UpdateTask(c.Param("project"), c.Param("task"), req)
	if err != nil {
		respondStoreError(c, err, "task")
		return
	}

	c.JSON(http.StatusOK, t)
}

func handleTaskDelete(c *gin.Context) {
	if err := data.DeleteTask(c.Param("project"), c.Param("task")); err != nil {
		respondStoreError(c, err, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleTaskReorder is the bulk-order PATCH a completed drag fires: the full
// destination column in its new display order.
func handleTaskReorder(c *gin.Context) {
	var req models.ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Reorder {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	tasks, err := data.ReorderTasks(c.Param("project"), req.Status, req.TaskIDs)
	if err != nil {
		respondStoreError(c, err, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": tasks, "status": req.Status})
}

func handleCommentCreate(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	t, err := data.AddComment(c.Param("project"), c.Param("task"), req)
	if err != nil {
		respondStoreError(c, err, "task")
		return
	}

	c.JSON(http.StatusCreated, t)
}

func handleCommentDelete(c *gin.Context) {
	t, err := data.DeleteComment(c.Param("project"), c.Param("task"), c.Param("comment"))
	if err != nil {
		respondStoreError(c, err, "comment")
		return
	}

	c.JSON(http.StatusOK, t)
}
