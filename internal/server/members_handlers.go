package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
)

func handleMemberList(c *gin.Context) {
	members, err := data.ListMembers()
	if err != nil {
		log.Printf("failed to list members: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": members})
}

func handleMemberCreate(c *gin.Context) {
	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	m, err := data.CreateMember(req)
	if err != nil {
		respondStoreError(c, err, "member")
		return
	}

	c.JSON(http.StatusCreated, m)
}

func handleMemberGet(c *gin.Context) {
	m, err := data.GetMember(c.Param("member"))
	if err != nil {
		respondStoreError(c, err, "member")
		return
	}

	c.JSON(http.StatusOK, m)
}

func handleMemberUpdate(c *gin.Context) {
	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	m, err := data.UpdateMember(c.Param("member"), req)
	if err != nil {
		respondStoreError(c, err, "member")
		return
	}

	c.JSON(http.StatusOK, m)
}

func handleMemberDelete(c *gin.Context) {
	if err := data.DeleteMember(c.Param("member")); err != nil {
		respondStoreError(c, err, "member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleMemberActivity(c *gin.Context) {
	activity, err := data.MemberActivity(c.Param("member"))
	if err != nil {
		respondStoreError(c, err, "member")
		return
	}

	c.JSON(http.StatusOK, activity)
}

func handleScheduledList(c *gin.Context) {
	items, err := data.ListScheduled()
	if err != nil {
		log.Printf("failed to list scheduled tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func handleScheduledCreate(c *gin.Context) {
	var req models.CreateScheduledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	st, err := data.CreateScheduled(req)
	if err != nil {
		respondStoreError(c, err, "scheduled task")
		return
	}

	c.JSON(http.StatusCreated, st)
}

func handleScheduledUpdate(c *gin.Context) {
	var req models.UpdateScheduledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	st, err := data.UpdateScheduled(c.Param("task"), req)
	if err != nil {
		respondStoreError(c, err, "scheduled task")
		return
	}

	c.JSON(http.StatusOK, st)
}

func handleScheduledDelete(c *gin.Context) {
	if err := data.DeleteScheduled(c.Param("task")); err != nil {
		respondStoreError(c, err, "scheduled task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
