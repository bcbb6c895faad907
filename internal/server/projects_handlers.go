package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
)

func handleProjectList(c *gin.Context) {
	projects, err := data.ListProjects()
	if err != nil {
		log.Printf("failed to list projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": projects})
}

func handleProjectCreate(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := data.CreateProject(req)
	if err != nil {
		respondStoreError(c, err, "project")
		return
	}

	c.JSON(http.StatusCreated, p)
}

func handleProjectGet(c *gin.Context) {
	p, err := data.GetProject(c.Param("project"))
	if err != nil {
		respondStoreError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, p)
}

func handleProjectUpdate(c *gin.Context) {
	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	p, err := data.UpdateProject(c.Param("project"), req)
	if err != nil {
		respondStoreError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, p)
}

func handleProjectDelete(c *gin.Context) {
	if err := data.DeleteProject(c.Param("project")); err != nil {
		respondStoreError(c, err, "project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
