package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
)

func handleDocumentList(c *gin.Context) {
	docs, err := data.ListDocuments()
	if err != nil {
		log.Printf("failed to list documents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": docs})
}

func handleDocumentCreate(c *gin.Context) {
	var req models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	d, err := data.CreateDocument(req)
	if err != nil {
		respondStoreError(c, err, "folder")
		return
	}

	c.JSON(http.StatusCreated, d)
}

func handleDocumentGet(c *gin.Context) {
	d, err := data.GetDocument(c.Param("doc"))
	if err != nil {
		respondStoreError(c, err, "document")
		return
	}

	c.JSON(http.StatusOK, d)
}

func handleDocumentUpdate(c *gin.Context) {
	var req models.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	d, err := data.UpdateDocument(c.Param("doc"), req)
	if err != nil {
		respondStoreError(c, err, "document")
		return
	}

	c.JSON(http.StatusOK, d)
}

func handleDocumentDelete(c *gin.Context) {
	if err := data.DeleteDocument(c.Param("doc")); err != nil {
		respondStoreError(c, err, "document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleFolderList(c *gin.Context) {
	folders, err := data.ListFolders()
	if err != nil {
		log.Printf("failed to list folders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": folders})
}

func handleFolderCreate(c *gin.Context) {
	var req models.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	f, err := data.CreateFolder(req)
	if err != nil {
		respondStoreError(c, err, "folder")
		return
	}

	c.JSON(http.StatusCreated, f)
}

func handleFolderGet(c *gin.Context) {
	f, err := data.GetFolder(c.Param("folder"))
	if err != nil {
		respondStoreError(c, err, "folder")
		return
	}

	c.JSON(http.StatusOK, f)
}

func handleFolderUpdate(c *gin.Context) {
	var req models.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	f, err := data.UpdateFolder(c.Param("folder"), req)
	if err != nil {
		respondStoreError(c, err, "folder")
		return
	}

	c.JSON(http.StatusOK, f)
}

func handleFolderDelete(c *gin.Context) {
	if err := data.DeleteFolder(c.Param("folder")); err != nil {
		respondStoreError(c, err, "folder")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
