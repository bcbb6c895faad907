package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
)

func handleAttachmentUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}
	if header.Size > int64(cfg.MaxUploadMB)*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := header.Open()
	if err != nil {
		log.Printf("failed to open upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}
	defer f.Close()

	blob, err := io.ReadAll(f)
	if err != nil {
		log.Printf("failed to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	att, err := data.AddUploadAttachment(
		c.Param("project"),
		c.Param("task"),
		header.Filename,
		header.Header.Get("Content-Type"),
		blob,
	)
	if err != nil {
		respondStoreError(c, err, "task")
		return
	}

	c.JSON(http.StatusCreated, att)
}

func handleAttachmentLinkDocs(c *gin.Context) {
	var req models.LinkDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	added, err := data.AddDocumentAttachments(c.Param("project"), c.Param("task"), req.DocumentIDs)
	if err != nil {
		respondStoreError(c, err, "document")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": added})
}

// handleAttachmentGet serves the blob for uploaded attachments; document
// links have no blob and answer with the attachment record instead.
func handleAttachmentGet(c *gin.Context) {
	att, blobPath, err := data.GetAttachment(c.Param("project"), c.Param("task"), c.Param("attachment"))
	if err != nil {
		respondStoreError(c, err, "attachment")
		return
	}

	if att.Source == models.AttachmentSourceUpload {
		c.Header("Content-Disposition", `attachment; filename="`+att.Name+`"`)
		c.Header("Content-Type", att.MimeType)
		c.File(blobPath)
		return
	}

	c.JSON(http.StatusOK, att)
}

func handleAttachmentDelete(c *gin.Context) {
	if err := data.DeleteAttachment(c.Param("project"), c.Param("task"), c.Param("attachment")); err != nil {
		respondStoreError(c, err, "attachment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
