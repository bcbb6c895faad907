package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"missionctl/internal/models"
)

func (s *Store) attachmentsDir(slug, taskID string) string {
	return filepath.Join(s.projectDir(slug), "attachments", taskID)
}

// BlobPath resolves the on-disk location of an uploaded attachment. Only
// meaningful for source=upload attachments.
func (s *Store) BlobPath(projectSlug, taskID, storageName string) string {
	return filepath.Join(s.attachmentsDir(projectSlug, taskID), storageName)
}

// AddUploadAttachment stores the blob under attachments/<taskID>/ and appends
// the attachment record to the task.
func (s *Store) AddUploadAttachment(projectIDOrSlug, taskID, filename, mimeType string, data []byte) (*models.TaskAttachment, error) {
	if filename == "" {
		return nil, validationf("attachment name required")
	}
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return nil, err
	}

	att := models.TaskAttachment{
		ID:          uuid.NewString(),
		Name:        filename,
		Size:        int64(len(data)),
		MimeType:    mimeType,
		Source:      models.AttachmentSourceUpload,
		CreatedAt:   time.Now().UTC(),
	}
	att.StorageName = att.ID + filepath.Ext(filename)

	if err := os.MkdirAll(s.attachmentsDir(p.Slug, taskID), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.BlobPath(p.Slug, taskID, att.StorageName), data, 0o644); err != nil {
		return nil, err
	}

	t.Attachments = append(t.Attachments, att)
	t.UpdatedAt = time.Now().UTC()
	if err := s.writeTask(p.Slug, *t); err != nil {
		return nil, err
	}
	return &att, nil
}

// AddDocumentAttachments links documents to a task by reference. No blob is
// written; the task additionally records the linked document ids.
func (s *Store) AddDocumentAttachments(projectIDOrSlug, taskID string, documentIDs []string) ([]models.TaskAttachment, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	added := make([]models.TaskAttachment, 0, len(documentIDs))
	for _, docID := range documentIDs {
		doc, err := s.GetDocument(docID)
		if err != nil {
			return nil, err
		}
		att := models.TaskAttachment{
			ID:         uuid.NewString(),
			Name:       doc.Title,
			MimeType:   "text/markdown",
			Size:       int64(len(doc.Content)),
			Source:     models.AttachmentSourceDocs,
			DocumentID: doc.ID,
			CreatedAt:  now,
		}
		t.Attachments = append(t.Attachments, att)
		added = append(added, att)
		if !contains(t.LinkedDocumentIDs, doc.ID) {
			t.LinkedDocumentIDs = append(t.LinkedDocumentIDs, doc.ID)
		}
	}

	t.UpdatedAt = now
	if err := s.writeTask(p.Slug, *t); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) GetAttachment(projectIDOrSlug, taskID, attachmentID string) (*models.TaskAttachment, string, error) {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return nil, "", err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return nil, "", err
	}
	for _, att := range t.Attachments {
		if att.ID == attachmentID {
			blob := ""
			if att.Source == models.AttachmentSourceUpload {
				blob = s.BlobPath(p.Slug, taskID, att.StorageName)
			}
			return &att, blob, nil
		}
	}
	return nil, "", ErrNotFound
}

// DeleteAttachment removes an attachment record. Uploaded blobs are deleted
// from disk; document links never touch blob storage, and the task's
// linkedDocumentIds entry is pruned once no attachment references the
// document anymore.
func (s *Store) DeleteAttachment(projectIDOrSlug, taskID, attachmentID string) error {
	p, err := s.GetProject(projectIDOrSlug)
	if err != nil {
		return err
	}
	t, err := s.GetTask(p.Slug, taskID)
	if err != nil {
		return err
	}

	var removed *models.TaskAttachment
	kept := t.Attachments[:0]
	for _, att := range t.Attachments {
		if att.ID == attachmentID {
			a := att
			removed = &a
			continue
		}
		kept = append(kept, att)
	}
	if removed == nil {
		return ErrNotFound
	}
	t.Attachments = kept

	switch removed.Source {
	case models.AttachmentSourceUpload:
		if err := os.Remove(s.BlobPath(p.Slug, taskID, removed.StorageName)); err != nil && !os.IsNotExist(err) {
			return err
		}
	case models.AttachmentSourceDocs:
		stillLinked := false
		for _, att := range t.Attachments {
			if att.DocumentID == removed.DocumentID {
				stillLinked = true
				break
			}
		}
		if !stillLinked {
			pruned := t.LinkedDocumentIDs[:0]
			for _, id := range t.LinkedDocumentIDs {
				if id != removed.DocumentID {
					pruned = append(pruned, id)
				}
			}
			t.LinkedDocumentIDs = pruned
		}
	}

	t.UpdatedAt = time.Now().UTC()
	return s.writeTask(p.Slug, *t)
}

func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
