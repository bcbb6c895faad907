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

type documentFrontmatter struct {
	ID               string    `yaml:"id"`
	Slug             string    `yaml:"slug"`
	Title            string    `yaml:"title"`
	FolderID         *string   `yaml:"folderId,omitempty"`
	LinkedTaskIDs    []string  `yaml:"linkedTaskIds,omitempty"`
	LinkedProjectIDs []string  `yaml:"linkedProjectIds,omitempty"`
	CreatedAt        time.Time `yaml:"createdAt"`
	UpdatedAt        time.Time `yaml:"updatedAt"`
}

func (s *Store) documentPath(docID string) string {
	return filepath.Join(s.documentsDir(), docID+".md")
}

func (s *Store) readDocumentFile(path string) (models.Document, error) {
	var fm documentFrontmatter
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, err
	}
	body, err := unmarshalFrontmatter(data, &fm)
	if err != nil {
		return models.Document{}, err
	}
	d := models.Document{
		ID:               fm.ID,
		Slug:             fm.Slug,
		Title:            fm.Title,
		Content:          body,
		FolderID:         fm.FolderID,
		LinkedTaskIDs:    fm.LinkedTaskIDs,
		LinkedProjectIDs: fm.LinkedProjectIDs,
		CreatedAt:        fm.CreatedAt,
		UpdatedAt:        fm.UpdatedAt,
	}
	if d.LinkedTaskIDs == nil {
		d.LinkedTaskIDs = []string{}
	}
	if d.LinkedProjectIDs == nil {
		d.LinkedProjectIDs = []string{}
	}
	return d, nil
}

func (s *Store) writeDocument(d models.Document) error {
	fm := documentFrontmatter{
		ID:               d.ID,
		Slug:             d.Slug,
		Title:            d.Title,
		FolderID:         d.FolderID,
		LinkedTaskIDs:    d.LinkedTaskIDs,
		LinkedProjectIDs: d.LinkedProjectIDs,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	data, err := marshalFrontmatter(fm, d.Content)
	if err != nil {
		return err
	}
	return os.WriteFile(s.documentPath(d.ID), data, 0o644)
}

func (s *Store) ListDocuments() ([]models.Document, error) {
	entries, err := os.ReadDir(s.documentsDir())
	if err != nil {
		return nil, err
	}

	out := make([]models.Document, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		d, err := s.readDocumentFile(filepath.Join(s.documentsDir(), e.Name()))
		if err != nil {
			log.Printf("failed to read document %s: %v", e.Name(), err)
			continue
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out, nil
}

func (s *Store) GetDocument(docID string) (*models.Document, error) {
	d, err := s.readDocumentFile(s.documentPath(docID))
	if err == nil {
		return &d, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	// fall back to slug lookup
	docs, err := s.ListDocuments()
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Slug == docID {
			return &docs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) documentSlugTaken(slug string) bool {
	docs, err := s.ListDocuments()
	if err != nil {
		return false
	}
	for _, d := range docs {
		if d.Slug == slug {
			return true
		}
	}
	return false
}

func (s *Store) CreateDocument(req models.CreateDocumentRequest) (*models.Document, error) {
	if req.FolderID != nil {
		if _, err := s.GetFolder(*req.FolderID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	d := models.Document{
		ID:               uuid.NewString(),
		Slug:             uniqueSlug(Slugify(req.Title), s.documentSlugTaken),
		Title:            req.Title,
		Content:          req.Content,
		FolderID:         req.FolderID,
		LinkedTaskIDs:    req.LinkedTaskIDs,
		LinkedProjectIDs: req.LinkedProjectIDs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if d.LinkedTaskIDs == nil {
		d.LinkedTaskIDs = []string{}
	}
	if d.LinkedProjectIDs == nil {
		d.LinkedProjectIDs = []string{}
	}

	if err := s.writeDocument(d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) UpdateDocument(docID string, req models.UpdateDocumentRequest) (*models.Document, error) {
	d, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Content != nil {
		d.Content = *req.Content
	}
	if req.FolderID.Set {
		if req.FolderID.Value != nil {
			if _, err := s.GetFolder(*req.FolderID.Value); err != nil {
				return nil, err
			}
		}
		d.FolderID = req.FolderID.Value
	}
	if req.LinkedTaskIDs != nil {
		d.LinkedTaskIDs = *req.LinkedTaskIDs
	}
	if req.LinkedProjectIDs != nil {
		d.LinkedProjectIDs = *req.LinkedProjectIDs
	}
	d.UpdatedAt = time.Now().UTC()

	if err := s.writeDocument(*d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) DeleteDocument(docID string) error {
	d, err := s.GetDocument(docID)
	if err != nil {
		return err
	}
	return os.Remove(s.documentPath(d.ID))
}
