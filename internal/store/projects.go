package store

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
)

// projectRecord is the on-disk descriptor. It still decodes the legacy
// developerIds field; the upcast happens here and the legacy name never
// leaves the store.
type projectRecord struct {
	ID                 string    `json:"id"`
	Slug               string    `json:"slug"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Color              string    `json:"color"`
	MemberIDs          []string  `json:"memberIds"`
	LegacyDeveloperIDs []string  `json:"developerIds,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (r projectRecord) upcast() models.Project {
	members := r.MemberIDs
	if members == nil {
		members = r.LegacyDeveloperIDs
	}
	if members == nil {
		members = []string{}
	}
	return models.Project{
		ID:          r.ID,
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		MemberIDs:   members,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (s *Store) projectDir(slug string) string {
	return filepath.Join(s.projectsDir(), slug)
}

func (s *Store) projectDescriptorPath(slug string) string {
	return filepath.Join(s.projectDir(slug), "project.json")
}

func (s *Store) ListProjects() ([]models.Project, error) {
	entries, err := os.ReadDir(s.projectsDir())
	if err != nil {
		return nil, err
	}

	out := make([]models.Project, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		rec, err := readJSON[projectRecord](s.projectDescriptorPath(e.Name()))
		if err != nil {
			log.Printf("failed to read project descriptor %s: %v", e.Name(), err)
			continue
		}
		if rec.ID == "" {
			continue
		}
		out = append(out, rec.upcast())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// GetProject resolves a project by slug first, then by id.
func (s *Store) GetProject(idOrSlug string) (*models.Project, error) {
	rec, err := readJSON[projectRecord](s.projectDescriptorPath(idOrSlug))
	if err != nil {
		return nil, err
	}
	if rec.ID != "" {
		p := rec.upcast()
		return &p, nil
	}

	projects, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == idOrSlug {
			return &projects[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) projectSlugTaken(slug string) bool {
	_, err := os.Stat(s.projectDescriptorPath(slug))
	return err == nil
}

func (s *Store) CreateProject(req models.CreateProjectRequest) (*models.Project, error) {
	now := time.Now().UTC()
	p := models.Project{
		ID:          uuid.NewString(),
		Slug:        uniqueSlug(Slugify(req.Name), s.projectSlugTaken),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		MemberIDs:   req.MemberIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Color == "" {
		p.Color = "#6366f1"
	}
	if p.MemberIDs == nil {
		p.MemberIDs = []string{}
	}

	if err := os.MkdirAll(filepath.Join(s.projectDir(p.Slug), "tasks"), 0o755); err != nil {
		return nil, err
	}
	if err := s.writeProject(p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProject(idOrSlug string, req models.UpdateProjectRequest) (*models.Project, error) {
	p, err := s.GetProject(idOrSlug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	if req.MemberIDs != nil {
		p.MemberIDs = *req.MemberIDs
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.writeProject(*p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProject removes the whole project directory, which cascades to its
// tasks and attachment blobs by layout.
func (s *Store) DeleteProject(idOrSlug string) error {
	p, err := s.GetProject(idOrSlug)
	if err != nil {
		return err
	}
	return os.RemoveAll(s.projectDir(p.Slug))
}

func (s *Store) writeProject(p models.Project) error {
	rec := projectRecord{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		MemberIDs:   p.MemberIDs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	return writeJSON(s.projectDescriptorPath(p.Slug), rec)
}
