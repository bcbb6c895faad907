package store

import (
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
)

// ListMembers reads members.json; an older deployment kept the same records
// in developers.json, which is read as a fallback and migrated on first write.
func (s *Store) ListMembers() ([]models.Member, error) {
	members, err := readJSON[[]models.Member](s.membersPath())
	if err != nil {
		return nil, err
	}
	if members == nil {
		legacy := filepath.Join(s.root, "developers.json")
		members, err = readJSON[[]models.Member](legacy)
		if err != nil {
			return nil, err
		}
	}
	if members == nil {
		members = []models.Member{}
	}
	for i := range members {
		if members[i].ProjectIDs == nil {
			members[i].ProjectIDs = []string{}
		}
	}
	return members, nil
}

func (s *Store) GetMember(memberID string) (*models.Member, error) {
	members, err := s.ListMembers()
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == memberID {
			return &members[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) CreateMember(req models.CreateMemberRequest) (*models.Member, error) {
	members, err := s.ListMembers()
	if err != nil {
		return nil, err
	}

	m := models.Member{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Role:        req.Role,
		Description: req.Description,
		Color:       req.Color,
		LLMModel:    req.LLMModel,
		ProjectIDs:  req.ProjectIDs,
	}
	if m.Color == "" {
		m.Color = "#22c55e"
	}
	if m.ProjectIDs == nil {
		m.ProjectIDs = []string{}
	}

	members = append(members, m)
	if err := writeJSON(s.membersPath(), members); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) UpdateMember(memberID string, req models.UpdateMemberRequest) (*models.Member, error) {
	members, err := s.ListMembers()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range members {
		if members[i].ID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	m := &members[idx]
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Role != nil {
		m.Role = *req.Role
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Color != nil {
		m.Color = *req.Color
	}
	if req.LLMModel != nil {
		m.LLMModel = *req.LLMModel
	}
	if req.SoulMD != nil {
		m.SoulMD = *req.SoulMD
	}
	if req.MemoryMD != nil {
		m.MemoryMD = *req.MemoryMD
	}
	if req.ProjectIDs != nil {
		m.ProjectIDs = *req.ProjectIDs
	}

	if err := writeJSON(s.membersPath(), members); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) DeleteMember(memberID string) error {
	members, err := s.ListMembers()
	if err != nil {
		return err
	}

	kept := members[:0]
	found := false
	for _, m := range members {
		if m.ID == memberID {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return ErrNotFound
	}
	return writeJSON(s.membersPath(), kept)
}

// MemberActivity aggregates a member's assigned kanban tasks across every
// project plus their weekly scheduled slots.
func (s *Store) MemberActivity(memberID string) (*models.MemberActivity, error) {
	if _, err := s.GetMember(memberID); err != nil {
		return nil, err
	}

	activity := models.MemberActivity{
		Tasks:     []models.ProjectTask{},
		Scheduled: []models.ScheduledTask{},
	}

	projects, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		tasks, err := s.loadTasks(p.Slug)
		if err != nil {
			log.Printf("failed to load tasks for %s: %v", p.Slug, err)
			continue
		}
		for _, t := range tasks {
			if t.AssignedMemberID == memberID {
				activity.Tasks = append(activity.Tasks, models.ProjectTask{
					Task:        t,
					ProjectSlug: p.Slug,
					ProjectName: p.Name,
				})
			}
		}
	}

	scheduled, err := s.ListScheduled()
	if err != nil {
		return nil, err
	}
	for _, st := range scheduled {
		if st.AssignedMemberID == memberID {
			activity.Scheduled = append(activity.Scheduled, st)
		}
	}

	return &activity, nil
}
