package store

import (
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"missionctl/internal/models"
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (s *Store) ListScheduled() ([]models.ScheduledTask, error) {
	items, err := readJSON[[]models.ScheduledTask](s.scheduledPath())
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ScheduledTask{}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].DayOfWeek != items[j].DayOfWeek {
			return items[i].DayOfWeek < items[j].DayOfWeek
		}
		return items[i].Time < items[j].Time
	})
	return items, nil
}

func (s *Store) CreateScheduled(req models.CreateScheduledRequest) (*models.ScheduledTask, error) {
	if !timeOfDayRe.MatchString(req.Time) {
		return nil, validationf("time must be HH:MM, got %q", req.Time)
	}

	items, err := s.ListScheduled()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st := models.ScheduledTask{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Description:      req.Description,
		Time:             req.Time,
		DayOfWeek:        req.DayOfWeek,
		Color:            req.Color,
		AssignedMemberID: req.AssignedMemberID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if st.Color == "" {
		st.Color = "#f59e0b"
	}

	items = append(items, st)
	if err := writeJSON(s.scheduledPath(), items); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) UpdateScheduled(taskID string, req models.UpdateScheduledRequest) (*models.ScheduledTask, error) {
	items, err := s.ListScheduled()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	st := &items[idx]
	if req.Title != nil {
		st.Title = *req.Title
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.Time != nil {
		if !timeOfDayRe.MatchString(*req.Time) {
			return nil, validationf("time must be HH:MM, got %q", *req.Time)
		}
		st.Time = *req.Time
	}
	if req.DayOfWeek != nil {
		st.DayOfWeek = *req.DayOfWeek
	}
	if req.Color != nil {
		st.Color = *req.Color
	}
	if req.AssignedMemberID != nil {
		st.AssignedMemberID = *req.AssignedMemberID
	}
	st.UpdatedAt = time.Now().UTC()

	if err := writeJSON(s.scheduledPath(), items); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Store) DeleteScheduled(taskID string) error {
	items, err := s.ListScheduled()
	if err != nil {
		return err
	}

	kept := items[:0]
	found := false
	for _, st := range items {
		if st.ID == taskID {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return ErrNotFound
	}
	return writeJSON(s.scheduledPath(), kept)
}
