package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"missionctl/internal/models"
)

// Bot transcripts are dated markdown files under memory/<YYYY>/<MM>/<DD>.md.
// Messages are separated by "## HH:MM - Role" headers. The app never writes
// these files; an external bot produces them.

var (
	dateKeyRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	messageHeaderRe = regexp.MustCompile(`^## (\d{2}:\d{2}) - (\w+)\s*$`)
)

func (s *Store) conversationPath(date string) string {
	parts := strings.SplitN(date, "-", 3)
	return filepath.Join(s.memoryDir(), parts[0], parts[1], parts[2]+".md")
}

// ListMemoryDates walks the memory tree and returns every available date key,
// newest first.
func (s *Store) ListMemoryDates() ([]string, error) {
	dates := []string{}
	years, err := os.ReadDir(s.memoryDir())
	if err != nil {
		return nil, err
	}
	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		months, err := os.ReadDir(filepath.Join(s.memoryDir(), y.Name()))
		if err != nil {
			return nil, err
		}
		for _, m := range months {
			if !m.IsDir() {
				continue
			}
			days, err := os.ReadDir(filepath.Join(s.memoryDir(), y.Name(), m.Name()))
			if err != nil {
				return nil, err
			}
			for _, d := range days {
				name, ok := strings.CutSuffix(d.Name(), ".md")
				if !ok || d.IsDir() {
					continue
				}
				date := fmt.Sprintf("%s-%s-%s", y.Name(), m.Name(), name)
				if dateKeyRe.MatchString(date) {
					dates = append(dates, date)
				}
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (s *Store) GetConversation(date string) (*models.DayConversation, error) {
	if !dateKeyRe.MatchString(date) {
		return nil, validationf("date must be YYYY-MM-DD, got %q", date)
	}
	data, err := os.ReadFile(s.conversationPath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &models.DayConversation{
		Date:     date,
		Messages: parseConversation(string(data)),
	}, nil
}

func parseConversation(text string) []models.MemoryMessage {
	messages := []models.MemoryMessage{}
	var current *models.MemoryMessage
	var body []string

	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(strings.Join(body, "\n"))
			messages = append(messages, *current)
		}
		body = body[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if m := messageHeaderRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &models.MemoryMessage{
				Timestamp: m[1],
				Role:      strings.ToLower(m[2]),
			}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()
	return messages
}

// SearchMemory is the per-token text search: it scans every dated transcript
// and returns one hit per message containing the token, case-insensitive.
func (s *Store) SearchMemory(token string) ([]models.MemoryHit, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	hits := []models.MemoryHit{}
	if token == "" {
		return hits, nil
	}

	dates, err := s.ListMemoryDates()
	if err != nil {
		return nil, err
	}
	for _, date := range dates {
		conv, err := s.GetConversation(date)
		if err != nil {
			return nil, err
		}
		for i, msg := range conv.Messages {
			if strings.Contains(strings.ToLower(msg.Content), token) {
				hits = append(hits, models.MemoryHit{
					Date:         date,
					MessageIndex: i,
					Role:         msg.Role,
					Timestamp:    msg.Timestamp,
					Content:      msg.Content,
				})
			}
		}
	}
	return hits, nil
}

func (s *Store) ListFavorites() ([]string, error) {
	favs, err := readJSON[[]string](s.favoritesPath())
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = []string{}
	}
	return favs, nil
}

// ToggleFavorite adds the date to the favorites list, or removes it when
// already present. Returns the new list and whether the date is now a
// favorite.
func (s *Store) ToggleFavorite(date string) ([]string, bool, error) {
	if !dateKeyRe.MatchString(date) {
		return nil, false, validationf("date must be YYYY-MM-DD, got %q", date)
	}
	favs, err := s.ListFavorites()
	if err != nil {
		return nil, false, err
	}

	kept := favs[:0]
	removed := false
	for _, f := range favs {
		if f == date {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		kept = append(kept, date)
		sort.Sort(sort.Reverse(sort.StringSlice(kept)))
	}

	if err := writeJSON(s.favoritesPath(), kept); err != nil {
		return nil, false, err
	}
	return kept, !removed, nil
}
