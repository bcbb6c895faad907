package store

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTranscript = `## 08:15 - User
Can you check the ice core readings from yesterday?

## 08:16 - Assistant
The readings look stable. We crossed the ice shelf boundary at dawn
and all sensors reported nominal values.

## 09:40 - System
Backup completed.
`

func seedConversation(t *testing.T, s *Store, date, content string) {
	t.Helper()
	path := s.conversationPath(date)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir memory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
}

func TestConversationParsing(t *testing.T) {
	s := newTestStore(t)
	seedConversation(t, s, "2026-08-30", sampleTranscript)

	conv, err := s.GetConversation("2026-08-30")
	if err != nil {
		t.Fatalf("get conversation: %v", err)
	}
	if len(conv.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv.Messages))
	}

	first := conv.Messages[0]
	if first.Role != "user" || first.Timestamp != "08:15" {
		t.Fatalf("unexpected first message header: %+v", first)
	}
	if first.Content != "Can you check the ice core readings from yesterday?" {
		t.Fatalf("unexpected first message body: %q", first.Content)
	}

	second := conv.Messages[1]
	if second.Role != "assistant" {
		t.Fatalf("expected assistant role, got %q", second.Role)
	}
	if second.Content == "" || second.Content[0] != 'T' {
		t.Fatalf("multi-line body lost: %q", second.Content)
	}
}

func TestConversationValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetConversation("not-a-date"); err == nil {
		t.Fatalf("malformed date must be rejected")
	}
	if _, err := s.GetConversation("2026-01-01"); err == nil {
		t.Fatalf("missing transcript must be not found")
	}
}

func TestListMemoryDatesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	seedConversation(t, s, "2026-08-29", sampleTranscript)
	seedConversation(t, s, "2026-08-31", sampleTranscript)
	seedConversation(t, s, "2025-12-01", sampleTranscript)

	dates, err := s.ListMemoryDates()
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	want := []string{"2026-08-31", "2026-08-29", "2025-12-01"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %v", len(want), dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dates)
		}
	}
}

func TestSearchMemoryPerToken(t *testing.T) {
	s := newTestStore(t)
	seedConversation(t, s, "2026-08-30", sampleTranscript)

	hits, err := s.SearchMemory("ice")
	if err != nil {
		t.Fatalf("search memory: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 messages mentioning ice, got %d", len(hits))
	}
	if hits[0].MessageIndex == hits[1].MessageIndex {
		t.Fatalf("hits must carry distinct message indexes")
	}

	// matching is case-insensitive
	hits, err = s.SearchMemory("BACKUP")
	if err != nil {
		t.Fatalf("search memory: %v", err)
	}
	if len(hits) != 1 || hits[0].Role != "system" {
		t.Fatalf("expected the system message, got %+v", hits)
	}

	if hits, _ := s.SearchMemory("   "); len(hits) != 0 {
		t.Fatalf("blank token must match nothing")
	}
}

func TestFavoritesToggle(t *testing.T) {
	s := newTestStore(t)

	favs, added, err := s.ToggleFavorite("2026-08-30")
	if err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if !added || len(favs) != 1 {
		t.Fatalf("expected date added, got added=%v favs=%v", added, favs)
	}

	favs, added, err = s.ToggleFavorite("2026-08-30")
	if err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if added || len(favs) != 0 {
		t.Fatalf("second toggle must remove, got added=%v favs=%v", added, favs)
	}

	if _, _, err := s.ToggleFavorite("30-08-2026"); err == nil {
		t.Fatalf("malformed date must be rejected")
	}
}
