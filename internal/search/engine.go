// Package search implements the global search engine: free-text queries over
// projects, tasks, documents, members and bot memory, scored by token
// coverage and match position, grouped per type with fixed caps.
package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"missionctl/internal/models"
)

const (
	TypeProject  = "project"
	TypeTask     = "task"
	TypeDocument = "document"
	TypePerson   = "person"
	TypeMemory   = "memory"
)

// Per-type result caps, applied after scoring.
var typeLimits = map[string]int{
	TypeProject:  6,
	TypeTask:     8,
	TypeDocument: 6,
	TypePerson:   6,
	TypeMemory:   6,
}

// displayOrder fixes how type groups are concatenated in the final list.
var displayOrder = []string{TypeProject, TypeTask, TypeDocument, TypePerson, TypeMemory}

type Result struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Href     string `json:"href"`
	Meta     string `json:"meta,omitempty"`
	Priority string `json:"priority,omitempty"`
	Score    int    `json:"score"`
}

// MemorySearcher is the per-token text search over dated transcripts. Hits
// are re-scored here against the full token set.
type MemorySearcher interface {
	SearchMemory(token string) ([]models.MemoryHit, error)
}

// Corpus is everything the engine scans. Memory may be nil, which skips
// memory results.
type Corpus struct {
	Projects  []models.Project
	Tasks     []models.ProjectTask
	Documents []models.Document
	Members   []models.Member
	Memory    MemorySearcher
}

// Tokenize lowercases the query and splits it on whitespace. No stemming, no
// stopwords.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Score rates a haystack against the query tokens. Each token found at the
// very start of the haystack adds 6, within the first ten characters 4,
// anywhere later 2. The total rewards coverage first: ten points per distinct
// matched token, with position only breaking ties among equally-covered
// records. A record matching zero tokens scores zero and must be excluded by
// the caller.
func Score(haystack string, tokens []string) (matched, total int) {
	h := strings.ToLower(haystack)
	positional := 0
	for _, tok := range tokens {
		idx := strings.Index(h, tok)
		switch {
		case idx < 0:
		case idx == 0:
			matched++
			positional += 6
		case idx < 10:
			matched++
			positional += 4
		default:
			matched++
			positional += 2
		}
	}
	return matched, matched*10 + positional
}

const (
	excerptBefore   = 40
	excerptAfter    = 60
	excerptFallback = 120
)

// Excerpt extracts a highlight-ready window around the earliest token match:
// 40 characters before the match through 60 after it, with ellipses where the
// window is clipped. Whitespace runs are collapsed first so markdown line
// breaks do not end up inside the window. When no token occurs in the text
// (e.g. only the title matched), it falls back to a plain truncation.
func Excerpt(text string, tokens []string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	lower := strings.ToLower(normalized)

	best := -1
	bestLen := 0
	for _, tok := range tokens {
		if idx := strings.Index(lower, tok); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			bestLen = len(tok)
		}
	}

	if best < 0 {
		if len(normalized) <= excerptFallback {
			return normalized
		}
		return normalized[:runeFloor(normalized, excerptFallback)] + "…"
	}

	// match offsets come from the lowered copy, which for a few exotic runes
	// differs in byte length from the original, so every slice offset is
	// clamped and snapped to a rune boundary
	start := best - excerptBefore
	if start < 0 {
		start = 0
	}
	start = runeFloor(normalized, start)
	end := best + bestLen + excerptAfter
	if end > len(normalized) {
		end = len(normalized)
	}
	end = runeFloor(normalized, end)

	out := normalized[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(normalized) {
		out += "…"
	}
	return out
}

// runeFloor rounds a byte offset down to the nearest rune boundary.
func runeFloor(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// Search runs the full pipeline: tokenize, score every record, group the
// survivors per type, cap each group and concatenate in display order. An
// empty or whitespace-only query short-circuits to an empty list without
// touching the corpus.
func Search(query string, corpus Corpus) ([]Result, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []Result{}, nil
	}

	groups := map[string][]Result{}
	add := func(r Result) {
		groups[r.Type] = append(groups[r.Type], r)
	}

	for _, p := range corpus.Projects {
		matched, score := Score(p.Name+" "+p.Description, tokens)
		if matched == 0 {
			continue
		}
		add(Result{
			ID:       p.ID,
			Type:     TypeProject,
			Title:    p.Name,
			Subtitle: p.Description,
			Href:     "/projects/" + p.Slug,
			Score:    score,
		})
	}

	for _, pt := range corpus.Tasks {
		t := pt.Task
		matched, score := Score(t.Title+" "+t.Description, tokens)
		if matched == 0 {
			continue
		}
		add(Result{
			ID:       t.ID,
			Type:     TypeTask,
			Title:    t.Title,
			Subtitle: Excerpt(t.Description, tokens),
			Href:     fmt.Sprintf("/projects/%s?task=%s", pt.ProjectSlug, t.ID),
			Meta:     pt.ProjectName,
			Priority: t.Priority,
			Score:    score,
		})
	}

	for _, d := range corpus.Documents {
		matched, score := Score(d.Title+" "+d.Content, tokens)
		if matched == 0 {
			continue
		}
		add(Result{
			ID:       d.ID,
			Type:     TypeDocument,
			Title:    d.Title,
			Subtitle: Excerpt(d.Content, tokens),
			Href:     "/docs/" + d.ID,
			Score:    score,
		})
	}

	for _, m := range corpus.Members {
		matched, score := Score(m.Name+" "+m.Role+" "+m.Description, tokens)
		if matched == 0 {
			continue
		}
		add(Result{
			ID:       m.ID,
			Type:     TypePerson,
			Title:    m.Name,
			Subtitle: m.Role,
			Href:     "/crew/" + m.ID,
			Score:    score,
		})
	}

	if corpus.Memory != nil {
		memory, err := searchMemory(corpus.Memory, tokens)
		if err != nil {
			return nil, err
		}
		for _, r := range memory {
			add(r)
		}
	}

	// collators carry internal buffers, so each search gets its own
	titles := collate.New(language.Und, collate.Loose)
	out := []Result{}
	for _, typ := range displayOrder {
		group := groups[typ]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Score != group[j].Score {
				return group[i].Score > group[j].Score
			}
			return titles.CompareString(group[i].Title, group[j].Title) < 0
		})
		if limit := typeLimits[typ]; len(group) > limit {
			group = group[:limit]
		}
		out = append(out, group...)
	}
	return out, nil
}

// searchMemory queries the transcript store one token at a time, deduplicates
// hits by (date, message index), then re-scores each surviving message
// against the full token set so multi-token queries rank above single-token
// ones.
func searchMemory(searcher MemorySearcher, tokens []string) ([]Result, error) {
	seen := map[string]models.MemoryHit{}
	for _, tok := range tokens {
		hits, err := searcher.SearchMemory(tok)
		if err != nil {
			return nil, err
		}
		for _, h := range hits {
			key := fmt.Sprintf("%s#%d", h.Date, h.MessageIndex)
			if _, ok := seen[key]; !ok {
				seen[key] = h
			}
		}
	}

	out := make([]Result, 0, len(seen))
	for key, h := range seen {
		matched, score := Score(h.Content, tokens)
		if matched == 0 {
			continue
		}
		out = append(out, Result{
			ID:       key,
			Type:     TypeMemory,
			Title:    h.Date,
			Subtitle: Excerpt(h.Content, tokens),
			Href:     "/memory?date=" + h.Date,
			Meta:     h.Timestamp + " " + h.Role,
			Score:    score,
		})
	}
	return out, nil
}
