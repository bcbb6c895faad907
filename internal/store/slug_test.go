package store

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Alpha":             "alpha",
		"Mission Control":   "mission-control",
		"  spaced   out  ":  "spaced-out",
		"under_score_name":  "under-score-name",
		"Weird!@#Chars$%^":  "weirdchars",
		"-already-hyphen-":  "already-hyphen",
		"Mixed_Case Name 2": "mixed-case-name-2",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueSlugProbesSuffixes(t *testing.T) {
	taken := map[string]bool{"alpha": true, "alpha-1": true}
	got := uniqueSlug("alpha", func(s string) bool { return taken[s] })
	if got != "alpha-2" {
		t.Fatalf("expected alpha-2, got %q", got)
	}

	if got := uniqueSlug("beta", func(string) bool { return false }); got != "beta" {
		t.Fatalf("expected beta, got %q", got)
	}

	if got := uniqueSlug("", func(string) bool { return false }); got != "untitled" {
		t.Fatalf("expected untitled for empty base, got %q", got)
	}
}

func TestProjectSlugCollision(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateProject(projectReq("Alpha"))
	if err != nil {
		t.Fatalf("create first project: %v", err)
	}
	second, err := s.CreateProject(projectReq("Alpha"))
	if err != nil {
		t.Fatalf("create second project: %v", err)
	}

	if first.Slug != "alpha" {
		t.Fatalf("expected slug alpha, got %q", first.Slug)
	}
	if second.Slug != "alpha-1" {
		t.Fatalf("expected slug alpha-1, got %q", second.Slug)
	}
}
