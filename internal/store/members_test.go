package store

import (
	"path/filepath"
	"testing"

	"missionctl/internal/models"
)

func TestMemberLifecycle(t *testing.T) {
	s := newTestStore(t)

	m, err := s.CreateMember(models.CreateMemberRequest{Name: "Nova", Role: "pilot"})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if m.Color == "" {
		t.Fatalf("members get a default color")
	}

	updated, err := s.UpdateMember(m.ID, models.UpdateMemberRequest{
		Role:   strptr("commander"),
		SoulMD: strptr("# Nova\nCalm under pressure."),
	})
	if err != nil {
		t.Fatalf("update member: %v", err)
	}
	if updated.Role != "commander" || updated.Name != "Nova" {
		t.Fatalf("partial update must only touch sent fields: %+v", updated)
	}
	if updated.SoulMD == "" {
		t.Fatalf("soul markdown must persist")
	}

	if err := s.DeleteMember(m.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}
	if err := s.DeleteMember(m.ID); err == nil {
		t.Fatalf("double delete must report not found")
	}
}

func TestMembersLegacyFileFallback(t *testing.T) {
	s := newTestStore(t)

	legacy := `[{"id": "m-1", "name": "Vega", "role": "scout"}]`
	if err := writeRaw(filepath.Join(s.root, "developers.json"), []byte(legacy)); err != nil {
		t.Fatalf("seed legacy file: %v", err)
	}

	members, err := s.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Vega" {
		t.Fatalf("legacy developers.json must be readable, got %+v", members)
	}

	// the first write lands in members.json, which then wins
	if _, err := s.CreateMember(models.CreateMemberRequest{Name: "Rex"}); err != nil {
		t.Fatalf("create member: %v", err)
	}
	members, _ = s.ListMembers()
	if len(members) != 2 {
		t.Fatalf("expected migrated list of 2, got %+v", members)
	}
}

func TestMemberActivity(t *testing.T) {
	s := newTestStore(t)

	m, _ := s.CreateMember(models.CreateMemberRequest{Name: "Nova"})
	other, _ := s.CreateMember(models.CreateMemberRequest{Name: "Rex"})

	p, _ := s.CreateProject(projectReq("Alpha"))
	q, _ := s.CreateProject(projectReq("Beta"))

	mine := taskReq("Chart course", models.StatusTodo)
	mine.AssignedMemberID = m.ID
	if _, err := s.CreateTask(p.Slug, mine); err != nil {
		t.Fatalf("create task: %v", err)
	}
	mineToo := taskReq("Refuel", models.StatusDone)
	mineToo.AssignedMemberID = m.ID
	if _, err := s.CreateTask(q.Slug, mineToo); err != nil {
		t.Fatalf("create task: %v", err)
	}
	theirs := taskReq("Inventory", models.StatusTodo)
	theirs.AssignedMemberID = other.ID
	if _, err := s.CreateTask(p.Slug, theirs); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := s.CreateScheduled(models.CreateScheduledRequest{
		Title: "Standup", Time: "09:00", DayOfWeek: 1, AssignedMemberID: m.ID,
	}); err != nil {
		t.Fatalf("create scheduled: %v", err)
	}

	activity, err := s.MemberActivity(m.ID)
	if err != nil {
		t.Fatalf("member activity: %v", err)
	}
	if len(activity.Tasks) != 2 {
		t.Fatalf("expected tasks from both projects, got %+v", activity.Tasks)
	}
	slugs := map[string]bool{}
	for _, pt := range activity.Tasks {
		slugs[pt.ProjectSlug] = true
		if pt.ProjectName == "" {
			t.Fatalf("activity tasks must carry the project name")
		}
	}
	if !slugs[p.Slug] || !slugs[q.Slug] {
		t.Fatalf("expected both project slugs, got %v", slugs)
	}
	if len(activity.Scheduled) != 1 || activity.Scheduled[0].Title != "Standup" {
		t.Fatalf("expected the weekly slot, got %+v", activity.Scheduled)
	}

	if _, err := s.MemberActivity("ghost"); err == nil {
		t.Fatalf("activity for an unknown member must fail")
	}
}
