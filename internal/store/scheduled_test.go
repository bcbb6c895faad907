package store

import (
	"errors"
	"testing"

	"missionctl/internal/models"
)

func TestScheduledTimeValidation(t *testing.T) {
	s := newTestStore(t)

	for _, bad := range []string{"9:00", "24:00", "12:60", "noon", ""} {
		_, err := s.CreateScheduled(models.CreateScheduledRequest{Title: "Bad", Time: bad})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("time %q must fail validation, got %v", bad, err)
		}
	}

	st, err := s.CreateScheduled(models.CreateScheduledRequest{Title: "Ok", Time: "23:59", DayOfWeek: 6})
	if err != nil {
		t.Fatalf("create scheduled: %v", err)
	}

	if _, err := s.UpdateScheduled(st.ID, models.UpdateScheduledRequest{Time: strptr("25:00")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("update must validate the time too, got %v", err)
	}
}

func TestScheduledSortedByDayThenTime(t *testing.T) {
	s := newTestStore(t)

	mk := func(title, tod string, day int) {
		t.Helper()
		if _, err := s.CreateScheduled(models.CreateScheduledRequest{Title: title, Time: tod, DayOfWeek: day}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	mk("fri-late", "18:00", 5)
	mk("mon-early", "08:00", 1)
	mk("mon-late", "17:30", 1)
	mk("sun", "12:00", 0)

	items, err := s.ListScheduled()
	if err != nil {
		t.Fatalf("list scheduled: %v", err)
	}
	want := []string{"sun", "mon-early", "mon-late", "fri-late"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i := range want {
		if items[i].Title != want[i] {
			t.Fatalf("expected order %v, got %+v", want, items)
		}
	}
}

func TestScheduledUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)

	st, _ := s.CreateScheduled(models.CreateScheduledRequest{Title: "Sync", Time: "10:00", DayOfWeek: 2})
	if st.Color == "" {
		t.Fatalf("scheduled slots get a default color")
	}

	moved, err := s.UpdateScheduled(st.ID, models.UpdateScheduledRequest{DayOfWeek: intptr(4)})
	if err != nil {
		t.Fatalf("update scheduled: %v", err)
	}
	if moved.DayOfWeek != 4 || moved.Time != "10:00" {
		t.Fatalf("partial update must only touch sent fields: %+v", moved)
	}

	if err := s.DeleteScheduled(st.ID); err != nil {
		t.Fatalf("delete scheduled: %v", err)
	}
	if err := s.DeleteScheduled(st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete must report not found, got %v", err)
	}
}
