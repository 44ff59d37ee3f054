package export

import (
	"context"
	"strings"
	"testing"

	"cfpexport/internal/store"
)

func TestBuildSchedule(t *testing.T) {
	classifier := NewClassifier(testEdition())

	t.Run("days labelled and ordered", func(t *testing.T) {
		doc, err := BuildSchedule(context.Background(), testEvent(), NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		keys := doc.Keys()
		if len(keys) != 2 || keys[0] != "apr18" || keys[1] != "apr19" {
			t.Fatalf("expected [apr18 apr19], got %v", keys)
		}
	})

	t.Run("blocks in window order", func(t *testing.T) {
		doc, err := BuildSchedule(context.Background(), testEvent(), NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		day := mustDay(t, doc, "apr18")
		if len(day.Events) != 3 {
			t.Fatalf("expected 3 blocks, got %d", len(day.Events))
		}
		if day.Events[0].Begin != "10:00" || day.Events[1].Begin != "12:00" || day.Events[2].Begin != "13:00" {
			t.Fatalf("unexpected block order: %+v", day.Events)
		}
	})

	t.Run("keynote block has talks", func(t *testing.T) {
		doc, err := BuildSchedule(context.Background(), testEvent(), NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		block := mustDay(t, doc, "apr18").Events[0]
		if block.Type != TypeKeynote {
			t.Fatalf("expected keynote, got %q", block.Type)
		}
		if block.Talks == nil || block.Talks.Len() == 0 {
			t.Fatalf("expected non-empty talks map")
		}
		if id, _ := block.Talks.Get("101"); id != "graceopens" {
			t.Fatalf("expected graceopens in room 101, got %v", id)
		}
		if block.Name != "" {
			t.Fatalf("talk blocks carry no name, got %q", block.Name)
		}
	})

	t.Run("break block", func(t *testing.T) {
		doc, err := BuildSchedule(context.Background(), testEvent(), NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		block := mustDay(t, doc, "apr18").Events[1]
		if block.Type != TypeBreak || block.Name != "Lunch" {
			t.Fatalf("unexpected break block %+v", block)
		}
		if block.Talks != nil {
			t.Fatalf("break blocks carry no talks")
		}
	})

	t.Run("lightning talk block", func(t *testing.T) {
		doc, err := BuildSchedule(context.Background(), testEvent(), NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		day := mustDay(t, doc, "apr19")
		block := day.Events[len(day.Events)-1]
		if block.Type != TypeLT || block.Name != "Lightning Talks" {
			t.Fatalf("unexpected lt block %+v", block)
		}
	})

	t.Run("parallel talks merge into one block in grid order", func(t *testing.T) {
		a := testPerson("Ann Hall", "ann@example.com", twitterHandle("ann"))
		b := testPerson("Ben Side", "ben@example.com", twitterHandle("ben"))
		pa, sa := scheduled(1, 11, "Main Talk", 1, "10:00", "10:40", roomA, "Standard", assigned(a))
		pb, sb := scheduled(2, 12, "Annex Talk", 1, "10:00", "10:40", roomB, "Standard", assigned(b))
		// Listed annex-first to prove grid position drives the order.
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{pa, pb}, Sessions: []*store.Session{sb, sa}}

		doc, err := BuildSchedule(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		day := mustDay(t, doc, "apr18")
		if len(day.Events) != 1 {
			t.Fatalf("expected merged window, got %d blocks", len(day.Events))
		}
		talks := day.Events[0].Talks
		keys := talks.Keys()
		if len(keys) != 2 || keys[0] != "101" || keys[1] != "102" {
			t.Fatalf("expected grid-ordered rooms, got %v", keys)
		}
	})

	t.Run("keynote wins over lightning list in shared window", func(t *testing.T) {
		grace := testPerson("Grace Opening", "grace@example.com", twitterHandle("graceopens"))
		kp, ks := scheduled(1, 10, "Opening Keynote", 1, "10:00", "10:30", roomA, "Keynote", assigned(grace))
		lt := plainSession(30, "Lightning Talks", 1, "10:00", "10:30", roomB)
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{kp}, Sessions: []*store.Session{ks, lt}}

		doc, err := BuildSchedule(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		block := mustDay(t, doc, "apr18").Events[0]
		if block.Type != TypeKeynote {
			t.Fatalf("expected keynote, got %q", block.Type)
		}
		if block.Talks == nil || block.Talks.Len() != 1 {
			t.Fatalf("expected one talk, got %+v", block.Talks)
		}
	})

	t.Run("speaker override in talks map", func(t *testing.T) {
		p, s := scheduled(794, 11, "Data Workshop", 1, "10:00", "12:00", roomA, "Standard", assigned(testPerson("Lead One", "l@example.com")))
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		doc, err := BuildSchedule(context.Background(), ev, NewResolver(&mockLookup{}), classifier, map[int64]string{794: "mrkn_workshop"})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		talks := mustDay(t, doc, "apr18").Events[0].Talks
		if id, _ := talks.Get("101"); id != "mrkn_workshop" {
			t.Fatalf("expected override, got %v", id)
		}
	})

	t.Run("talk session without a room aborts the build", func(t *testing.T) {
		jane := testPerson("Jane Doe", "jane@example.com", twitterHandle("jane"))
		p, s := scheduled(1, 11, "Unplaced Talk", 1, "10:00", "10:40", roomA, "Standard", assigned(jane))
		s.Room = nil
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		_, err := BuildSchedule(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil)
		if err == nil {
			t.Fatalf("expected error")
		}
		if !strings.Contains(err.Error(), "no room") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("lookup failure aborts the build", func(t *testing.T) {
		jane := testPerson("Jane Doe", "jane@example.com", githubUID("7"))
		p, s := scheduled(1, 11, "Talk", 1, "10:00", "10:40", roomA, "Standard", assigned(jane))
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		if _, err := BuildSchedule(context.Background(), ev, NewResolver(&mockLookup{fail: true}), classifier, nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func mustDay(t *testing.T, doc *Map, label string) DaySchedule {
	t.Helper()
	value, ok := doc.Get(label)
	if !ok {
		t.Fatalf("missing day %q (have %v)", label, doc.Keys())
	}
	day, ok := value.(DaySchedule)
	if !ok {
		t.Fatalf("day %q is not a DaySchedule", label)
	}
	return day
}
