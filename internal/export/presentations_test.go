package export

import (
	"context"
	"testing"
	"time"

	"cfpexport/internal/store"
)

func TestBuildPresentations(t *testing.T) {
	classifier := NewClassifier(testEdition())

	t.Run("full catalog", func(t *testing.T) {
		doc, err := BuildPresentations(context.Background(), testEvent(), NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if doc.Len() != 3 {
			t.Fatalf("expected 3 entries, got %v", doc.Keys())
		}

		keynote := mustPresentation(t, doc, "graceopens")
		if keynote.Type != TypeKeynote {
			t.Fatalf("expected keynote type, got %q", keynote.Type)
		}
		talk := mustPresentation(t, doc, "azane")
		if talk.Type != TypePresentation {
			t.Fatalf("expected presentation type, got %q", talk.Type)
		}
		if talk.Title != "Types for Rubyists" {
			t.Fatalf("unexpected title %q", talk.Title)
		}
		if talk.Description != "Types for Rubyists abstract" {
			t.Fatalf("unexpected description %q", talk.Description)
		}
	})

	t.Run("entries in program order", func(t *testing.T) {
		doc, err := BuildPresentations(context.Background(), testEvent(), NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		keys := doc.Keys()
		want := []string{"graceopens", "azane", "bob_young"}
		for i, key := range want {
			if keys[i] != key {
				t.Fatalf("expected keys %v, got %v", want, keys)
			}
		}
	})

	t.Run("discussion classification", func(t *testing.T) {
		p, s := scheduled(1, 20, "Committers Panel", 1, "15:00", "16:00", roomA, "Standard", assigned(testPerson("Pat Chair", "pat@example.com")))
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		doc, err := BuildPresentations(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if entry := mustPresentation(t, doc, "pat_chair"); entry.Type != TypeDiscussion {
			t.Fatalf("expected discussion, got %q", entry.Type)
		}
	})

	t.Run("language detection", func(t *testing.T) {
		p, s := scheduled(1, 11, "Talk", 1, "10:00", "10:40", roomA, "Standard", assigned(testPerson("A Speaker", "a@example.com")))
		p.CustomFields = map[string]string{languageField: "日本語"}
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		doc, err := BuildPresentations(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if entry := mustPresentation(t, doc, "a_speaker"); entry.Language != "JA" {
			t.Fatalf("expected JA, got %q", entry.Language)
		}
	})

	t.Run("speakers ordered by assignment age", func(t *testing.T) {
		first := testPerson("First Author", "f@example.com", twitterHandle("first"))
		second := testPerson("Second Author", "s@example.com", twitterHandle("second"))
		speakers := assigned(second, first)
		// Flip creation times so "first" is the older assignment.
		speakers[1].CreatedAt = speakers[0].CreatedAt.Add(-48 * time.Hour)
		p, s := scheduled(1, 11, "Joint Talk", 1, "10:00", "10:40", roomA, "Standard", speakers)
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		doc, err := BuildPresentations(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		entry := mustPresentation(t, doc, "first")
		if len(entry.Speakers) != 2 || entry.Speakers[0].ID != "first" || entry.Speakers[1].ID != "second" {
			t.Fatalf("unexpected speaker order %+v", entry.Speakers)
		}
	})

	t.Run("curated override keys the entry", func(t *testing.T) {
		p, s := scheduled(794, 11, "Data Workshop", 1, "10:00", "12:00", roomA, "Standard", assigned(testPerson("Lead One", "l@example.com")))
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		doc, err := BuildPresentations(context.Background(), ev, NewResolver(&mockLookup{}), classifier, map[int64]string{794: "mrkn_workshop"})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if _, ok := doc.Get("mrkn_workshop"); !ok {
			t.Fatalf("expected override key, got %v", doc.Keys())
		}
	})

	t.Run("key collision keeps later proposal", func(t *testing.T) {
		// Documented quirk, not a bug: two talks by the same person
		// collapse to one catalog entry.
		jane := testPerson("Jane Doe", "jane@example.com", twitterHandle("jane"))
		p1, s1 := scheduled(1, 11, "Morning Talk", 1, "10:00", "10:40", roomA, "Standard", assigned(jane))
		p2, s2 := scheduled(2, 12, "Evening Talk", 1, "17:00", "17:40", roomA, "Standard", assigned(jane))
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p1, p2}, Sessions: []*store.Session{s1, s2}}

		doc, err := BuildPresentations(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if doc.Len() != 1 {
			t.Fatalf("expected 1 entry, got %v", doc.Keys())
		}
		if entry := mustPresentation(t, doc, "jane"); entry.Title != "Evening Talk" {
			t.Fatalf("expected later proposal to win, got %q", entry.Title)
		}
	})

	t.Run("proposal without speakers fails", func(t *testing.T) {
		p, s := scheduled(1, 11, "Ghost Talk", 1, "10:00", "10:40", roomA, "Standard", nil)
		ev := &store.Event{StartDate: startDate, Proposals: []*store.Proposal{p}, Sessions: []*store.Session{s}}

		if _, err := BuildPresentations(context.Background(), ev, NewResolver(&mockLookup{}), classifier, nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func mustPresentation(t *testing.T, doc *Map, key string) PresentationEntry {
	t.Helper()
	value, ok := doc.Get(key)
	if !ok {
		t.Fatalf("missing entry %q (have %v)", key, doc.Keys())
	}
	entry, ok := value.(PresentationEntry)
	if !ok {
		t.Fatalf("entry %q is not a PresentationEntry", key)
	}
	return entry
}
