package export

import (
	"testing"

	"cfpexport/internal/store"
)

func TestPresentationType(t *testing.T) {
	c := NewClassifier(testEdition())

	if got := c.PresentationType(10); got != TypeKeynote {
		t.Fatalf("expected keynote, got %q", got)
	}
	if got := c.PresentationType(20); got != TypeDiscussion {
		t.Fatalf("expected discussion, got %q", got)
	}
	if got := c.PresentationType(999); got != TypePresentation {
		t.Fatalf("expected presentation, got %q", got)
	}
}

func TestBlockType(t *testing.T) {
	c := NewClassifier(testEdition())

	_, keynote := scheduled(1, 10, "Keynote", 1, "10:00", "11:00", roomA, "Keynote", assigned(testPerson("K", "k@example.com")))
	_, talk := scheduled(2, 11, "Talk", 1, "13:00", "13:40", roomA, "Standard", assigned(testPerson("T", "t@example.com")))
	lt := plainSession(30, "Lightning Talks", 1, "17:00", "18:00", roomA)
	lunch := plainSession(40, "Lunch", 1, "12:00", "13:00", roomA)

	t.Run("keynote window", func(t *testing.T) {
		if got := c.BlockType([]*store.Session{keynote}); got != TypeKeynote {
			t.Fatalf("expected keynote, got %q", got)
		}
	})

	t.Run("talk window", func(t *testing.T) {
		if got := c.BlockType([]*store.Session{talk}); got != TypeTalk {
			t.Fatalf("expected talk, got %q", got)
		}
	})

	t.Run("lightning talk window", func(t *testing.T) {
		if got := c.BlockType([]*store.Session{lt}); got != TypeLT {
			t.Fatalf("expected lt, got %q", got)
		}
	})

	t.Run("break window", func(t *testing.T) {
		if got := c.BlockType([]*store.Session{lunch}); got != TypeBreak {
			t.Fatalf("expected break, got %q", got)
		}
	})

	t.Run("proposal wins over lightning list in shared window", func(t *testing.T) {
		if got := c.BlockType([]*store.Session{keynote, lt}); got != TypeKeynote {
			t.Fatalf("expected keynote, got %q", got)
		}
	})

	t.Run("talk plus unlisted sessions stays talk", func(t *testing.T) {
		if got := c.BlockType([]*store.Session{talk, lunch}); got != TypeTalk {
			t.Fatalf("expected talk, got %q", got)
		}
	})
}

func TestLanguage(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"japanese kanji", map[string]string{languageField: "日本語"}, "JA"},
		{"ja lowercase", map[string]string{languageField: "ja"}, "JA"},
		{"JP uppercase", map[string]string{languageField: "JP"}, "JA"},
		{"english", map[string]string{languageField: "English"}, "EN"},
		{"missing field defaults to japanese", map[string]string{}, "JA"},
		{"nil fields default to japanese", nil, "JA"},
		{"empty value is english", map[string]string{languageField: ""}, "EN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Language(tc.fields); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
