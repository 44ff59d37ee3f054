package export

import (
	"strings"

	"cfpexport/internal/config"
	"cfpexport/internal/store"
)

// Program category tags.
const (
	TypeKeynote      = "keynote"
	TypeDiscussion   = "discussion"
	TypePresentation = "presentation"
	TypeTalk         = "talk"
	TypeLT           = "lt"
	TypeBreak        = "break"
)

// languageField is the custom proposal field holding the spoken language.
const languageField = "spoken language in your talk"

// japaneseSynonyms are the values submitters have actually entered for a
// Japanese-language talk. Compared case-insensitively.
var japaneseSynonyms = map[string]struct{}{
	"ja":       {},
	"jp":       {},
	"japanese": {},
	"日本語":      {},
	"maybe japanese (not sure until fix the contents)": {},
}

// Classifier maps sessions onto program categories using the edition's
// curated session-id lists. Classification never inspects free text; the
// lists are the single source of truth, with one structural fallback
// (proposal-bearing windows are talks, everything else is a break).
type Classifier struct {
	keynotes    map[int64]struct{}
	discussions map[int64]struct{}
	lightning   map[int64]struct{}
}

func NewClassifier(edition config.EditionConfig) *Classifier {
	return &Classifier{
		keynotes:    idSet(edition.KeynoteSessions),
		discussions: idSet(edition.DiscussionSessions),
		lightning:   idSet(edition.LightningTalkSessions),
	}
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// PresentationType classifies a single scheduled proposal for the catalog.
func (c *Classifier) PresentationType(sessionID int64) string {
	if _, ok := c.keynotes[sessionID]; ok {
		return TypeKeynote
	}
	if _, ok := c.discussions[sessionID]; ok {
		return TypeDiscussion
	}
	return TypePresentation
}

// BlockType classifies a group of sessions sharing one day/time window for
// the schedule grid. Proposal-bearing sessions take precedence: a window
// with any talk in it is never a lightning-talk block or a break.
func (c *Classifier) BlockType(sessions []*store.Session) string {
	hasProposal := false
	isKeynote := false
	inLightning := false
	for _, s := range sessions {
		if s.Proposal != nil {
			hasProposal = true
		}
		if _, ok := c.keynotes[s.ID]; ok {
			isKeynote = true
		}
		if _, ok := c.lightning[s.ID]; ok {
			inLightning = true
		}
	}
	switch {
	case hasProposal && isKeynote:
		return TypeKeynote
	case hasProposal:
		return TypeTalk
	case inLightning:
		return TypeLT
	default:
		return TypeBreak
	}
}

// Language derives the catalog language tag from the proposal's custom
// fields. Missing field defaults to JA: the home-crowd language is the
// overwhelmingly common case for proposals that skipped the question.
func Language(fields map[string]string) string {
	value, ok := fields[languageField]
	if !ok {
		return "JA"
	}
	if _, ok := japaneseSynonyms[strings.ToLower(value)]; ok {
		return "JA"
	}
	return "EN"
}
