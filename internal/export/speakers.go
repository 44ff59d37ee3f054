package export

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"

	"cfpexport/internal/store"
)

// keynoteFormat is the session format name marking keynote slots.
const keynoteFormat = "Keynote"

type assignment struct {
	speaker  *store.Speaker
	proposal *store.Proposal
}

// BuildSpeakers renders the speaker directory. Speakers of accepted,
// confirmed, scheduled proposals are partitioned into a "keynotes" map in
// program order and a "speakers" map sorted by case-insensitive name. A
// person appearing in two talks keeps a single entry; the later occurrence
// in program order wins. The keynotes key is omitted when the edition has
// no keynote slots.
func BuildSpeakers(ctx context.Context, ev *store.Event, resolver *Resolver) (*Map, error) {
	assignments := scheduledAssignments(ev)

	keynotes := NewMap()
	speakers := NewMap()
	for _, a := range assignments {
		person := a.speaker.Person
		identity, err := resolver.Resolve(ctx, person)
		if err != nil {
			return nil, err
		}

		entry := SpeakerEntry{
			ID:           identity.ID,
			Name:         person.Name,
			Bio:          NormalizeBio(a.speaker.Bio, person.Bio),
			GithubID:     optional(identity.Github),
			TwitterID:    optional(identity.Twitter),
			GravatarHash: gravatarHash(person.Email),
		}

		if a.proposal.Session.Format == keynoteFormat {
			keynotes.Set(identity.ID, entry)
		} else {
			speakers.Set(identity.ID, entry)
		}
	}

	doc := NewMap()
	if keynotes.Len() > 0 {
		doc.Set("keynotes", keynotes)
	}
	doc.Set("speakers", sortByName(speakers))
	return doc, nil
}

// scheduledAssignments collects the speaker assignments of accepted and
// confirmed proposals with a scheduled session, ordered by conference day
// and slot start time.
func scheduledAssignments(ev *store.Event) []assignment {
	var assignments []assignment
	for _, p := range ev.Proposals {
		if !p.Accepted || !p.Confirmed || p.Session == nil {
			continue
		}
		for _, sp := range p.Speakers {
			assignments = append(assignments, assignment{speaker: sp, proposal: p})
		}
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		si, sj := assignments[i].proposal.Session, assignments[j].proposal.Session
		if si.ConferenceDay != sj.ConferenceDay {
			return si.ConferenceDay < sj.ConferenceDay
		}
		return si.StartTime.Before(sj.StartTime)
	})
	return assignments
}

func sortByName(speakers *Map) *Map {
	keys := speakers.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return strings.ToLower(entryName(speakers, keys[i])) < strings.ToLower(entryName(speakers, keys[j]))
	})

	sorted := NewMap()
	for _, key := range keys {
		value, _ := speakers.Get(key)
		sorted.Set(key, value)
	}
	return sorted
}

func entryName(m *Map, key string) string {
	value, _ := m.Get(key)
	entry, ok := value.(SpeakerEntry)
	if !ok {
		return ""
	}
	return entry.Name
}

func gravatarHash(email string) string {
	sum := md5.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
