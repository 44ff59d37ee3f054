package export

import (
	"context"
	"fmt"
	"sort"

	"cfpexport/internal/store"
)

// BuildPresentations renders the presentation catalog: accepted, confirmed,
// scheduled proposals keyed by the primary speaker's identifier or the
// edition's curated override. Two proposals resolving to the same key
// collapse to one entry, the later in program order winning.
func BuildPresentations(ctx context.Context, ev *store.Event, resolver *Resolver, classifier *Classifier, overrides map[int64]string) (*Map, error) {
	proposals := scheduledProposals(ev)

	doc := NewMap()
	for _, p := range proposals {
		ids, err := speakerIDs(ctx, p, resolver)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("proposal %d (%s) has no speakers", p.ID, p.Title)
		}

		key := overrides[p.ID]
		if key == "" {
			key = ids[0]
		}

		refs := make([]SpeakerRef, 0, len(ids))
		for _, id := range ids {
			refs = append(refs, SpeakerRef{ID: id})
		}

		doc.Set(key, PresentationEntry{
			Title:       p.Title,
			Type:        classifier.PresentationType(p.Session.ID),
			Language:    Language(p.CustomFields),
			Description: NormalizeAbstract(p.Abstract),
			Speakers:    refs,
		})
	}
	return doc, nil
}

// scheduledProposals returns accepted, confirmed proposals with a session,
// ordered by conference day, slot start time and room grid position.
func scheduledProposals(ev *store.Event) []*store.Proposal {
	var proposals []*store.Proposal
	for _, p := range ev.Proposals {
		if p.Accepted && p.Confirmed && p.Session != nil {
			proposals = append(proposals, p)
		}
	}
	sort.SliceStable(proposals, func(i, j int) bool {
		si, sj := proposals[i].Session, proposals[j].Session
		if si.ConferenceDay != sj.ConferenceDay {
			return si.ConferenceDay < sj.ConferenceDay
		}
		if !si.StartTime.Equal(sj.StartTime) {
			return si.StartTime.Before(sj.StartTime)
		}
		return gridPosition(si) < gridPosition(sj)
	})
	return proposals
}

// speakerIDs resolves a proposal's speakers in assignment order, oldest
// first: the first id belongs to the primary speaker.
func speakerIDs(ctx context.Context, p *store.Proposal, resolver *Resolver) ([]string, error) {
	speakers := append([]*store.Speaker(nil), p.Speakers...)
	sort.SliceStable(speakers, func(i, j int) bool {
		return speakers[i].CreatedAt.Before(speakers[j].CreatedAt)
	})

	ids := make([]string, 0, len(speakers))
	for _, sp := range speakers {
		identity, err := resolver.Resolve(ctx, sp.Person)
		if err != nil {
			return nil, err
		}
		ids = append(ids, identity.ID)
	}
	return ids, nil
}

func gridPosition(s *store.Session) int {
	if s.Room == nil {
		return 0
	}
	return s.Room.GridPosition
}
