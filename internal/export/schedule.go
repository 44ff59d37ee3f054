package export

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cfpexport/internal/store"
)

// BuildSchedule renders the schedule grid: day label to the day's time
// blocks in window order. Sessions sharing one day and start/end window
// merge into a single block; blocks with talks map room number to speaker
// key in grid order, lightning-talk blocks and breaks carry the first
// session's title instead.
func BuildSchedule(ctx context.Context, ev *store.Event, resolver *Resolver, classifier *Classifier, overrides map[int64]string) (*Map, error) {
	byDay := make(map[int][]*store.Session)
	for _, s := range ev.Sessions {
		byDay[s.ConferenceDay] = append(byDay[s.ConferenceDay], s)
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	doc := NewMap()
	for _, day := range days {
		windows := groupByWindow(byDay[day])

		blocks := make([]TimeBlock, 0, len(windows))
		for _, sessions := range windows {
			block, err := buildBlock(ctx, sessions, resolver, classifier, overrides)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		}

		doc.Set(dayLabel(ev.StartDate, day), DaySchedule{Events: blocks})
	}
	return doc, nil
}

// groupByWindow splits a day's sessions into groups sharing a start/end
// window, ordered by (start, end) and by room grid position within each
// group. Groups are non-empty by construction.
func groupByWindow(sessions []*store.Session) [][]*store.Session {
	sorted := append([]*store.Session(nil), sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		}
		if !sorted[i].EndTime.Equal(sorted[j].EndTime) {
			return sorted[i].EndTime.Before(sorted[j].EndTime)
		}
		return gridPosition(sorted[i]) < gridPosition(sorted[j])
	})

	var windows [][]*store.Session
	for _, s := range sorted {
		n := len(windows)
		if n > 0 {
			last := windows[n-1][0]
			if last.StartTime.Equal(s.StartTime) && last.EndTime.Equal(s.EndTime) {
				windows[n-1] = append(windows[n-1], s)
				continue
			}
		}
		windows = append(windows, []*store.Session{s})
	}
	return windows
}

func buildBlock(ctx context.Context, sessions []*store.Session, resolver *Resolver, classifier *Classifier, overrides map[int64]string) (TimeBlock, error) {
	block := TimeBlock{
		Type:  classifier.BlockType(sessions),
		Begin: sessions[0].StartTime.Format("15:04"),
		End:   sessions[0].EndTime.Format("15:04"),
	}

	switch block.Type {
	case TypeKeynote, TypeTalk:
		talks := NewMap()
		for _, s := range sessions {
			if s.Proposal == nil {
				continue
			}
			if s.Room == nil {
				return TimeBlock{}, fmt.Errorf("session %d (%s) has a proposal but no room", s.ID, s.Title)
			}
			key := overrides[s.Proposal.ID]
			if key == "" {
				ids, err := speakerIDs(ctx, s.Proposal, resolver)
				if err != nil {
					return TimeBlock{}, err
				}
				if len(ids) == 0 {
					return TimeBlock{}, fmt.Errorf("proposal %d (%s) has no speakers", s.Proposal.ID, s.Proposal.Title)
				}
				key = ids[0]
			}
			talks.Set(s.Room.Number, key)
		}
		block.Talks = talks
	default:
		block.Name = sessions[0].Title
	}
	return block, nil
}

// dayLabel formats the Nth conference day as an abbreviated month and
// zero-padded day, lowercased ("apr18").
func dayLabel(startDate time.Time, day int) string {
	return strings.ToLower(startDate.AddDate(0, 0, day-1).Format("Jan02"))
}
