// Package ics renders an event's program as an iCalendar feed for
// attendees' calendar apps.
package ics

import (
	"fmt"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"

	"cfpexport/internal/store"
)

// Render serializes every scheduled session of the event as a VEVENT.
// Session times are wall-clock values on the Nth conference day; they are
// anchored to the event's start date here.
func Render(ev *store.Event) (string, error) {
	if ev.StartDate.IsZero() {
		return "", fmt.Errorf("event %q has no start date", ev.Slug)
	}

	sessions := append([]*store.Session(nil), ev.Sessions...)
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].ConferenceDay != sessions[j].ConferenceDay {
			return sessions[i].ConferenceDay < sessions[j].ConferenceDay
		}
		if !sessions[i].StartTime.Equal(sessions[j].StartTime) {
			return sessions[i].StartTime.Before(sessions[j].StartTime)
		}
		return sessions[i].ID < sessions[j].ID
	})

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//cfpexport//" + ev.Slug + "//EN")

	for _, s := range sessions {
		e := cal.AddEvent(fmt.Sprintf("session-%d@%s", s.ID, ev.Slug))
		e.SetDtStampTime(ev.StartDate)
		e.SetStartAt(onDay(ev.StartDate, s.ConferenceDay, s.StartTime))
		e.SetEndAt(onDay(ev.StartDate, s.ConferenceDay, s.EndTime))
		e.SetSummary(sessionSummary(s))
		if s.Room != nil {
			e.SetLocation(s.Room.Name)
		}
		if s.Proposal != nil && s.Proposal.Abstract != "" {
			e.SetDescription(s.Proposal.Abstract)
		}
	}

	return cal.Serialize(), nil
}

func sessionSummary(s *store.Session) string {
	if s.Proposal != nil && s.Proposal.Title != "" {
		return s.Proposal.Title
	}
	return s.Title
}

func onDay(startDate time.Time, day int, clock time.Time) time.Time {
	date := startDate.AddDate(0, 0, day-1)
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, startDate.Location())
}
