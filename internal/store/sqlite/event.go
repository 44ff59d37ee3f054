package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"cfpexport/internal/store"
)

// Snapshot dumps store dates as "2006-01-02" and timestamps as
// "2006-01-02 15:04:05".
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// LoadEvent mirrors the postgres implementation against a snapshot
// database. Dates and timestamps are stored as text and parsed here.
func (c *Client) LoadEvent(ctx context.Context, slug string) (*store.Event, error) {
	ev, err := c.loadEventRow(ctx, slug)
	if err != nil {
		return nil, err
	}

	rooms, err := c.loadRooms(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	people, err := c.loadPeople(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	proposals, err := c.loadProposals(ctx, ev.ID, people)
	if err != nil {
		return nil, err
	}
	sessions, err := c.loadSessions(ctx, ev.ID, rooms, proposals)
	if err != nil {
		return nil, err
	}

	for _, p := range proposals {
		ev.Proposals = append(ev.Proposals, p)
	}
	// Map iteration order is random; keep the aggregate deterministic.
	sort.Slice(ev.Proposals, func(i, j int) bool { return ev.Proposals[i].ID < ev.Proposals[j].ID })
	ev.Sessions = sessions
	return ev, nil
}

func (c *Client) loadEventRow(ctx context.Context, slug string) (*store.Event, error) {
	var ev store.Event
	var startDate string
	err := c.db.QueryRowContext(ctx, `SELECT id, slug, name, start_date FROM events WHERE slug = ?`, slug).
		Scan(&ev.ID, &ev.Slug, &ev.Name, &startDate)
	if err != nil {
		return nil, fmt.Errorf("loading event %q: %w", slug, err)
	}
	ev.StartDate, err = time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing event start date: %w", err)
	}
	return &ev, nil
}

func (c *Client) loadRooms(ctx context.Context, eventID int64) (map[int64]*store.Room, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, number, name, grid_position FROM rooms WHERE event_id = ?`, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}
	defer rows.Close()

	rooms := make(map[int64]*store.Room)
	for rows.Next() {
		var r store.Room
		if err := rows.Scan(&r.ID, &r.Number, &r.Name, &r.GridPosition); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms[r.ID] = &r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rooms: %w", err)
	}
	return rooms, nil
}

func (c *Client) loadPeople(ctx context.Context, eventID int64) (map[int64]*store.Person, error) {
	query := `
SELECT DISTINCT p.id, p.name, p.email, COALESCE(p.bio, '')
FROM people p
JOIN speakers sp ON sp.person_id = p.id
JOIN proposals pr ON pr.id = sp.proposal_id
WHERE pr.event_id = ?
`
	rows, err := c.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading people: %w", err)
	}
	defer rows.Close()

	people := make(map[int64]*store.Person)
	for rows.Next() {
		var p store.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Bio); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		people[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}

	if err := c.loadAccounts(ctx, eventID, people); err != nil {
		return nil, err
	}
	return people, nil
}

func (c *Client) loadAccounts(ctx context.Context, eventID int64, people map[int64]*store.Person) error {
	query := `
SELECT s.person_id, s.provider, COALESCE(s.handle, ''), COALESCE(s.uid, '')
FROM services s
WHERE s.person_id IN (
    SELECT DISTINCT sp.person_id
    FROM speakers sp
    JOIN proposals pr ON pr.id = sp.proposal_id
    WHERE pr.event_id = ?
)
ORDER BY s.id
`
	rows, err := c.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("loading social accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var personID int64
		var a store.SocialAccount
		if err := rows.Scan(&personID, &a.Platform, &a.Handle, &a.UID); err != nil {
			return fmt.Errorf("scanning social account: %w", err)
		}
		if p, ok := people[personID]; ok {
			p.Accounts = append(p.Accounts, a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating social accounts: %w", err)
	}
	return nil
}

func (c *Client) loadProposals(ctx context.Context, eventID int64, people map[int64]*store.Person) (map[int64]*store.Proposal, error) {
	query := `
SELECT id, title, COALESCE(abstract, ''), state = 'accepted', confirmed_at IS NOT NULL, COALESCE(custom_fields, '{}')
FROM proposals
WHERE event_id = ?
ORDER BY id
`
	rows, err := c.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading proposals: %w", err)
	}
	defer rows.Close()

	proposals := make(map[int64]*store.Proposal)
	for rows.Next() {
		var p store.Proposal
		var fieldsJSON string
		if err := rows.Scan(&p.ID, &p.Title, &p.Abstract, &p.Accepted, &p.Confirmed, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("scanning proposal: %w", err)
		}
		if fieldsJSON != "" {
			if err := json.Unmarshal([]byte(fieldsJSON), &p.CustomFields); err != nil {
				return nil, fmt.Errorf("unmarshaling custom fields for proposal %d: %w", p.ID, err)
			}
		}
		proposals[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposals: %w", err)
	}

	if err := c.loadSpeakers(ctx, eventID, proposals, people); err != nil {
		return nil, err
	}
	return proposals, nil
}

func (c *Client) loadSpeakers(ctx context.Context, eventID int64, proposals map[int64]*store.Proposal, people map[int64]*store.Person) error {
	query := `
SELECT sp.id, sp.proposal_id, sp.person_id, COALESCE(sp.bio, ''), sp.created_at
FROM speakers sp
JOIN proposals pr ON pr.id = sp.proposal_id
WHERE pr.event_id = ?
ORDER BY sp.id
`
	rows, err := c.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("loading speakers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sp store.Speaker
		var proposalID, personID int64
		var createdAt string
		if err := rows.Scan(&sp.ID, &proposalID, &personID, &sp.Bio, &createdAt); err != nil {
			return fmt.Errorf("scanning speaker: %w", err)
		}
		var err error
		sp.CreatedAt, err = time.Parse(timestampLayout, createdAt)
		if err != nil {
			return fmt.Errorf("parsing speaker %d created_at: %w", sp.ID, err)
		}
		person, ok := people[personID]
		if !ok {
			return fmt.Errorf("speaker %d references unknown person %d", sp.ID, personID)
		}
		sp.Person = person
		if p, ok := proposals[proposalID]; ok {
			p.Speakers = append(p.Speakers, &sp)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating speakers: %w", err)
	}
	return nil
}

func (c *Client) loadSessions(ctx context.Context, eventID int64, rooms map[int64]*store.Room, proposals map[int64]*store.Proposal) ([]*store.Session, error) {
	query := `
SELECT s.id, s.title, s.conference_day, ts.start_time, ts.end_time, COALESCE(s.format, ''), s.room_id, s.proposal_id
FROM sessions s
JOIN time_slots ts ON ts.id = s.time_slot_id
WHERE s.event_id = ?
ORDER BY s.conference_day, ts.start_time, s.id
`
	rows, err := c.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*store.Session
	for rows.Next() {
		var s store.Session
		var start, end string
		var roomID, proposalID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Title, &s.ConferenceDay, &start, &end, &s.Format, &roomID, &proposalID); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if s.StartTime, err = time.Parse(timestampLayout, start); err != nil {
			return nil, fmt.Errorf("parsing session %d start time: %w", s.ID, err)
		}
		if s.EndTime, err = time.Parse(timestampLayout, end); err != nil {
			return nil, fmt.Errorf("parsing session %d end time: %w", s.ID, err)
		}
		if roomID.Valid {
			s.Room = rooms[roomID.Int64]
		}
		if proposalID.Valid {
			p, ok := proposals[proposalID.Int64]
			if !ok {
				return nil, fmt.Errorf("session %d references unknown proposal %d", s.ID, proposalID.Int64)
			}
			s.Proposal = p
			p.Session = &s
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}
