package store

import "context"

// Store is the read-only boundary to the CfP application's database. The
// export pipeline fetches one full Event aggregate and processes it in
// memory; filtering and ordering happen in the builders, not in queries.
type Store interface {
	Close(ctx context.Context) error

	// LoadEvent returns the event with the given slug, with proposals,
	// speaker assignments, people, social accounts, sessions, rooms and
	// time-slot fields eager-loaded and cross-linked. Returns an error if
	// no such event exists.
	LoadEvent(ctx context.Context, slug string) (*Event, error)
}
