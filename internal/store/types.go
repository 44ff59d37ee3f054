package store

import "time"

const (
	PlatformTwitter = "twitter"
	PlatformGithub  = "github"
)

// Event is one conference edition's full program data, eager-loaded in a
// single LoadEvent call. All fields are read-only snapshots; nothing in the
// export pipeline mutates them.
type Event struct {
	ID        int64
	Slug      string
	Name      string
	StartDate time.Time
	Proposals []*Proposal
	Sessions  []*Session
}

// Proposal is a submitted talk post-review. A proposal without a Session has
// not been scheduled and never appears in the exported documents.
type Proposal struct {
	ID           int64
	Title        string
	Abstract     string
	Accepted     bool
	Confirmed    bool
	CustomFields map[string]string
	Speakers     []*Speaker
	Session      *Session
}

// Speaker links a Proposal to a Person. CreatedAt defines speaking order:
// the oldest assignment is the primary speaker.
type Speaker struct {
	ID        int64
	Bio       string
	CreatedAt time.Time
	Person    *Person
}

type Person struct {
	ID       int64
	Name     string
	Email    string
	Bio      string
	Accounts []SocialAccount
}

// SocialAccount carries either a handle or a raw platform user id that still
// needs a handle lookup.
type SocialAccount struct {
	Platform string
	Handle   string
	UID      string
}

// Handle returns the explicit handle for a platform, or "".
func (p *Person) Handle(platform string) string {
	for _, a := range p.Accounts {
		if a.Platform == platform && a.Handle != "" {
			return a.Handle
		}
	}
	return ""
}

// UID returns the raw platform user id for a platform, or "".
func (p *Person) UID(platform string) string {
	for _, a := range p.Accounts {
		if a.Platform == platform && a.UID != "" {
			return a.UID
		}
	}
	return ""
}

// Session is a scheduled program slot. Proposal is nil for breaks and
// lightning-talk blocks.
type Session struct {
	ID            int64
	Title         string
	ConferenceDay int
	StartTime     time.Time
	EndTime       time.Time
	Format        string
	Room          *Room
	Proposal      *Proposal
}

type Room struct {
	ID           int64
	Number       string
	Name         string
	GridPosition int
}
