package export

import (
	"context"
	"fmt"
	"strings"

	"cfpexport/internal/lookup"
	"cfpexport/internal/store"
)

// Identity is the resolved social identity for one person. ID is the
// canonical key used across all output documents; Twitter and Github are
// empty when the person has no such account.
type Identity struct {
	ID      string
	Twitter string
	Github  string
}

// Resolver derives identities from people's social accounts, calling out to
// the handle lookup only for accounts that carry a raw uid instead of a
// handle. Results are cached per person, so a build never looks up the same
// person twice.
type Resolver struct {
	lookup lookup.HandleLookup
	cache  map[int64]Identity
}

func NewResolver(l lookup.HandleLookup) *Resolver {
	return &Resolver{lookup: l, cache: make(map[int64]Identity)}
}

// Resolve returns the identity for a person. Twitter wins over GitHub for
// the canonical ID; with neither account the display name becomes the key,
// lowercased with spaces as underscores. Anything else in the name passes
// through unchanged - the fallback assumes full legal names, which are
// unique enough in practice.
func (r *Resolver) Resolve(ctx context.Context, p *store.Person) (Identity, error) {
	if id, ok := r.cache[p.ID]; ok {
		return id, nil
	}

	twitter, err := r.handle(ctx, p, store.PlatformTwitter)
	if err != nil {
		return Identity{}, err
	}
	github, err := r.handle(ctx, p, store.PlatformGithub)
	if err != nil {
		return Identity{}, err
	}

	id := Identity{Twitter: twitter, Github: github}
	switch {
	case twitter != "":
		id.ID = twitter
	case github != "":
		id.ID = github
	default:
		id.ID = strings.ReplaceAll(strings.ToLower(p.Name), " ", "_")
	}

	r.cache[p.ID] = id
	return id, nil
}

func (r *Resolver) handle(ctx context.Context, p *store.Person, platform string) (string, error) {
	if h := p.Handle(platform); h != "" {
		return h, nil
	}
	uid := p.UID(platform)
	if uid == "" {
		return "", nil
	}
	h, err := r.lookup.HandleFor(ctx, platform, uid)
	if err != nil {
		return "", fmt.Errorf("resolving %s handle for %s: %w", platform, p.Name, err)
	}
	return h, nil
}
