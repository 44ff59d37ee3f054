// Package lookup resolves raw social-platform user ids to current handles.
// The CfP database stores whichever the person entered; older records only
// carry the numeric id the platform assigned at OAuth time.
package lookup

import "context"

// HandleLookup resolves a platform user id to the account's current handle.
// Implementations must fail rather than guess: an unreachable or invalid id
// aborts the enclosing document build.
type HandleLookup interface {
	HandleFor(ctx context.Context, platform, uid string) (string, error)
}
