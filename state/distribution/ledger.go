package distribution

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/state/registry"
)

// Handle entitles one user to read one distributed snapshot. Handles are
// superseded, never edited: a later distribution installs a new handle for
// the user while any verification already running keeps the snapshot it
// was given.
type Handle struct {
	User     feed.Identity
	Version  uint64
	Snapshot *registry.Snapshot
}

// Ledger tracks which snapshot each consumer is entitled to read. It is
// bookkeeping only: it never verifies reports and never mutates the
// registry, and snapshots pass through it by reference since they are
// immutable once published.
type Ledger struct {
	log     zerolog.Logger
	mu      sync.RWMutex
	handles map[feed.Identity]*Handle
}

func NewLedger(log zerolog.Logger) *Ledger {
	return &Ledger{
		log:     log.With().Str("component", "distribution_ledger").Logger(),
		handles: make(map[feed.Identity]*Handle),
	}
}

// Distribute associates each user with the given snapshot and returns the
// installed handles. Distribution is per-user and deliberately non-atomic
// across the list: a failing user is skipped and reported while the
// remaining users still receive their handle, so callers must tolerate
// partial propagation.
func (l *Ledger) Distribute(users []feed.Identity, snapshot *registry.Snapshot) (map[feed.Identity]*Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var failures *multierror.Error
	updated := make(map[feed.Identity]*Handle, len(users))
	for _, user := range users {
		if user == "" {
			failures = multierror.Append(failures, fmt.Errorf("cannot distribute to empty user identity"))
			continue
		}
		handle := &Handle{
			User:     user,
			Version:  snapshot.Version(),
			Snapshot: snapshot,
		}
		l.handles[user] = handle
		updated[user] = handle
	}

	l.log.Info().
		Uint64("version", snapshot.Version()).
		Int("users", len(updated)).
		Msg("snapshot distributed")

	return updated, failures.ErrorOrNil()
}

// Revoke removes the handles of the given users. Unknown users are
// ignored. In-flight verifications keep the snapshot they hold.
func (l *Ledger) Revoke(users []feed.Identity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, user := range users {
		delete(l.handles, user)
	}
}

// HandleFor returns the handle currently held by the given user, or a
// NoHandleError.
func (l *Ledger) HandleFor(user feed.Identity) (*Handle, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	handle, ok := l.handles[user]
	if !ok {
		return nil, NoHandleError{User: user}
	}
	return handle, nil
}
