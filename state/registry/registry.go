package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/donlabs/feedverify/model/feed"
	"github.com/donlabs/feedverify/storage"
)

// Registry is the versioned store of oracle signer-set configurations. It
// holds, per digest, the current immutable configuration record; every
// mutation replaces the record for its digest with a fresh one and bumps
// the registry version. Snapshots taken earlier keep the records they hold.
//
// Mutations are serialized under one writer lock and either apply fully or
// leave the registry untouched. Reads go through Snapshot and never block
// on writers.
type Registry struct {
	log     zerolog.Logger
	mu      sync.RWMutex
	version *atomic.Uint64
	records map[feed.ConfigDigest]*feed.ConfigRecord
	store   storage.Configs
}

type Option func(*Registry)

// WithStore makes the registry persist every successful mutation to the
// given store. Persistence failures reject the mutation.
func WithStore(store storage.Configs) Option {
	return func(r *Registry) {
		r.store = store
	}
}

func New(log zerolog.Logger, opts ...Option) *Registry {
	r := &Registry{
		log:     log.With().Str("component", "config_registry").Logger(),
		version: atomic.NewUint64(0),
		records: make(map[feed.ConfigDigest]*feed.ConfigRecord),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Set validates the given configuration and inserts it, replacing any
// configuration already held under the digest. The new record is active.
// It returns the new registry version; callers must track the latest
// version, since prior ones are stale for future mutation. A rejected set
// leaves the registry unchanged.
func (r *Registry) Set(digest []byte, oracles [][]byte, f int) (uint64, error) {
	record, err := feed.NewConfigRecord(digest, oracles, f, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("invalid configuration: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	version, err := r.apply(record)
	if err != nil {
		return 0, err
	}

	r.log.Info().
		Hex("digest", record.Digest[:]).
		Int("oracles", len(record.Oracles)).
		Uint8("fault_tolerance", record.F).
		Uint64("version", version).
		Msg("configuration set")

	return version, nil
}

// Activate marks the configuration for the given digest as accepting
// reports. It is idempotent: activating an active configuration succeeds
// with no observable change beyond a fresh version.
func (r *Registry) Activate(digest feed.ConfigDigest) (uint64, error) {
	return r.setActive(digest, true)
}

// Deactivate marks the configuration for the given digest as rejecting
// reports. Like Activate, it is idempotent.
func (r *Registry) Deactivate(digest feed.ConfigDigest) (uint64, error) {
	return r.setActive(digest, false)
}

func (r *Registry) setActive(digest feed.ConfigDigest, active bool) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[digest]
	if !ok {
		return 0, UnknownDigestError{Digest: digest}
	}

	// records are immutable once published; the toggle allocates a
	// replacement instead of editing in place
	next := current.Copy()
	next.Active = active
	next.LastUpdated = time.Now().UTC()

	version, err := r.apply(next)
	if err != nil {
		return 0, err
	}

	r.log.Info().
		Hex("digest", digest[:]).
		Bool("active", active).
		Uint64("version", version).
		Msg("configuration toggled")

	return version, nil
}

// apply persists and installs a fully-formed record. Callers hold the
// writer lock.
func (r *Registry) apply(record *feed.ConfigRecord) (uint64, error) {
	if r.store != nil {
		err := r.store.Store(record)
		if err != nil {
			return 0, fmt.Errorf("could not persist configuration: %w", err)
		}
	}
	r.records[record.Digest] = record
	return r.version.Inc(), nil
}

// Restore seeds the registry with previously persisted records, keeping
// the newest record per digest. It is meant for startup, before the
// registry is shared.
func (r *Registry) Restore(records []*feed.ConfigRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		r.records[record.Digest] = record.Copy()
		r.version.Inc()
	}
}

// Snapshot returns an immutable point-in-time view of the registry.
// Records are shared by reference, which is safe because a published
// record is never edited in place.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make(map[feed.ConfigDigest]*feed.ConfigRecord, len(r.records))
	for digest, record := range r.records {
		records[digest] = record
	}
	return &Snapshot{
		version: r.version.Load(),
		records: records,
	}
}
