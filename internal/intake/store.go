package intake

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is the in-memory primary copy of all live sessions. Entries expire
// after the configured TTL of inactivity; every Update refreshes the clock.
// Mutations for the same session are serialized by a per-entry mutex so
// concurrent requests cannot lose updates; different sessions run in parallel.
type Store struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

type entry struct {
	mu   sync.Mutex
	sess *Session
}

// NewStore creates a session store whose entries are evicted after ttl of
// inactivity. A non-positive ttl keeps sessions forever.
func NewStore(ttl time.Duration) *Store {
	exp := ttl
	cleanup := ttl / 2
	if ttl <= 0 {
		exp = gocache.NoExpiration
		cleanup = 0
	}
	return &Store{
		cache: gocache.New(exp, cleanup),
		ttl:   exp,
	}
}

// entryFor returns the live entry for id, creating a fresh session on first
// reference.
func (st *Store) entryFor(id string) *entry {
	st.mu.Lock()
	defer st.mu.Unlock()

	if v, ok := st.cache.Get(id); ok {
		return v.(*entry)
	}
	e := &entry{sess: newSession(id)}
	st.cache.Set(id, e, st.ttl)
	return e
}

// Update runs fn against the session for id under its mutation lock, creating
// the session if it does not exist. The entry's TTL is refreshed on success.
func (st *Store) Update(id string, fn func(*Session) error) error {
	e := st.entryFor(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.sess); err != nil {
		return err
	}
	e.sess.UpdatedAt = time.Now().UTC()

	st.mu.Lock()
	st.cache.Set(id, e, st.ttl)
	st.mu.Unlock()
	return nil
}

// Exists reports whether a session for id is currently live. It does not
// create one.
func (st *Store) Exists(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.cache.Get(id)
	return ok
}

// Snapshot returns a copy of the session for id, if present.
func (st *Store) Snapshot(id string) (Session, bool) {
	st.mu.Lock()
	v, ok := st.cache.Get(id)
	st.mu.Unlock()
	if !ok {
		return Session{}, false
	}

	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := *e.sess
	cp.Exchanges = append([]Exchange(nil), e.sess.Exchanges...)
	return cp, true
}
