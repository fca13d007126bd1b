package editor

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultQuietPeriod is the delay after the last mutation before a save is
// committed.
const DefaultQuietPeriod = 1500 * time.Millisecond

const saveTimeout = 30 * time.Second

// Saver turns pending state into durable storage. Every mutation restarts a
// quiet-period timer; only the latest timer fires, so a burst of edits
// coalesces into one outgoing snapshot. When the timer elapses the loop
// writes the local fallback cache unconditionally, then fetches a fresh
// credential and upserts the active project.
//
// Save attempts are independent: a monotonic attempt counter tags each flush,
// and a completion whose attempt is no longer the newest is discarded so a
// late response can never overwrite the state of a newer attempt.
type Saver struct {
	store *Store
	api   *Client
	cache *Cache
	quiet time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	attempt atomic.Uint64
}

func NewSaver(store *Store, api *Client, cache *Cache, quiet time.Duration) *Saver {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	s := &Saver{
		store: store,
		api:   api,
		cache: cache,
		quiet: quiet,
	}
	store.mu.Lock()
	store.onMutate = s.bump
	store.onDelete = s.deleteRemote
	store.mu.Unlock()
	return s
}

// Load populates the store from the remote list, falling back to the local
// cache when the remote is unreachable or empty.
func (s *Saver) Load(ctx context.Context) error {
	projects, err := s.api.ListProjects(ctx)
	if err != nil || len(projects) == 0 {
		cached, cerr := s.cache.Load()
		if cerr == nil && len(cached) > 0 {
			s.store.Replace(cached)
			return nil
		}
		if err != nil {
			return err
		}
	}
	s.store.Replace(projects)
	return nil
}

// Close cancels any pending timer without flushing. An in-flight debounce is
// abandoned; the previous cycle's cache write is the recovery path.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// bump (re)starts the quiet-period timer. Earlier pending timers are
// cancelled: last-write-wins scheduling, not accumulation.
func (s *Saver) bump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.flush)
}

func (s *Saver) flush() {
	id := s.attempt.Add(1)

	// Local fallback first, unconditionally, so nothing is lost whatever
	// the network does next.
	snapshot := s.store.Projects()
	if err := s.cache.Write(snapshot); err != nil {
		log.Printf("[autosave] local cache write failed: %v", err)
	}

	active, ok := s.store.ActiveProject()
	if !ok {
		return
	}

	s.setStateIfCurrent(id, StateSyncing)

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.api.SaveProject(ctx, active); err != nil {
		log.Printf("[autosave] cloud save failed: %v", err)
		s.setStateIfCurrent(id, StateError)
		return
	}

	s.setStateIfCurrent(id, StateSynced)
}

// setStateIfCurrent applies a state transition only when id is still the
// newest attempt; stale completions are discarded.
func (s *Saver) setStateIfCurrent(id uint64, st SyncState) {
	if s.attempt.Load() != id {
		return
	}
	s.store.setState(st)
}

// deleteRemote is the fire-and-forget remote delete behind
// Store.DeleteProject. Failure is logged, not surfaced: the local deletion
// already succeeded, and the inconsistency window is accepted.
func (s *Saver) deleteRemote(projectID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.api.DeleteProject(ctx, projectID); err != nil {
			log.Printf("[autosave] delete project %s: %v", projectID, err)
		}
	}()
}
