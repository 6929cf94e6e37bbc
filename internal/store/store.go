// Package store holds the client-side event collection: the in-memory set
// the handlers render from, mirrored to a remote document store and backed
// up to a local snapshot file.
//
// Mutations are optimistic. Local state changes first and stands regardless
// of the remote outcome; remote write failures are logged, never rolled
// back and never retried. Remote writes after a mutation flow through a
// single background worker in issuance order. Event creation is the one
// write awaited, so its failure can surface to the user as a sync advisory.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dynamicio/invites/internal/event"
)

// Store is the single source of truth for the event set within one
// process. All exported methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	order    []string
	events   map[string]*event.Event
	featured []*event.Event

	remote RemoteStore
	snap   *Snapshot
	now    func() time.Time

	queue    chan func()
	closed   chan struct{}
	shutMu   sync.Mutex
	shutdown bool
}

// Option tweaks Store construction; tests use it to pin the clock.
type Option func(*Store)

// WithClock replaces the store's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a Store over the given remote and snapshot and starts the
// background writer. snap may be nil to disable local backups. Call Close
// to drain pending writes.
func New(remote RemoteStore, snap *Snapshot, opts ...Option) *Store {
	s := &Store{
		events:   make(map[string]*event.Event),
		featured: event.Featured(),
		remote:   remote,
		snap:     snap,
		now:      time.Now,
		queue:    make(chan func(), 64),
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go func() {
		defer close(s.closed)
		for fn := range s.queue {
			fn()
		}
	}()

	return s
}

// Load populates the store from the remote collection, retrying briefly
// before falling back to the local snapshot. With neither available the
// store starts empty; that is a defined state, not an error.
func (s *Store) Load(ctx context.Context) error {
	var events []*event.Event
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetched, err := s.remote.FetchAllEvents(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		events = fetched
		return nil
	})
	if err != nil {
		log.Printf("Warning: loading events from remote failed, falling back to snapshot: %v", err)
		if s.snap == nil {
			return nil
		}
		events, err = s.snap.Load()
		if err != nil {
			log.Printf("Warning: loading snapshot failed, starting empty: %v", err)
			return nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.events = make(map[string]*event.Event, len(events))
	for _, ev := range events {
		if ev.IsFeatured {
			// Featured events ship with the binary, never from storage.
			continue
		}
		if _, dup := s.events[ev.ID]; dup {
			continue
		}
		s.order = append(s.order, ev.ID)
		s.events[ev.ID] = ev.Clone()
	}
	return nil
}

// Close stops the background writer after draining queued writes and takes
// a final snapshot. Aggregates errors from the shutdown steps.
func (s *Store) Close() error {
	s.shutMu.Lock()
	if s.shutdown {
		s.shutMu.Unlock()
		return nil
	}
	s.shutdown = true
	close(s.queue)
	s.shutMu.Unlock()

	<-s.closed
	return s.saveSnapshot()
}

// Flush blocks until every write queued so far has been attempted. Tests
// and shutdown paths use it; request handlers never wait on it.
func (s *Store) Flush() {
	done := make(chan struct{})
	if !s.enqueue(func() { close(done) }) {
		return
	}
	<-done
}

// Get returns the event with the given id, searching the featured set as
// well as the synced set.
func (s *Store) Get(id string) (*event.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	return ev.Clone(), true
}

// GetOrFetch returns the event, consulting the remote store on a local
// miss. An invite link can point at an event created elsewhere after this
// process loaded; a fetched event joins the local set so later lookups
// and mutations see it.
func (s *Store) GetOrFetch(ctx context.Context, id string) (*event.Event, bool) {
	if ev, ok := s.Get(id); ok {
		return ev, true
	}

	fetched, err := s.remote.FetchEvent(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Error fetching event %s from remote store: %v", id, err)
		}
		return nil, false
	}
	if fetched.IsFeatured {
		return nil, false
	}

	s.mu.Lock()
	if _, dup := s.events[fetched.ID]; !dup {
		s.order = append(s.order, fetched.ID)
		s.events[fetched.ID] = fetched.Clone()
	}
	s.mu.Unlock()
	return fetched, true
}

// All returns every event in insertion order, featured set first.
func (s *Store) All() []*event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*event.Event, 0, len(s.featured)+len(s.order))
	for _, ev := range s.featured {
		out = append(out, ev.Clone())
	}
	for _, id := range s.order {
		out = append(out, s.events[id].Clone())
	}
	return out
}

// Feed resolves the visibility of the whole event set for one viewer.
func (s *Store) Feed(user *event.User, guestID string) Feed {
	return Resolve(s.All(), user, guestID, s.now())
}

// Add creates an event: assigns a time-based id, stamps createdAt and
// defaults the guest state, then writes through to the remote store. The
// event lands locally even when the remote write fails; the returned error
// is an advisory for the caller to surface, not a rollback.
func (s *Store) Add(ctx context.Context, ev *event.Event) (*event.Event, error) {
	if ev.Title == "" || ev.StartDate == "" || ev.EndDate == "" {
		return nil, ErrInvalidEvent
	}

	now := s.now()
	ev = ev.Clone()
	ev.ID = strconv.FormatInt(now.UnixMilli(), 10)
	ev.IsFeatured = false
	ev.CreatedAt = now
	ev.UpdatedAt = nil
	if ev.InvitedGuests == nil {
		ev.InvitedGuests = []event.InvitedGuest{}
	}
	if ev.RSVPs == nil {
		ev.RSVPs = map[string]event.RSVPStatus{}
	}
	if ev.Photos == nil {
		ev.Photos = []string{}
	}

	s.mu.Lock()
	s.order = append(s.order, ev.ID)
	s.events[ev.ID] = ev
	s.mu.Unlock()

	if err := s.saveSnapshot(); err != nil {
		log.Printf("Warning: failed to back up events locally: %v", err)
	}

	if err := s.remote.CreateEvent(ctx, ev); err != nil {
		log.Printf("Error saving event %s to remote store: %v", ev.ID, err)
		return ev.Clone(), fmt.Errorf("event created locally, cloud sync failed: %w", err)
	}
	return ev.Clone(), nil
}

// Update applies a partial edit. Only the host may edit, and featured
// events are immutable. The remote merge is queued fire-and-forget.
func (s *Store) Update(id string, viewerEmail string, upd EventUpdate) (*event.Event, error) {
	now := s.now()

	s.mu.Lock()
	ev, ok := s.lookup(id)
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if ev.IsFeatured {
		s.mu.Unlock()
		return nil, ErrFeaturedImmutable
	}
	if !ev.IsHost(viewerEmail) {
		s.mu.Unlock()
		return nil, ErrNotHost
	}
	upd.apply(ev, now)
	updated := ev.Clone()
	s.mu.Unlock()

	s.afterMutation(id, upd.fields(now))
	return updated, nil
}

// Delete removes an event. Only the host may delete; featured events
// cannot be deleted.
func (s *Store) Delete(id string, viewerEmail string) error {
	s.mu.Lock()
	ev, ok := s.lookup(id)
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if ev.IsFeatured {
		s.mu.Unlock()
		return ErrFeaturedImmutable
	}
	if !ev.IsHost(viewerEmail) {
		s.mu.Unlock()
		return ErrNotHost
	}
	delete(s.events, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.enqueue(func() {
		if err := s.remote.DeleteEvent(context.Background(), id); err != nil {
			log.Printf("Error deleting event %s from remote store: %v", id, err)
		}
	})
	if err := s.saveSnapshot(); err != nil {
		log.Printf("Warning: failed to back up events locally: %v", err)
	}
	return nil
}

// AddPhoto appends a photo to the event's shared album. Any viewer may
// contribute; featured events stay read-only.
func (s *Store) AddPhoto(id string, photo string) (*event.Event, error) {
	s.mu.Lock()
	ev, ok := s.lookup(id)
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if ev.IsFeatured {
		s.mu.Unlock()
		return nil, ErrFeaturedImmutable
	}
	ev.Photos = append(ev.Photos, photo)
	photos := append([]string(nil), ev.Photos...)
	updated := ev.Clone()
	s.mu.Unlock()

	s.afterMutation(id, map[string]any{"photos": photos})
	return updated, nil
}

// lookup finds an event by id in the synced set or the featured set.
// Callers must hold s.mu.
func (s *Store) lookup(id string) (*event.Event, bool) {
	if ev, ok := s.events[id]; ok {
		return ev, true
	}
	for _, ev := range s.featured {
		if ev.ID == id {
			return ev, true
		}
	}
	return nil, false
}

// afterMutation queues the remote merge for a completed local mutation and
// refreshes the local backup. Failures are logged only; local state stands.
func (s *Store) afterMutation(id string, fields map[string]any) {
	s.enqueue(func() {
		if err := s.remote.UpdateEvent(context.Background(), id, fields); err != nil {
			log.Printf("Error updating event %s in remote store: %v", id, err)
		}
	})
	if err := s.saveSnapshot(); err != nil {
		log.Printf("Warning: failed to back up events locally: %v", err)
	}
}

func (s *Store) enqueue(fn func()) bool {
	s.shutMu.Lock()
	defer s.shutMu.Unlock()
	if s.shutdown {
		return false
	}
	s.queue <- fn
	return true
}

func (s *Store) saveSnapshot() error {
	if s.snap == nil {
		return nil
	}
	s.mu.Lock()
	events := make([]*event.Event, 0, len(s.order))
	for _, id := range s.order {
		events = append(events, s.events[id].Clone())
	}
	s.mu.Unlock()
	return s.snap.Save(events)
}
