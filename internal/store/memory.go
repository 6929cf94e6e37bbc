package store

import (
	"context"
	"sync"
	"time"

	"github.com/dynamicio/invites/internal/event"
)

// MemoryRemote is an in-process RemoteStore. It backs local development
// when no Firestore project is configured, and tests inject failures
// through FailWrites / FailReads.
type MemoryRemote struct {
	mu     sync.Mutex
	events map[string]*event.Event

	// FailWrites / FailReads, when set, make the corresponding operations
	// return the given error.
	FailWrites error
	FailReads  error
}

func NewMemoryRemote() *MemoryRemote {
	return &MemoryRemote{events: make(map[string]*event.Event)}
}

func (m *MemoryRemote) CreateEvent(ctx context.Context, ev *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.events[ev.ID] = ev.Clone()
	return nil
}

func (m *MemoryRemote) FetchEvent(ctx context.Context, id string) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ev.Clone(), nil
}

func (m *MemoryRemote) FetchAllEvents(ctx context.Context) ([]*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	out := make([]*event.Event, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev.Clone())
	}
	return out, nil
}

func (m *MemoryRemote) FetchEventsByHost(ctx context.Context, hostEmail string) ([]*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	var out []*event.Event
	for _, ev := range m.events {
		if ev.HostEmail == hostEmail {
			out = append(out, ev.Clone())
		}
	}
	return out, nil
}

func (m *MemoryRemote) UpdateEvent(ctx context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	ev, ok := m.events[id]
	if !ok {
		return ErrNotFound
	}
	applyFields(ev, fields)
	return nil
}

func (m *MemoryRemote) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.events, id)
	return nil
}

// Event returns the stored document for assertions in tests.
func (m *MemoryRemote) Event(id string) (*event.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok {
		return nil, false
	}
	return ev.Clone(), true
}

// applyFields merges an update's field map into a stored event, mirroring
// the whole-field overwrite a document store performs on merge writes.
func applyFields(ev *event.Event, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "title":
			ev.Title, _ = value.(string)
		case "description":
			ev.Description, _ = value.(string)
		case "location":
			ev.Location, _ = value.(string)
		case "startDate":
			ev.StartDate, _ = value.(string)
		case "startTime":
			ev.StartTime, _ = value.(string)
		case "endDate":
			ev.EndDate, _ = value.(string)
		case "endTime":
			ev.EndTime, _ = value.(string)
		case "backgroundImage":
			ev.BackgroundImage, _ = value.(string)
		case "playlist":
			ev.Playlist, _ = value.(string)
		case "photos":
			if v, ok := value.([]string); ok {
				ev.Photos = append([]string(nil), v...)
			}
		case "invitedGuests":
			if v, ok := value.([]event.InvitedGuest); ok {
				ev.InvitedGuests = append([]event.InvitedGuest(nil), v...)
			}
		case "rsvps":
			if v, ok := value.(map[string]event.RSVPStatus); ok {
				rsvps := make(map[string]event.RSVPStatus, len(v))
				for k, s := range v {
					rsvps[k] = s
				}
				ev.RSVPs = rsvps
			}
		case "updatedAt":
			if v, ok := value.(time.Time); ok {
				ev.UpdatedAt = &v
			}
		}
	}
}
