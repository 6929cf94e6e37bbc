package store

import (
	"context"

	"github.com/dynamicio/invites/internal/event"
)

// RemoteStore is the boundary to the hosted document collection: one
// document per event, document id equal to the event id. Create replaces
// the whole document; Update merges the given fields into it.
type RemoteStore interface {
	CreateEvent(ctx context.Context, ev *event.Event) error
	FetchEvent(ctx context.Context, id string) (*event.Event, error)
	FetchAllEvents(ctx context.Context) ([]*event.Event, error)
	FetchEventsByHost(ctx context.Context, hostEmail string) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, id string, fields map[string]any) error
	DeleteEvent(ctx context.Context, id string) error
}
