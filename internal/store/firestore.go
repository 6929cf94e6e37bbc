package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dynamicio/invites/internal/event"
)

const eventsCollection = "events"

// FirestoreRemote implements RemoteStore against a Firestore collection.
// The client is constructed by the caller and shared with other consumers;
// closing it is the caller's responsibility.
type FirestoreRemote struct {
	client *firestore.Client
}

func NewFirestoreRemote(client *firestore.Client) *FirestoreRemote {
	return &FirestoreRemote{client: client}
}

func (f *FirestoreRemote) events() *firestore.CollectionRef {
	return f.client.Collection(eventsCollection)
}

func (f *FirestoreRemote) CreateEvent(ctx context.Context, ev *event.Event) error {
	if _, err := f.events().Doc(ev.ID).Set(ctx, ev); err != nil {
		return fmt.Errorf("failed to create event %s: %w", ev.ID, err)
	}
	return nil
}

func (f *FirestoreRemote) FetchEvent(ctx context.Context, id string) (*event.Event, error) {
	snap, err := f.events().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}

	var ev event.Event
	if err := snap.DataTo(&ev); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", id, err)
	}
	ev.ID = snap.Ref.ID
	return &ev, nil
}

func (f *FirestoreRemote) FetchAllEvents(ctx context.Context) ([]*event.Event, error) {
	return f.fetchQuery(ctx, f.events().Query, "failed to list events")
}

func (f *FirestoreRemote) FetchEventsByHost(ctx context.Context, hostEmail string) ([]*event.Event, error) {
	q := f.events().Where("hostEmail", "==", hostEmail)
	return f.fetchQuery(ctx, q, "failed to list events by host")
}

func (f *FirestoreRemote) fetchQuery(ctx context.Context, q firestore.Query, failMsg string) ([]*event.Event, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*event.Event
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", failMsg, err)
		}

		var ev event.Event
		if err := snap.DataTo(&ev); err != nil {
			return nil, fmt.Errorf("failed to decode event %s: %w", snap.Ref.ID, err)
		}
		ev.ID = snap.Ref.ID
		out = append(out, &ev)
	}
	return out, nil
}

func (f *FirestoreRemote) UpdateEvent(ctx context.Context, id string, fields map[string]any) error {
	if _, err := f.events().Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return nil
}

func (f *FirestoreRemote) DeleteEvent(ctx context.Context, id string) error {
	if _, err := f.events().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}
