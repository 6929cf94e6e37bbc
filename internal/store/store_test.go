package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dynamicio/invites/internal/event"
)

func TestAddAssignsDefaults(t *testing.T) {
	s := newTestStore(t, NewMemoryRemote())
	ev := addTestEvent(t, s)

	if ev.ID == "" {
		t.Error("expected a non-empty id")
	}
	if ev.InvitedGuests == nil || len(ev.InvitedGuests) != 0 {
		t.Errorf("expected empty invitedGuests, got %v", ev.InvitedGuests)
	}
	if ev.RSVPs == nil || len(ev.RSVPs) != 0 {
		t.Errorf("expected empty rsvps, got %v", ev.RSVPs)
	}
	if ev.CreatedAt.IsZero() {
		t.Error("expected createdAt to be stamped")
	}

	// The new event lands in the host's upcoming feed.
	feed := s.Feed(&event.User{Email: "h@x.com"}, "")
	if len(feed.UpcomingMine) != 1 || feed.UpcomingMine[0].ID != ev.ID {
		t.Errorf("event missing from host's upcoming feed: %v", ids(feed.UpcomingMine))
	}
}

func TestAddValidatesRequiredFields(t *testing.T) {
	s := newTestStore(t, NewMemoryRemote())
	_, err := s.Add(context.Background(), &event.Event{Title: "no dates"})
	if !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("got %v, want ErrInvalidEvent", err)
	}
}

func TestAddRemoteFailureIsAdvisory(t *testing.T) {
	remote := NewMemoryRemote()
	remote.FailWrites = errors.New("offline")
	s := newTestStore(t, remote)

	ev, err := s.Add(context.Background(), &event.Event{
		Title:     "Party",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-01",
		HostEmail: "h@x.com",
	})
	if err == nil {
		t.Fatal("expected a cloud-sync advisory error")
	}
	if ev == nil {
		t.Fatal("advisory error must still return the locally created event")
	}
	if _, ok := s.Get(ev.ID); !ok {
		t.Error("event missing locally after remote create failure")
	}
}

func TestLoadFallsBackToSnapshot(t *testing.T) {
	dir := t.TempDir()
	snap := NewSnapshot(filepath.Join(dir, "events.json"))

	// Seed the snapshot through a healthy store.
	remote := NewMemoryRemote()
	seeder := New(remote, snap)
	if _, err := seeder.Add(context.Background(), &event.Event{
		Title: "Party", StartDate: "2026-03-01", EndDate: "2026-03-01", HostEmail: "h@x.com",
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	if err := seeder.Close(); err != nil {
		t.Fatalf("closing seeder: %v", err)
	}

	// A fresh store whose remote is down loads from the snapshot.
	broken := NewMemoryRemote()
	broken.FailReads = errors.New("unreachable")
	s := New(broken, snap)
	t.Cleanup(func() { s.Close() })

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	all := s.All()
	var synced []*event.Event
	for _, ev := range all {
		if !ev.IsFeatured {
			synced = append(synced, ev)
		}
	}
	if len(synced) != 1 || synced[0].Title != "Party" {
		t.Errorf("expected the snapshotted event, got %v", ids(synced))
	}
}

func TestLoadWithoutRemoteOrSnapshotStartsEmpty(t *testing.T) {
	broken := NewMemoryRemote()
	broken.FailReads = errors.New("unreachable")
	snap := NewSnapshot(filepath.Join(t.TempDir(), "events.json"))

	s := New(broken, snap)
	t.Cleanup(func() { s.Close() })

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load must not fail when both sources are empty: %v", err)
	}
	for _, ev := range s.All() {
		if !ev.IsFeatured {
			t.Errorf("expected only featured events, found %s", ev.ID)
		}
	}
}

func TestGetOrFetchFallsBackToRemote(t *testing.T) {
	remote := NewMemoryRemote()
	s := newTestStore(t, remote)

	// An event created by another process exists remotely only.
	elsewhere := &event.Event{ID: "remote-1", Title: "Party", StartDate: "2026-03-01",
		EndDate: "2026-03-01", HostEmail: "h@x.com"}
	if err := remote.CreateEvent(context.Background(), elsewhere); err != nil {
		t.Fatalf("seeding remote: %v", err)
	}

	if _, ok := s.Get("remote-1"); ok {
		t.Fatal("event must not be local before the fetch")
	}
	ev, ok := s.GetOrFetch(context.Background(), "remote-1")
	if !ok || ev.Title != "Party" {
		t.Fatalf("expected the remote event, got ok=%v ev=%+v", ok, ev)
	}

	// The fetched event joined the local set.
	if _, ok := s.Get("remote-1"); !ok {
		t.Error("fetched event missing from the local set")
	}

	if _, ok := s.GetOrFetch(context.Background(), "never-existed"); ok {
		t.Error("a miss on both stores must report not found")
	}
}

func TestGetOrFetchToleratesRemoteFailure(t *testing.T) {
	remote := NewMemoryRemote()
	remote.FailReads = errors.New("unreachable")
	s := newTestStore(t, remote)
	ev := addTestEvent(t, s)

	// Local hits never touch the remote; remote failures read as a miss.
	if _, ok := s.GetOrFetch(context.Background(), ev.ID); !ok {
		t.Error("local event must resolve without the remote")
	}
	if _, ok := s.GetOrFetch(context.Background(), "remote-only"); ok {
		t.Error("a failing remote must read as not found, not panic")
	}
}

func TestMemoryRemoteFetchEventsByHost(t *testing.T) {
	remote := NewMemoryRemote()
	ctx := context.Background()
	for _, ev := range []*event.Event{
		{ID: "1", Title: "A", HostEmail: "h@x.com"},
		{ID: "2", Title: "B", HostEmail: "other@x.com"},
		{ID: "3", Title: "C", HostEmail: "h@x.com"},
	} {
		if err := remote.CreateEvent(ctx, ev); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	hosted, err := remote.FetchEventsByHost(ctx, "h@x.com")
	if err != nil {
		t.Fatalf("FetchEventsByHost: %v", err)
	}
	if len(hosted) != 2 {
		t.Errorf("expected 2 hosted events, got %v", ids(hosted))
	}
	for _, ev := range hosted {
		if ev.HostEmail != "h@x.com" {
			t.Errorf("stray event in host query: %+v", ev)
		}
	}
}

func TestUpdateAuthorization(t *testing.T) {
	s := newTestStore(t, NewMemoryRemote())
	ev := addTestEvent(t, s)

	title := "Renamed"
	if _, err := s.Update(ev.ID, "stranger@x.com", EventUpdate{Title: &title}); !errors.Is(err, ErrNotHost) {
		t.Errorf("non-host edit: got %v, want ErrNotHost", err)
	}

	updated, err := s.Update(ev.ID, "h@x.com", EventUpdate{Title: &title})
	if err != nil {
		t.Fatalf("host edit: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", updated.Title)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected updatedAt to be stamped")
	}
	if updated.StartDate != "2026-03-01" {
		t.Error("untouched fields must survive a partial update")
	}
}

func TestUpdateMergesToRemote(t *testing.T) {
	remote := NewMemoryRemote()
	s := newTestStore(t, remote)
	ev := addTestEvent(t, s)

	loc := "The Garden"
	if _, err := s.Update(ev.ID, "h@x.com", EventUpdate{Location: &loc}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	s.Flush()

	stored, ok := remote.Event(ev.ID)
	if !ok {
		t.Fatal("event missing from remote store")
	}
	if stored.Location != "The Garden" || stored.Title != "Party" {
		t.Errorf("remote merge wrong: %+v", stored)
	}
}

func TestDeleteAuthorization(t *testing.T) {
	remote := NewMemoryRemote()
	s := newTestStore(t, remote)
	ev := addTestEvent(t, s)

	if err := s.Delete(ev.ID, "stranger@x.com"); !errors.Is(err, ErrNotHost) {
		t.Errorf("non-host delete: got %v, want ErrNotHost", err)
	}
	if err := s.Delete(ev.ID, "h@x.com"); err != nil {
		t.Fatalf("host delete: %v", err)
	}
	if _, ok := s.Get(ev.ID); ok {
		t.Error("event still present locally after delete")
	}
	s.Flush()
	if _, ok := remote.Event(ev.ID); ok {
		t.Error("event still present remotely after delete")
	}
}

func TestFeaturedEventsAreImmutable(t *testing.T) {
	s := newTestStore(t, NewMemoryRemote())
	const featuredID = "featured-beach-party-2026"

	title := "Hijacked"
	if _, err := s.Update(featuredID, "featured@invites.app", EventUpdate{Title: &title}); !errors.Is(err, ErrFeaturedImmutable) {
		t.Errorf("update: got %v, want ErrFeaturedImmutable", err)
	}
	if err := s.Delete(featuredID, "featured@invites.app"); !errors.Is(err, ErrFeaturedImmutable) {
		t.Errorf("delete: got %v, want ErrFeaturedImmutable", err)
	}
	if _, err := s.AddPhoto(featuredID, "data:image/jpeg;base64,xx"); !errors.Is(err, ErrFeaturedImmutable) {
		t.Errorf("photo: got %v, want ErrFeaturedImmutable", err)
	}
}

func TestAddPhoto(t *testing.T) {
	remote := NewMemoryRemote()
	s := newTestStore(t, remote)
	ev := addTestEvent(t, s)

	updated, err := s.AddPhoto(ev.ID, "data:image/jpeg;base64,aGk=")
	if err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}
	if len(updated.Photos) != 1 {
		t.Fatalf("expected one photo, got %d", len(updated.Photos))
	}

	s.Flush()
	stored, _ := remote.Event(ev.ID)
	if len(stored.Photos) != 1 {
		t.Error("photo did not reach the remote store")
	}
}
