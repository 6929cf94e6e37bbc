package store

import (
	"testing"
	"time"

	"github.com/dynamicio/invites/internal/event"
)

func feedNow() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
}

func TestResolveMineInclusion(t *testing.T) {
	viewer := &event.User{Email: "a@x.com"}

	tests := []struct {
		name    string
		event   *event.Event
		user    *event.User
		guestID string
		mine    bool
	}{
		{
			name:  "host email matches regardless of rsvp state",
			event: &event.Event{ID: "1", StartDate: "2026-02-01", HostEmail: "a@x.com"},
			user:  viewer,
			mine:  true,
		},
		{
			name: "invited by account email",
			event: &event.Event{ID: "2", StartDate: "2026-02-01", HostEmail: "h@x.com",
				InvitedGuests: []event.InvitedGuest{{GuestID: "other", Email: "a@x.com"}}},
			user: viewer,
			mine: true,
		},
		{
			name: "invited by device guest id",
			event: &event.Event{ID: "3", StartDate: "2026-02-01", HostEmail: "h@x.com",
				InvitedGuests: []event.InvitedGuest{{GuestID: "g1"}}},
			guestID: "g1",
			mine:    true,
		},
		{
			name: "device rsvp with no invite or host relationship",
			event: &event.Event{ID: "4", StartDate: "2026-02-01", HostEmail: "h@x.com",
				RSVPs: map[string]event.RSVPStatus{"g1": event.Maybe}},
			guestID: "g1",
			mine:    true,
		},
		{
			name:    "no relationship at all",
			event:   &event.Event{ID: "5", StartDate: "2026-02-01", HostEmail: "h@x.com"},
			user:    viewer,
			guestID: "g1",
			mine:    false,
		},
		{
			name: "anonymous viewer does not match empty invite emails",
			event: &event.Event{ID: "6", StartDate: "2026-02-01", HostEmail: "h@x.com",
				InvitedGuests: []event.InvitedGuest{{GuestID: "someone-else", Email: ""}}},
			guestID: "g1",
			mine:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := Resolve([]*event.Event{tt.event}, tt.user, tt.guestID, feedNow())
			got := len(feed.UpcomingMine) == 1
			if got != tt.mine {
				t.Errorf("mine = %v, want %v", got, tt.mine)
			}
		})
	}
}

func TestResolveTemporalPartition(t *testing.T) {
	events := []*event.Event{
		{ID: "up", StartDate: "2026-01-02", HostEmail: "a@x.com"},
		{ID: "past", StartDate: "2025-12-31", HostEmail: "a@x.com"},
		{ID: "broken", StartDate: "garbage", HostEmail: "a@x.com"},
	}

	feed := Resolve(events, &event.User{Email: "a@x.com"}, "", feedNow())

	if len(feed.UpcomingMine) != 2 || feed.UpcomingMine[0].ID != "up" || feed.UpcomingMine[1].ID != "broken" {
		t.Errorf("unexpected upcoming partition: %v", ids(feed.UpcomingMine))
	}
	if len(feed.PastMine) != 1 || feed.PastMine[0].ID != "past" {
		t.Errorf("unexpected past partition: %v", ids(feed.PastMine))
	}
}

func TestResolveFeaturedBypassesOwnership(t *testing.T) {
	events := []*event.Event{
		{ID: "f1", StartDate: "2026-06-01", HostEmail: "featured@invites.app", IsFeatured: true},
		{ID: "f2", StartDate: "2020-06-01", HostEmail: "featured@invites.app", IsFeatured: true},
	}

	// A viewer with no relationship to anything still sees featured events.
	feed := Resolve(events, nil, "g-nobody", feedNow())

	if len(feed.UpcomingFeatured) != 1 || feed.UpcomingFeatured[0].ID != "f1" {
		t.Errorf("unexpected upcoming featured: %v", ids(feed.UpcomingFeatured))
	}
	if len(feed.PastFeatured) != 1 || feed.PastFeatured[0].ID != "f2" {
		t.Errorf("unexpected past featured: %v", ids(feed.PastFeatured))
	}
	if len(feed.UpcomingMine) != 0 || len(feed.PastMine) != 0 {
		t.Error("featured events must never enter the mine partitions")
	}
}

func TestResolvePreservesInsertionOrder(t *testing.T) {
	events := []*event.Event{
		{ID: "c", StartDate: "2026-03-01", HostEmail: "a@x.com"},
		{ID: "a", StartDate: "2026-01-05", HostEmail: "a@x.com"},
		{ID: "b", StartDate: "2026-02-01", HostEmail: "a@x.com"},
	}

	feed := Resolve(events, &event.User{Email: "a@x.com"}, "", feedNow())
	got := ids(feed.UpcomingMine)
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func ids(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.ID
	}
	return out
}
