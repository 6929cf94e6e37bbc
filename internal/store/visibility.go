package store

import (
	"time"

	"github.com/dynamicio/invites/internal/event"
)

// Feed is one viewer's home view of the event set, split into the events
// that belong to them and the featured seed set everyone sees, each
// partitioned by start time. Slices preserve the source collection's
// insertion order.
type Feed struct {
	UpcomingMine     []*event.Event `json:"upcomingMine"`
	PastMine         []*event.Event `json:"pastMine"`
	UpcomingFeatured []*event.Event `json:"upcomingFeatured"`
	PastFeatured     []*event.Event `json:"pastFeatured"`
}

// Resolve computes which events appear on a viewer's feed. An event is
// theirs when any of four independent relationships holds: they host it,
// their account email is on the guest list, their device id is on the guest
// list, or their device id has an RSVP recorded. Featured events bypass the
// ownership test and appear for every viewer.
func Resolve(events []*event.Event, user *event.User, guestID string, now time.Time) Feed {
	var feed Feed
	for _, ev := range events {
		if ev.IsFeatured {
			if ev.IsUpcoming(now) {
				feed.UpcomingFeatured = append(feed.UpcomingFeatured, ev)
			} else {
				feed.PastFeatured = append(feed.PastFeatured, ev)
			}
			continue
		}
		if !isMine(ev, user, guestID) {
			continue
		}
		if ev.IsUpcoming(now) {
			feed.UpcomingMine = append(feed.UpcomingMine, ev)
		} else {
			feed.PastMine = append(feed.PastMine, ev)
		}
	}
	return feed
}

func isMine(ev *event.Event, user *event.User, guestID string) bool {
	if user != nil && ev.IsHost(user.Email) {
		return true
	}
	for _, g := range ev.InvitedGuests {
		if user != nil && g.Email != "" && g.Email == user.Email {
			return true
		}
		if guestID != "" && g.GuestID == guestID {
			return true
		}
	}
	if guestID != "" {
		if _, ok := ev.RSVPs[guestID]; ok {
			return true
		}
	}
	return false
}
