package store

import (
	"github.com/dynamicio/invites/internal/event"
)

// SubmitRSVP records a viewer's attendance intent against an event.
//
// Identity for RSVP purposes is device-scoped: the rsvps key is always the
// device guest id, even for signed-in viewers, so an RSVP made before
// signing in stays attributable to the same person afterwards. A
// resubmission overwrites the previous status for that guest id. The guest
// list gains an entry for the id on first RSVP, carrying the account email
// when the viewer is signed in; this keeps the invariant that every rsvps
// key has a matching invitedGuests entry.
func (s *Store) SubmitRSVP(id string, status event.RSVPStatus, viewer *event.User, guestID string) (*event.Event, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if guestID == "" {
		return nil, ErrInvalidStatus
	}

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

	if ev.RSVPs == nil {
		ev.RSVPs = make(map[string]event.RSVPStatus)
	}
	ev.RSVPs[guestID] = status

	invited := false
	for _, g := range ev.InvitedGuests {
		if g.GuestID == guestID {
			invited = true
			break
		}
	}
	if !invited {
		email := ""
		if viewer != nil {
			email = viewer.Email
		}
		ev.InvitedGuests = append(ev.InvitedGuests, event.InvitedGuest{
			GuestID: guestID,
			Email:   email,
			AddedAt: now,
		})
	}

	rsvps := make(map[string]event.RSVPStatus, len(ev.RSVPs))
	for k, v := range ev.RSVPs {
		rsvps[k] = v
	}
	guests := append([]event.InvitedGuest(nil), ev.InvitedGuests...)
	updated := ev.Clone()
	s.mu.Unlock()

	// Whole-field overwrites: concurrent devices race last-write-wins at
	// the remote store. Known limitation of the consistency model.
	s.afterMutation(id, map[string]any{
		"rsvps":         rsvps,
		"invitedGuests": guests,
	})
	return updated, nil
}
