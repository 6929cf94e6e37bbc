package handlers

import (
	"net/http"

	"github.com/dynamicio/invites/internal/event"
)

// HandleFeed serves the viewer's home feed: their own events and the
// featured set, each split into upcoming and past.
func HandleFeed(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.GetCurrentUser(r)
		guestID := s.GetGuestID(w, r)

		feed := s.GetStore().Feed(user, guestID)

		viewer := user
		if viewer == nil {
			viewer = &event.User{Name: "Guest", Initials: "??"}
		}

		WriteJSON(w, http.StatusOK, map[string]any{
			"viewer": viewer,
			"feed":   feed,
		})
	}
}
