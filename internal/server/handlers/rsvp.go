package handlers

import (
	"net/http"

	"github.com/dynamicio/invites/internal/event"
)

// HandleRSVPSubmit records the viewer's attendance intent. When the
// deployment gates RSVPs behind sign-in, an anonymous submission is parked
// rather than rejected: it replays once the viewer authenticates.
func HandleRSVPSubmit(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid form data")
			return
		}

		eventID := r.PathValue("id")
		status := event.RSVPStatus(r.FormValue("status"))
		if !status.Valid() {
			WriteError(w, http.StatusBadRequest, "status must be going, not-going or maybe")
			return
		}

		user := s.GetCurrentUser(r)
		if user == nil && s.GetConfig().RequireAuthForRSVP {
			s.DeferRSVP(w, r, eventID, status)
			WriteJSON(w, http.StatusAccepted, map[string]any{
				"deferred": true,
				"message":  "Sign in to confirm your RSVP.",
			})
			return
		}

		updated, err := s.GetStore().SubmitRSVP(eventID, status, user, s.GetGuestID(w, r))
		if err != nil {
			writeStoreError(w, err)
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{
			"event":  updated,
			"status": status,
		})
	}
}
