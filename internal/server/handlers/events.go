package handlers

import (
	"net/http"
	"strings"

	"github.com/dynamicio/invites/internal/event"
	"github.com/dynamicio/invites/internal/store"
)

// HandleCreateEvent creates an event for the signed-in host. A remote sync
// failure is an advisory, not a rejection: the event exists locally and the
// response says so.
func HandleCreateEvent(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid form data")
			return
		}

		user := s.GetCurrentUser(r)

		startTime := r.FormValue("startTime")
		if startTime == "" {
			startTime = "12:00"
		}
		endTime := r.FormValue("endTime")
		if endTime == "" {
			endTime = "15:00"
		}

		ev := &event.Event{
			Title:           strings.TrimSpace(r.FormValue("title")),
			Description:     strings.TrimSpace(r.FormValue("description")),
			Location:        strings.TrimSpace(r.FormValue("location")),
			StartDate:       r.FormValue("startDate"),
			StartTime:       startTime,
			EndDate:         r.FormValue("endDate"),
			EndTime:         endTime,
			BackgroundImage: r.FormValue("backgroundImage"),
			HostName:        user.Name,
			HostInitials:    user.Initials,
			HostEmail:       user.Email,
		}

		created, err := s.GetStore().Add(r.Context(), ev)
		if err != nil && created == nil {
			writeStoreError(w, err)
			return
		}

		resp := map[string]any{"event": created}
		if err != nil {
			resp["warning"] = "Event created locally. Cloud sync failed - check your internet connection."
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleEventDetail serves one event with its guest-list summary and share
// links. Invite links can reference events created elsewhere, so a local
// miss falls back to the remote store. A true miss is a defined not-found
// state, never a crash.
func HandleEventDetail(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, ok := s.GetStore().GetOrFetch(r.Context(), r.PathValue("id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "event not found")
			return
		}

		user := s.GetCurrentUser(r)
		guestID := s.GetGuestID(w, r)

		var myRSVP event.RSVPStatus
		if status, ok := ev.RSVPs[guestID]; ok {
			myRSVP = status
		}

		isHost := user != nil && ev.IsHost(user.Email)

		WriteJSON(w, http.StatusOK, map[string]any{
			"event":     ev,
			"guestList": ev.GuestList(),
			"myRsvp":    myRSVP,
			"isHost":    isHost,
			"share":     s.GetShareBuilder().Build(ev, r.URL.Query().Get("email"), r.URL.Query().Get("phone")),
		})
	}
}

// HandleUpdateEvent applies a partial edit. Only the fields present in the
// form are touched.
func HandleUpdateEvent(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.GetCurrentUser(r)
		if user == nil {
			WriteError(w, http.StatusUnauthorized, "sign in to continue")
			return
		}
		if err := r.ParseForm(); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid form data")
			return
		}

		upd := store.EventUpdate{
			Title:           formField(r, "title"),
			Description:     formField(r, "description"),
			Location:        formField(r, "location"),
			StartDate:       formField(r, "startDate"),
			StartTime:       formField(r, "startTime"),
			EndDate:         formField(r, "endDate"),
			EndTime:         formField(r, "endTime"),
			BackgroundImage: formField(r, "backgroundImage"),
			Playlist:        formField(r, "playlist"),
		}

		updated, err := s.GetStore().Update(r.PathValue("id"), user.Email, upd)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"event": updated})
	}
}

// HandleDeleteEvent removes an event, host only.
func HandleDeleteEvent(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.GetCurrentUser(r)
		if user == nil {
			WriteError(w, http.StatusUnauthorized, "sign in to continue")
			return
		}

		if err := s.GetStore().Delete(r.PathValue("id"), user.Email); err != nil {
			writeStoreError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// formField returns a pointer to the form value only when the field was
// actually submitted, so absent fields stay untouched in partial updates.
func formField(r *http.Request, key string) *string {
	if _, ok := r.Form[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}
