package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/dynamicio/invites/internal/event"
)

// HandleGuestListCSV lets the host download the event's guest list with
// each guest's RSVP status.
func HandleGuestListCSV(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.GetCurrentUser(r)
		if user == nil {
			WriteError(w, http.StatusUnauthorized, "sign in to continue")
			return
		}

		ev, ok := s.GetStore().Get(r.PathValue("id"))
		if !ok {
			WriteError(w, http.StatusNotFound, "event not found")
			return
		}
		if !ev.IsHost(user.Email) {
			WriteError(w, http.StatusForbidden, "only the host can export the guest list")
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "guests-"+ev.ID+".csv"))

		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"Guest", "Status", "Added"})
		writeGuestRows(cw, ev.GuestList())
		cw.Flush()
	}
}

func writeGuestRows(cw *csv.Writer, summary event.GuestListSummary) {
	sections := []struct {
		label   string
		entries []event.GuestEntry
	}{
		{"Going", summary.Going},
		{"Maybe", summary.Maybe},
		{"Not Going", summary.NotGoing},
	}
	for _, section := range sections {
		for _, g := range section.entries {
			_ = cw.Write([]string{g.Email, section.label, g.AddedAt})
		}
	}
}
