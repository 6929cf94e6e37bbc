package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dynamicio/invites/internal/config"
	"github.com/dynamicio/invites/internal/event"
	"github.com/dynamicio/invites/internal/share"
	"github.com/dynamicio/invites/internal/store"
)

// Server interface defines the methods needed by handlers
type Server interface {
	GetStore() *store.Store
	GetConfig() *config.Config
	GetShareBuilder() *share.Builder
	GetCurrentUser(r *http.Request) *event.User
	GetGuestID(w http.ResponseWriter, r *http.Request) string
	DeferRSVP(w http.ResponseWriter, r *http.Request, eventID string, status event.RSVPStatus)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps the store's sentinel errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, store.ErrFeaturedImmutable):
		WriteError(w, http.StatusForbidden, "featured events are read-only")
	case errors.Is(err, store.ErrNotHost):
		WriteError(w, http.StatusForbidden, "only the host can do that")
	case errors.Is(err, store.ErrInvalidEvent), errors.Is(err, store.ErrInvalidStatus):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "something went wrong")
	}
}
