// Package guestid assigns each browser/device a stable anonymous identity,
// used to key RSVPs for viewers that never sign in. The token lives in a
// long-lived cookie and is never rotated; it only needs to be unique enough
// to avoid accidental RSVP collisions, so a non-cryptographic generator is
// acceptable.
package guestid

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// CookieName is the cookie that carries a browser's guest identity.
	CookieName = "invites-guest-id"

	cookieMaxAge = 10 * 365 * 24 * 60 * 60 // effectively forever
	suffixLen    = 9
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// New synthesizes a fresh guest token: a "guest_" prefix, the current
// epoch-millisecond timestamp, and a short random base-36 suffix.
func New() string {
	var b strings.Builder
	b.WriteString("guest_")
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < suffixLen; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}

// GetOrCreate returns the device's guest id, minting and setting one when
// the request carries none. A client that refuses cookies simply gets a
// fresh id on every request, degrading to session-scoped identity.
func GetOrCreate(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := New()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
