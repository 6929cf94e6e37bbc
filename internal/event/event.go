package event

import (
	"strings"
	"time"
)

// RSVPStatus is a viewer's attendance intent for an event.
type RSVPStatus string

const (
	Going    RSVPStatus = "going"
	NotGoing RSVPStatus = "not-going"
	Maybe    RSVPStatus = "maybe"
)

// Valid reports whether s is one of the three recognized statuses.
func (s RSVPStatus) Valid() bool {
	return s == Going || s == NotGoing || s == Maybe
}

// InvitedGuest is an entry on an event's guest list. Email is empty for
// anonymous (device-only) guests.
type InvitedGuest struct {
	GuestID string    `json:"guestId" firestore:"guestId"`
	Email   string    `json:"email" firestore:"email"`
	AddedAt time.Time `json:"addedAt" firestore:"addedAt"`
}

// Event is the central entity: one document per event in the remote
// collection, keyed by ID.
//
// Dates and times are stored as the calendar strings the creator entered
// ("2006-01-02" and "15:04"), with no timezone attached; comparisons happen
// in the viewer's local timezone.
type Event struct {
	ID          string `json:"id" firestore:"id"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	Location    string `json:"location" firestore:"location"`

	StartDate string `json:"startDate" firestore:"startDate"`
	StartTime string `json:"startTime" firestore:"startTime"`
	EndDate   string `json:"endDate" firestore:"endDate"`
	EndTime   string `json:"endTime" firestore:"endTime"`

	HostName     string `json:"hostName" firestore:"hostName"`
	HostInitials string `json:"hostInitials" firestore:"hostInitials"`
	HostEmail    string `json:"hostEmail" firestore:"hostEmail"`

	// BackgroundImage is either an https URL or an encoded data URL.
	BackgroundImage string   `json:"backgroundImage" firestore:"backgroundImage"`
	Photos          []string `json:"photos" firestore:"photos"`
	Playlist        string   `json:"playlist" firestore:"playlist"`

	InvitedGuests []InvitedGuest        `json:"invitedGuests" firestore:"invitedGuests"`
	RSVPs         map[string]RSVPStatus `json:"rsvps" firestore:"rsvps"`

	IsFeatured bool `json:"isFeatured" firestore:"isFeatured"`

	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt"`
}

// IsHost reports whether the given account email is authorized to edit,
// delete or export this event.
func (e *Event) IsHost(email string) bool {
	return email != "" && e.HostEmail == email
}

// StartsAt combines StartDate and StartTime into a moment in loc. A missing
// time defaults to midnight. ok is false when the date does not parse.
func (e *Event) StartsAt(loc *time.Location) (t time.Time, ok bool) {
	startTime := e.StartTime
	if startTime == "" {
		startTime = "00:00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", e.StartDate+" "+startTime, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsUpcoming reports whether the event starts at or after now. Events whose
// start cannot be parsed classify as upcoming so a malformed date never
// hides someone's own event.
func (e *Event) IsUpcoming(now time.Time) bool {
	start, ok := e.StartsAt(now.Location())
	if !ok {
		return true
	}
	return !start.Before(now)
}

// Clone returns a deep copy, so callers can hand events out without
// exposing the store's internal state to mutation.
func (e *Event) Clone() *Event {
	c := *e
	if e.Photos != nil {
		// append over a non-nil base keeps empty slices empty rather than
		// nil, so they still serialize as [] instead of null.
		c.Photos = append([]string{}, e.Photos...)
	}
	if e.InvitedGuests != nil {
		c.InvitedGuests = append([]InvitedGuest{}, e.InvitedGuests...)
	}
	if e.RSVPs != nil {
		c.RSVPs = make(map[string]RSVPStatus, len(e.RSVPs))
		for k, v := range e.RSVPs {
			c.RSVPs[k] = v
		}
	}
	if e.UpdatedAt != nil {
		u := *e.UpdatedAt
		c.UpdatedAt = &u
	}
	return &c
}

// User is the authenticated viewer derived from the auth session. A nil
// *User means the viewer is an anonymous guest.
type User struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// UserFromProfile builds a User from an auth provider profile. An empty
// display name falls back to the local part of the email address.
func UserFromProfile(uid, email, displayName string) *User {
	name := displayName
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	source := displayName
	if source == "" {
		source = email
	}
	return &User{
		UID:      uid,
		Email:    email,
		Name:     name,
		Initials: Initials(source),
	}
}
