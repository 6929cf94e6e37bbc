package event

// GuestEntry is one invited guest joined with their RSVP status, shaped
// for display. Anonymous guests show as "Anonymous Guest" with the "??"
// avatar.
type GuestEntry struct {
	Email    string `json:"email"`
	Initials string `json:"initials"`
	AddedAt  string `json:"addedAt"`
}

// GuestListSummary buckets an event's responses by status.
type GuestListSummary struct {
	Going    []GuestEntry `json:"going"`
	NotGoing []GuestEntry `json:"notGoing"`
	Maybe    []GuestEntry `json:"maybe"`
}

// Total is the number of guests that have responded.
func (s GuestListSummary) Total() int {
	return len(s.Going) + len(s.NotGoing) + len(s.Maybe)
}

// GuestList walks the invited-guest list in order and buckets each guest by
// the status recorded under their guest id. Invited guests without an RSVP
// entry are omitted.
func (e *Event) GuestList() GuestListSummary {
	var summary GuestListSummary
	if e.RSVPs == nil || e.InvitedGuests == nil {
		return summary
	}
	for _, g := range e.InvitedGuests {
		entry := GuestEntry{Email: g.Email}
		if g.Email == "" {
			entry.Email = "Anonymous Guest"
			entry.Initials = "??"
		} else {
			entry.Initials = Initials(g.Email)
		}
		if !g.AddedAt.IsZero() {
			entry.AddedAt = g.AddedAt.Format("2006-01-02")
		}
		switch e.RSVPs[g.GuestID] {
		case Going:
			summary.Going = append(summary.Going, entry)
		case NotGoing:
			summary.NotGoing = append(summary.NotGoing, entry)
		case Maybe:
			summary.Maybe = append(summary.Maybe, entry)
		}
	}
	return summary
}
