package store

import (
	"time"

	"github.com/dynamicio/invites/internal/event"
)

// EventUpdate is a partial edit of an event's descriptive and temporal
// fields. Nil pointers leave the field alone; this is the Go shape of the
// remote store's partial-field merge.
type EventUpdate struct {
	Title           *string
	Description     *string
	Location        *string
	StartDate       *string
	StartTime       *string
	EndDate         *string
	EndTime         *string
	BackgroundImage *string
	Playlist        *string
}

// apply merges the update into ev and stamps updatedAt.
func (u EventUpdate) apply(ev *event.Event, now time.Time) {
	setString(&ev.Title, u.Title)
	setString(&ev.Description, u.Description)
	setString(&ev.Location, u.Location)
	setString(&ev.StartDate, u.StartDate)
	setString(&ev.StartTime, u.StartTime)
	setString(&ev.EndDate, u.EndDate)
	setString(&ev.EndTime, u.EndTime)
	setString(&ev.BackgroundImage, u.BackgroundImage)
	setString(&ev.Playlist, u.Playlist)
	ev.UpdatedAt = &now
}

// fields produces the document-merge payload for the remote write, only
// the fields the update actually touches.
func (u EventUpdate) fields(now time.Time) map[string]any {
	out := map[string]any{"updatedAt": now}
	putString(out, "title", u.Title)
	putString(out, "description", u.Description)
	putString(out, "location", u.Location)
	putString(out, "startDate", u.StartDate)
	putString(out, "startTime", u.StartTime)
	putString(out, "endDate", u.EndDate)
	putString(out, "endTime", u.EndTime)
	putString(out, "backgroundImage", u.BackgroundImage)
	putString(out, "playlist", u.Playlist)
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func putString(fields map[string]any, key string, src *string) {
	if src != nil {
		fields[key] = *src
	}
}
