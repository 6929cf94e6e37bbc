package store

import "errors"

var (
	// ErrNotFound is returned when no event exists for the given id.
	ErrNotFound = errors.New("event not found")

	// ErrFeaturedImmutable is returned when a mutation targets a featured
	// event. Featured events are static seed data, read-only for everyone.
	ErrFeaturedImmutable = errors.New("featured events are read-only")

	// ErrNotHost is returned when a viewer who is not the event's host
	// attempts to edit, delete or export it.
	ErrNotHost = errors.New("only the host can modify this event")

	// ErrInvalidEvent is returned when a new event is missing required
	// fields.
	ErrInvalidEvent = errors.New("title, start date and end date are required")

	// ErrInvalidStatus is returned for an RSVP status outside
	// going/not-going/maybe.
	ErrInvalidStatus = errors.New("invalid rsvp status")
)
