package event

import "time"

// Featured events are a static promotional seed set shown to every viewer.
// They are never persisted remotely, never editable, and carry a host email
// that cannot pass the host-authorization check for any real account.
func Featured() []*Event {
	return []*Event{
		{
			ID:              "featured-beach-party-2026",
			Title:           "Beach Party 🏖️",
			Description:     "Join us for an amazing day at the beach!",
			StartDate:       "2026-02-14",
			StartTime:       "14:00",
			EndDate:         "2026-02-14",
			EndTime:         "23:00",
			Location:        "Miami Beach, FL 📍",
			HostName:        "Dynamic.IO",
			HostInitials:    "DI",
			HostEmail:       "featured@invites.app",
			BackgroundImage: "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800&q=80",
			IsFeatured:      true,
			InvitedGuests:   []InvitedGuest{},
			RSVPs:           map[string]RSVPStatus{},
			Photos:          []string{},
			CreatedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
