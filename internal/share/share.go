// Package share builds the outbound invite surface for an event: the
// canonical link plus mailto, SMS and WhatsApp deep links carrying a
// templated human-readable summary.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dynamicio/invites/internal/event"
	"github.com/dynamicio/invites/internal/utils"
)

// Links is everything the invite surface needs to share one event.
type Links struct {
	URL      string `json:"url"`
	Mailto   string `json:"mailto,omitempty"`
	SMS      string `json:"sms"`
	WhatsApp string `json:"whatsapp"`
}

// EventURL is the canonical per-event link.
func EventURL(baseURL, eventID string) string {
	return strings.TrimRight(baseURL, "/") + "/event/" + eventID
}

// Builder templates share links for one deployment.
type Builder struct {
	baseURL       string
	defaultRegion string
}

// NewBuilder creates a Builder. defaultRegion is the ISO country code used
// to normalize recipient phone numbers given without a country prefix.
func NewBuilder(baseURL, defaultRegion string) *Builder {
	return &Builder{baseURL: baseURL, defaultRegion: defaultRegion}
}

// Build assembles the share links for an event. recipientEmail and
// recipientPhone are optional; without them the mailto link is omitted and
// the SMS/WhatsApp links open with no addressee. An unparseable phone
// number falls back to the addressee-less links rather than failing the
// whole surface.
func (b *Builder) Build(ev *event.Event, recipientEmail, recipientPhone string) Links {
	eventURL := EventURL(b.baseURL, ev.ID)

	links := Links{
		URL:      eventURL,
		SMS:      "sms:?body=" + url.QueryEscape(messageText(ev, eventURL)),
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(messageText(ev, eventURL)),
	}

	if recipientEmail != "" {
		links.Mailto = fmt.Sprintf("mailto:%s?subject=%s&body=%s",
			recipientEmail,
			url.QueryEscape(fmt.Sprintf("You're invited to %s!", ev.Title)),
			url.QueryEscape(emailBody(ev, eventURL)))
	}

	if recipientPhone != "" {
		if normalized, err := utils.NormalizePhoneNumber(recipientPhone, b.defaultRegion); err == nil {
			text := url.QueryEscape(messageText(ev, eventURL))
			links.SMS = "sms:" + normalized + "?body=" + text
			links.WhatsApp = "https://wa.me/" + strings.TrimPrefix(normalized, "+") + "?text=" + text
		}
	}

	return links
}

func dateRange(ev *event.Event) string {
	return ev.StartDate + " - " + ev.EndDate
}

func locationOrTBD(ev *event.Event) string {
	if ev.Location == "" {
		return "Location TBD"
	}
	return ev.Location
}

func emailBody(ev *event.Event, eventURL string) string {
	var b strings.Builder
	b.WriteString("Hi there!\n\n")
	fmt.Fprintf(&b, "You've been invited to %q.\n\n", ev.Title)
	fmt.Fprintf(&b, "📅 Date: %s\n", dateRange(ev))
	fmt.Fprintf(&b, "📍 Location: %s\n\n", locationOrTBD(ev))
	if ev.Description != "" {
		b.WriteString(ev.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "View the event and RSVP here:\n%s\n\n", eventURL)
	b.WriteString("Hope to see you there!\n")
	fmt.Fprintf(&b, "- %s", ev.HostName)
	return b.String()
}

func messageText(ev *event.Event, eventURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You're invited to %q! 🎉\n\n", ev.Title)
	fmt.Fprintf(&b, "📅 %s\n", dateRange(ev))
	fmt.Fprintf(&b, "📍 %s\n\n", locationOrTBD(ev))
	fmt.Fprintf(&b, "RSVP here: %s", eventURL)
	return b.String()
}
