package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Deep links use the app's custom URL scheme with stable UUID strings:
//
//	planora://event/{eventId}
//	planora://rsvp/{eventId}/{guestId}
//
// The routing layer on the client consumes these verbatim, so the formats
// here must never change shape.

func EventLink(scheme, eventID string) string {
	return fmt.Sprintf("%s://event/%s", scheme, eventID)
}

func RSVPLink(scheme, eventID, guestID string) string {
	return fmt.Sprintf("%s://rsvp/%s/%s", scheme, eventID, guestID)
}

// ParseEventLink extracts the event id from an event deep link.
func ParseEventLink(scheme, link string) (string, bool) {
	prefix := scheme + "://event/"
	if !strings.HasPrefix(link, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(link, prefix)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// ParseRSVPLink extracts (eventID, guestID) from an RSVP deep link.
func ParseRSVPLink(scheme, link string) (string, string, bool) {
	prefix := scheme + "://rsvp/"
	if !strings.HasPrefix(link, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(link, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		return "", "", false
	}
	if _, err := uuid.Parse(parts[0]); err != nil {
		return "", "", false
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		return "", "", false
	}
	return parts[0], parts[1], true
}
