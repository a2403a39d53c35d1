package function

import (
	"fmt"
	"strings"
	"time"
)

// BuildInviteMessage renders the plain-text invitation for one guest. The
// text is channel-agnostic; adapters wrap it in whatsapp:// / sms: /
// mailto: encodings downstream.
func BuildInviteMessage(guestName string, event *EventInfo, functions []EventFunction, rsvpLink, installURL string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Hi %s! 🎉\n\n", firstName(guestName)))
	b.WriteString(fmt.Sprintf("You're invited to %s!\n", event.Title))

	for _, f := range functions {
		b.WriteString(fmt.Sprintf("\n📅 %s — %s", f.Name, formatWhen(f.StartTime, f.EndTime)))
		if f.LocationName != "" {
			b.WriteString(fmt.Sprintf("\n📍 %s", f.LocationName))
		}
		if f.DressCode != "" {
			b.WriteString(fmt.Sprintf("\n👔 Dress code: %s", f.DressCode))
		}
		b.WriteString("\n")
	}

	if len(functions) == 0 && event.LocationName != "" {
		b.WriteString(fmt.Sprintf("📍 %s\n", event.LocationName))
	}

	b.WriteString(fmt.Sprintf("\nPlease RSVP here: %s\n", rsvpLink))
	if installURL != "" {
		b.WriteString(fmt.Sprintf("\nGet the app: %s", installURL))
	}

	return b.String()
}

func firstName(full string) string {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return full
	}
	return parts[0]
}

func formatWhen(start time.Time, end *time.Time) string {
	s := start.Format("Monday, Jan 2 at 3:04 PM")
	if end != nil && end.After(start) {
		if end.YearDay() == start.YearDay() && end.Year() == start.Year() {
			return s + " – " + end.Format("3:04 PM")
		}
		return s + " – " + end.Format("Monday, Jan 2 at 3:04 PM")
	}
	return s
}
