package function

import (
	"strings"
	"testing"
	"time"
)

func TestBuildInviteMessage(t *testing.T) {
	start := time.Date(2026, 6, 6, 18, 30, 0, 0, time.UTC)
	end := time.Date(2026, 6, 6, 22, 0, 0, 0, time.UTC)

	msg := BuildInviteMessage("Nina Patel",
		&EventInfo{Title: "Summer Wedding", LocationName: "Lakeside Hall"},
		[]EventFunction{
			{Name: "Ceremony", StartTime: start, EndTime: &end, LocationName: "Lakeside Hall", DressCode: "Formal"},
		},
		"planora://rsvp/e/g", "https://planora.app/get")

	// Greets by first name only.
	if !strings.Contains(msg, "Hi Nina!") {
		t.Errorf("missing first-name greeting:\n%s", msg)
	}
	if strings.Contains(msg, "Hi Nina Patel") {
		t.Error("greeting used the full name")
	}
	for _, want := range []string{
		"You're invited to Summer Wedding!",
		"Ceremony",
		"Saturday, Jun 6 at 6:30 PM – 10:00 PM",
		"Lakeside Hall",
		"Dress code: Formal",
		"planora://rsvp/e/g",
		"https://planora.app/get",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildInviteMessageNoFunctions(t *testing.T) {
	msg := BuildInviteMessage("Omar",
		&EventInfo{Title: "Housewarming", LocationName: "12 Elm St"},
		nil, "planora://rsvp/e/g", "")

	// Falls back to the event location when no functions are scheduled.
	if !strings.Contains(msg, "12 Elm St") {
		t.Errorf("missing event location fallback:\n%s", msg)
	}
	if strings.Contains(msg, "Get the app") {
		t.Error("install line rendered without an install URL")
	}
}

func TestFormatWhenSpansDays(t *testing.T) {
	start := time.Date(2026, 6, 6, 21, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 7, 1, 0, 0, 0, time.UTC)
	got := formatWhen(start, &end)
	if !strings.Contains(got, "Sunday, Jun 7") {
		t.Errorf("cross-midnight range should repeat the date, got %q", got)
	}
}
