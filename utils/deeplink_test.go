package utils

import "testing"

const (
	testEventID = "11111111-1111-1111-1111-111111111111"
	testGuestID = "22222222-2222-2222-2222-222222222222"
)

func TestEventLinkRoundTrip(t *testing.T) {
	link := EventLink("planora", testEventID)
	if link != "planora://event/"+testEventID {
		t.Fatalf("link = %q", link)
	}

	id, ok := ParseEventLink("planora", link)
	if !ok || id != testEventID {
		t.Fatalf("parse = %q, %v", id, ok)
	}
}

func TestRSVPLinkRoundTrip(t *testing.T) {
	link := RSVPLink("planora", testEventID, testGuestID)
	if link != "planora://rsvp/"+testEventID+"/"+testGuestID {
		t.Fatalf("link = %q", link)
	}

	eventID, guestID, ok := ParseRSVPLink("planora", link)
	if !ok || eventID != testEventID || guestID != testGuestID {
		t.Fatalf("parse = %q, %q, %v", eventID, guestID, ok)
	}
}

func TestParseRejectsMalformedLinks(t *testing.T) {
	cases := []string{
		"",
		"https://event/" + testEventID,
		"planora://event/" + testEventID,              // wrong kind for rsvp parser
		"planora://rsvp/" + testEventID,               // missing guest segment
		"planora://rsvp/not-a-uuid/" + testGuestID,    // bad event id
		"planora://rsvp/" + testEventID + "/oops",     // bad guest id
		"planora://rsvp/" + testEventID + "/x/y",      // too many segments
		"otherapp://rsvp/" + testEventID + "/" + testGuestID, // wrong scheme
	}
	for _, link := range cases {
		if _, _, ok := ParseRSVPLink("planora", link); ok {
			t.Errorf("ParseRSVPLink accepted %q", link)
		}
	}

	if _, ok := ParseEventLink("planora", "planora://event/not-a-uuid"); ok {
		t.Error("ParseEventLink accepted a non-uuid id")
	}
	if _, ok := ParseEventLink("planora", "planora://rsvp/"+testEventID+"/"+testGuestID); ok {
		t.Error("ParseEventLink accepted an rsvp link")
	}
}
