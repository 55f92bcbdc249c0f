package mail

import (
	"strings"
	"testing"
)

func TestTicketEmailBodyCityVariant(t *testing.T) {
	body := TicketEmailBody("Jane", "  VIJAYAWADA ", "https://cdn.example.com/t.png", "Event Team")
	if !strings.Contains(body, "Vijayawada show") {
		t.Fatal("expected the Vijayawada copy variant")
	}
	if !strings.Contains(body, "https://cdn.example.com/t.png") {
		t.Fatal("expected the ticket image URL")
	}
}

func TestTicketEmailBodyDefaultCopy(t *testing.T) {
	body := TicketEmailBody("Jane", "Chennai", "https://cdn.example.com/t.png", "Event Team")
	if !strings.Contains(body, "RSVP email prior the event") {
		t.Fatal("expected the default copy for an unmapped city")
	}
	if !strings.Contains(body, "Hi Jane,") {
		t.Fatal("expected the greeting")
	}
}

func TestRSVPEmailBody(t *testing.T) {
	body := RSVPEmailBody("Jane", "Drum Night Live", "20th November", "Music Academy",
		"https://x/yes", "https://x/no", "Event Team")
	for _, want := range []string{"Drum Night Live", "20th November", "Music Academy", "https://x/yes", "https://x/no"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestRSVPEmailBodyVenueFallback(t *testing.T) {
	body := RSVPEmailBody("Jane", "Drum Night Live", "TBA", "", "https://x/yes", "https://x/no", "Event Team")
	if !strings.Contains(body, "TBA") {
		t.Fatal("expected the TBA venue fallback")
	}
}
