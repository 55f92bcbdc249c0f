// utils/format.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName trims and title-cases a registrant name for email copy
// ("jane DOE" -> "Jane Doe"). A Caser is stateful, so build one per call.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(name)))
}

// NormalizeCity lowercases and trims a city name for comparisons. City is
// stored as free text, not a foreign key, so every lookup goes through this.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// FormatPhone formats a mobile number for the WATI API: digits only,
// international format without the + sign. A bare 10-digit number is
// assumed to be Indian and gets the 91 country code.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) == 10 {
		cleaned = "91" + cleaned
	}
	return cleaned
}

// FormatEventDate renders an ISO date as "20th November" for RSVP email
// copy. Unparseable or empty input falls back to "TBA".
func FormatEventDate(isoDate string) string {
	if isoDate == "" {
		return "TBA"
	}
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return "TBA"
	}
	return fmt.Sprintf("%d%s %s", t.Day(), ordinalSuffix(t.Day()), t.Month().String())
}

func ordinalSuffix(n int) string {
	if n > 3 && n < 21 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// TicketObjectKey builds the R2 object key for a generated ticket. The
// millisecond timestamp keeps retries from colliding on the same uid.
func TicketObjectKey(uid string, now time.Time) string {
	return fmt.Sprintf("tickets/%s-%d.png", uid, now.UnixMilli())
}
