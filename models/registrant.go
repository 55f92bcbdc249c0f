// models/registrant.go
package models

import (
	"strings"
	"time"
)

// RSVP status values. Legacy rows may still carry booleans or free-text
// variants; NormalizeRSVPStatus folds those into this enum at the
// data-access boundary.
const (
	RSVPNotSent   = "not_sent"
	RSVPSent      = "sent"
	RSVPConfirmed = "confirmed"
)

// Ticket pipeline step markers, persisted so a retry resumes instead of
// re-running side effects (notably the email send).
const (
	TicketStepNone     = ""
	TicketStepUploaded = "uploaded"
	TicketStepEmailed  = "emailed"
)

type Registrant struct {
	ID  uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UID string `json:"uid" gorm:"uniqueIndex;not null"` // assigned once at insert, immutable

	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Occupation string `json:"occupation"`
	Birthdate  string `json:"birthdate"` // "2006-01-02"
	City       string `json:"city"`
	CarModel   string `json:"car_model,omitempty"`

	// Delivery/status flags — forward-only by design intent.
	EmailStatus     bool   `json:"email_status" gorm:"default:false"`
	ResendStatus    bool   `json:"resend_status" gorm:"default:false"`
	WhatsappStatus  bool   `json:"whatsapp_status" gorm:"default:false"`
	RSVPWhatsapp    bool   `json:"rsvp_whatsapp" gorm:"default:false"`
	RSVPStatus      string `json:"rsvp_status" gorm:"default:'not_sent'"`
	IsAttendedEvent bool   `json:"is_attended_event" gorm:"default:false"`
	IsGamePlayed    bool   `json:"is_game_played" gorm:"default:false"`

	// Public URL of the generated ticket image, set after a successful upload.
	ImageLink string `json:"image_link,omitempty"`

	// Ticket pipeline marker (see TicketStep* constants).
	TicketStep string `json:"ticket_step,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeRSVPStatus maps the loosely-typed historical values ("true",
// "yes", booleans rendered as strings, empty) onto the tagged enum.
func NormalizeRSVPStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RSVPConfirmed, "true", "yes":
		return RSVPConfirmed
	case RSVPSent:
		return RSVPSent
	default:
		return RSVPNotSent
	}
}
