// store/store.go
package store

import (
	"errors"
	"time"

	"event-registration-system/models"
)

// ErrNotFound is returned when a registrant or city config does not exist.
var ErrNotFound = errors.New("record not found")

// RegistrantFilter carries the admin listing filters. Zero values mean
// "no filter" for that dimension.
type RegistrantFilter struct {
	City       string
	AgeRange   string // "1990-2000" | "2000-2010" | "2010-2020" | "" (all)
	Search     string // matches name, email, mobile or uid

	EmailStatus    *bool
	ResendStatus   *bool
	WhatsappStatus *bool
	RSVPStatus     string // normalized enum value, "" = all

	StartDate time.Time // created_at range, zero = unbounded
	EndDate   time.Time

	SortBy   string // "created_at" (default) | "name"
	SortDesc bool

	Page    int // 1-based
	PerPage int // 0 = no pagination
}

// Registrants is the persistence boundary for registrant records. RSVP
// status normalization happens here so services only ever see the enum.
type Registrants interface {
	Create(r *models.Registrant) error
	GetByUID(uid string) (*models.Registrant, error)

	// UpdateFields patches the named columns for one registrant. The uid
	// column itself is never part of fields.
	UpdateFields(uid string, fields map[string]interface{}) error

	// BulkUpdateFields patches the named columns for a uid list, issuing
	// chunked statements, and returns how many rows were touched.
	BulkUpdateFields(uids []string, fields map[string]interface{}) (int64, error)

	List(f RegistrantFilter) ([]models.Registrant, int64, error)
	CountByCity(city string) (int64, error)

	// PendingTickets returns registrants whose ticket pipeline stalled
	// after upload but before the email went out.
	PendingTickets(olderThan time.Time) ([]models.Registrant, error)
}

// Cities reads the per-city event configuration. The application never
// writes these rows.
type Cities interface {
	GetByName(name string) (*models.CityConfig, error)
	ListLive() ([]models.CityConfig, error)
}
