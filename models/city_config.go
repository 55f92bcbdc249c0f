// models/city_config.go
package models

import "time"

// CityConfig describes one event instance per city. Rows are managed
// out-of-band; the application only reads them.
type CityConfig struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CityName       string    `json:"city_name" gorm:"uniqueIndex;not null"`
	IsLive         bool      `json:"is_live" gorm:"default:false"`
	AllowedEntries int       `json:"allowed_entries" gorm:"default:0"` // 0 = unlimited
	Venue          string    `json:"venue"`
	StartTime      string    `json:"start_time"` // "18:00:00"
	EventDate      string    `json:"event_date"` // "2025-11-20"
	CreatedAt      time.Time `json:"created_at"`
}
