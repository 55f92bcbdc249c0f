// store/gorm.go
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"event-registration-system/models"

	"gorm.io/gorm"
)

// Supabase-era rows stored rsvp_status as booleans; these are the raw
// values that count as "confirmed" when filtering in SQL.
var confirmedAliases = []string{models.RSVPConfirmed, "true", "yes"}

const bulkUpdateChunkSize = 100

type GormRegistrants struct {
	DB *gorm.DB
}

func NewGormRegistrants(db *gorm.DB) *GormRegistrants {
	return &GormRegistrants{DB: db}
}

func (s *GormRegistrants) Create(r *models.Registrant) error {
	return s.DB.Create(r).Error
}

func (s *GormRegistrants) GetByUID(uid string) (*models.Registrant, error) {
	var r models.Registrant
	if err := s.DB.First(&r, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.RSVPStatus = models.NormalizeRSVPStatus(r.RSVPStatus)
	return &r, nil
}

func (s *GormRegistrants) UpdateFields(uid string, fields map[string]interface{}) error {
	res := s.DB.Model(&models.Registrant{}).Where("uid = ?", uid).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormRegistrants) BulkUpdateFields(uids []string, fields map[string]interface{}) (int64, error) {
	var total int64
	for i := 0; i < len(uids); i += bulkUpdateChunkSize {
		end := i + bulkUpdateChunkSize
		if end > len(uids) {
			end = len(uids)
		}
		res := s.DB.Model(&models.Registrant{}).
			Where("uid IN ?", uids[i:end]).
			Updates(fields)
		if res.Error != nil {
			return total, fmt.Errorf("bulk update chunk %d: %w", i/bulkUpdateChunkSize+1, res.Error)
		}
		total += res.RowsAffected
	}
	return total, nil
}

func (s *GormRegistrants) List(f RegistrantFilter) ([]models.Registrant, int64, error) {
	q := s.DB.Model(&models.Registrant{})

	if f.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(f.City)))
	}
	if f.AgeRange != "" {
		// Birth-year bands; ISO dates compare lexicographically.
		parts := strings.SplitN(f.AgeRange, "-", 2)
		if len(parts) == 2 {
			q = q.Where("birthdate >= ? AND birthdate < ?", parts[0]+"-01-01", parts[1]+"-01-01")
		}
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR mobile ILIKE ? OR uid ILIKE ?", like, like, like, like)
	}
	if f.EmailStatus != nil {
		q = q.Where("email_status = ?", *f.EmailStatus)
	}
	if f.ResendStatus != nil {
		q = q.Where("resend_status = ?", *f.ResendStatus)
	}
	if f.WhatsappStatus != nil {
		q = q.Where("whatsapp_status = ?", *f.WhatsappStatus)
	}
	switch f.RSVPStatus {
	case "":
	case models.RSVPConfirmed:
		q = q.Where("rsvp_status IN ?", confirmedAliases)
	case models.RSVPNotSent:
		q = q.Where("rsvp_status = ? OR rsvp_status = '' OR rsvp_status IS NULL", models.RSVPNotSent)
	default:
		q = q.Where("rsvp_status = ?", f.RSVPStatus)
	}
	if !f.StartDate.IsZero() {
		q = q.Where("created_at >= ?", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		q = q.Where("created_at < ?", f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	if f.SortBy == "name" {
		sortBy = "name"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	q = q.Order(sortBy + " " + dir)

	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * f.PerPage).Limit(f.PerPage)
	}

	var rows []models.Registrant
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].RSVPStatus = models.NormalizeRSVPStatus(rows[i].RSVPStatus)
	}
	return rows, total, nil
}

func (s *GormRegistrants) CountByCity(city string) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Registrant{}).
		Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(city))).
		Count(&n).Error
	return n, err
}

func (s *GormRegistrants) PendingTickets(olderThan time.Time) ([]models.Registrant, error) {
	var rows []models.Registrant
	err := s.DB.
		Where("ticket_step = ? AND updated_at < ?", models.TicketStepUploaded, olderThan).
		Find(&rows).Error
	return rows, err
}

type GormCities struct {
	DB *gorm.DB
}

func NewGormCities(db *gorm.DB) *GormCities {
	return &GormCities{DB: db}
}

func (s *GormCities) GetByName(name string) (*models.CityConfig, error) {
	var c models.CityConfig
	err := s.DB.First(&c, "LOWER(city_name) = ?", strings.ToLower(strings.TrimSpace(name))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *GormCities) ListLive() ([]models.CityConfig, error) {
	var cities []models.CityConfig
	if err := s.DB.Where("is_live = ?", true).Order("city_name ASC").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}
