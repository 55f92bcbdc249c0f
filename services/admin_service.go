package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"event-registration-system/middleware"
	"event-registration-system/models"
	"event-registration-system/store"

	"github.com/gofiber/fiber/v2"
)

// Allowed birth-year bands for the age filter.
var validAgeRanges = map[string]bool{
	"1990-2000": true,
	"2000-2010": true,
	"2010-2020": true,
}

// Flag columns the bulk-status endpoint may touch. The uid and rsvp_status
// columns are deliberately absent: the uid is immutable and RSVP moves only
// through the send/confirm flow.
var bulkStatusFields = map[string]bool{
	"email_status":    true,
	"resend_status":   true,
	"whatsapp_status": true,
	"rsvp_whatsapp":   true,
}

type AdminService struct {
	Registrants store.Registrants
	Cities      store.Cities
}

func NewAdminService(registrants store.Registrants, cities store.Cities) *AdminService {
	return &AdminService{Registrants: registrants, Cities: cities}
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Login checks the env-configured admin credentials and issues a signed
// session token with expiry. Nothing about the session lives client-side
// beyond the token itself.
func (s *AdminService) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required fields (user_id or password).",
		})
	}

	if req.UserID != os.Getenv("ADMIN_USER_ID") || req.Password != os.Getenv("ADMIN_PASSWORD") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false, "message": "Invalid credentials.",
		})
	}

	token, err := middleware.IssueAdminToken(req.UserID)
	if err != nil {
		log.Printf("Login: token issue failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to create session.",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"token":      token,
		"expires_in": int(middleware.AdminSessionTTL.Seconds()),
	})
}

// filterFromQuery maps the dashboard's query parameters onto a store
// filter.
func filterFromQuery(c *fiber.Ctx) store.RegistrantFilter {
	f := store.RegistrantFilter{
		City:   c.Query("city"),
		Search: c.Query("search"),
	}

	if ar := c.Query("age_range"); validAgeRanges[ar] {
		f.AgeRange = ar
	}

	f.EmailStatus = boolFilter(c.Query("email_status"), "sent", "not_sent")
	f.ResendStatus = boolFilter(c.Query("resend_status"), "resent", "not_resent")
	f.WhatsappStatus = boolFilter(c.Query("whatsapp_status"), "sent", "not_sent")

	switch rs := c.Query("rsvp_status"); rs {
	case models.RSVPNotSent, models.RSVPSent, models.RSVPConfirmed:
		f.RSVPStatus = rs
	}

	if d, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		f.StartDate = d
	}
	if d, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		// Inclusive end date: filter on the start of the next day.
		f.EndDate = d.AddDate(0, 0, 1)
	}

	if c.Query("sort_by") == "name" {
		f.SortBy = "name"
	}
	f.SortDesc = c.Query("sort_dir", "desc") == "desc"

	return f
}

func boolFilter(v, trueVal, falseVal string) *bool {
	switch v {
	case trueVal:
		t := true
		return &t
	case falseVal:
		fv := false
		return &fv
	}
	return nil
}

// ListRegistrants serves the dashboard table: filtered, sorted, paginated.
func (s *AdminService) ListRegistrants(c *fiber.Ctx) error {
	f := filterFromQuery(c)

	f.Page, _ = strconv.Atoi(c.Query("page", "1"))
	f.PerPage, _ = strconv.Atoi(c.Query("per_page", "50"))
	if f.PerPage <= 0 || f.PerPage > 500 {
		f.PerPage = 50
	}

	rows, total, err := s.Registrants.List(f)
	if err != nil {
		log.Printf("ListRegistrants: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to load registrants.",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"registrants": rows,
		"total":       total,
		"page":        f.Page,
		"per_page":    f.PerPage,
	})
}

// Stats reports total registrants and confirmed RSVPs with per-city
// breakdowns.
func (s *AdminService) Stats(c *fiber.Ctx) error {
	rows, _, err := s.Registrants.List(store.RegistrantFilter{})
	if err != nil {
		log.Printf("Stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to load stats.",
		})
	}

	totalByCity := map[string]int{}
	rsvpByCity := map[string]int{}
	rsvpCount := 0
	for _, r := range rows {
		city := r.City
		if city == "" {
			city = "Unknown"
		}
		totalByCity[city]++
		if r.RSVPStatus == models.RSVPConfirmed {
			rsvpCount++
			rsvpByCity[city]++
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalUsers": fiber.Map{"count": len(rows), "cities": totalByCity},
			"totalRSVPs": fiber.Map{"count": rsvpCount, "cities": rsvpByCity},
		},
	})
}

// ExportCSV streams the filtered registrant set as a CSV download.
func (s *AdminService) ExportCSV(c *fiber.Ctx) error {
	rows, _, err := s.Registrants.List(filterFromQuery(c))
	if err != nil {
		log.Printf("ExportCSV: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to export registrants.",
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"Name", "UID", "Email", "Mobile", "Occupation", "Birthdate", "City", "Car Model",
		"Email Status", "Resend Status", "WhatsApp Status", "RSVP Status",
		"Attended", "Game Played", "Registered At",
	})
	for _, r := range rows {
		_ = w.Write([]string{
			r.Name, r.UID, r.Email, r.Mobile, r.Occupation, r.Birthdate, r.City, r.CarModel,
			yesNo(r.EmailStatus), yesNo(r.ResendStatus), yesNo(r.WhatsappStatus), r.RSVPStatus,
			yesNo(r.IsAttendedEvent), yesNo(r.IsGamePlayed),
			r.CreatedAt.Format("02/01/2006 15:04"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("ExportCSV: write failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to export registrants.",
		})
	}

	filename := fmt.Sprintf("registrants-%s.csv", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

type bulkStatusRequest struct {
	UIDs  []string `json:"uids"`
	Field string   `json:"field"`
	Value bool     `json:"value"`
}

// BulkStatus sets one delivery flag for a uid list, applied in chunked
// updates.
func (s *AdminService) BulkStatus(c *fiber.Ctx) error {
	var req bulkStatusRequest
	if err := c.BodyParser(&req); err != nil || len(req.UIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "No uids provided",
		})
	}
	if !bulkStatusFields[req.Field] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Unsupported status field: " + req.Field,
		})
	}

	updated, err := s.Registrants.BulkUpdateFields(req.UIDs, map[string]interface{}{req.Field: req.Value})
	if err != nil {
		log.Printf("BulkStatus: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to update status flags.",
		})
	}

	return c.JSON(fiber.Map{"success": true, "updated": updated})
}
