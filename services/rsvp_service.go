package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"event-registration-system/mail"
	"event-registration-system/models"
	"event-registration-system/store"
	"event-registration-system/utils"
	"event-registration-system/wati"

	"github.com/gofiber/fiber/v2"
)

// RSVPService handles the follow-up confirmation flow: the yes/no email,
// the link landing pages, and the bulk WhatsApp reminder.
type RSVPService struct {
	Registrants store.Registrants
	Cities      store.Cities
	Mailer      mail.Mailer
	Wati        *wati.Client

	BaseURL   string
	EventName string
	TeamName  string
}

func NewRSVPService(registrants store.Registrants, cities store.Cities, mailer mail.Mailer, watiClient *wati.Client) *RSVPService {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &RSVPService{
		Registrants: registrants,
		Cities:      cities,
		Mailer:      mailer,
		Wati:        watiClient,
		BaseURL:     baseURL,
		EventName:   os.Getenv("EVENT_NAME"),
		TeamName:    os.Getenv("EMAIL_FROM_NAME"),
	}
}

type rsvpRequest struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

// SendRSVP emails the yes/no link pair with event details from the city
// config, then moves rsvp_status not_sent → sent unless the registrant
// already confirmed.
func (s *RSVPService) SendRSVP(c *fiber.Ctx) error {
	var req rsvpRequest
	if err := c.BodyParser(&req); err != nil || req.UID == "" || req.Name == "" || req.Email == "" || req.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required fields (uid, name, email, or city).",
		})
	}

	city, err := s.Cities.GetByName(req.City)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "City configuration not found for " + req.City + ".",
			})
		}
		log.Printf("SendRSVP: city lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to send RSVP email.",
		})
	}

	reg, err := s.Registrants.GetByUID(req.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Registrant not found.",
			})
		}
		log.Printf("SendRSVP: registrant lookup failed for %s: %v", req.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to send RSVP email.",
		})
	}

	eventDate := utils.FormatEventDate(city.EventDate)
	yesURL := fmt.Sprintf("%s/api/rsvp-confirm?uid=%s&response=yes", s.BaseURL, req.UID)
	noURL := fmt.Sprintf("%s/api/rsvp-confirm?uid=%s&response=no", s.BaseURL, req.UID)

	body := mail.RSVPEmailBody(utils.DisplayName(req.Name), s.EventName, eventDate, city.Venue, yesURL, noURL, s.TeamName)
	subject := mail.RSVPSubject
	if s.EventName != "" {
		subject = mail.RSVPSubject + " - " + s.EventName
	}
	if err := s.Mailer.Send(req.Email, subject, body); err != nil {
		log.Printf("SendRSVP: email send failed for %s: %v", req.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to send RSVP email.",
		})
	}

	// Never step a confirmed registrant back to sent.
	if reg.RSVPStatus != models.RSVPConfirmed {
		if err := s.Registrants.UpdateFields(req.UID, map[string]interface{}{"rsvp_status": models.RSVPSent}); err != nil {
			log.Printf("SendRSVP: status update failed for %s after send: %v", req.UID, err)
			return c.JSON(fiber.Map{
				"success": true,
				"message": "RSVP email sent, but status update failed.",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "RSVP email sent successfully!"})
}

// ConfirmRSVP is the landing page behind the emailed links. A "yes" visit
// sets confirmed (idempotent across repeat visits); a "no" visit returns a
// courteous page and deliberately changes nothing.
func (s *RSVPService) ConfirmRSVP(c *fiber.Ctx) error {
	uid := c.Query("uid")
	response := c.Query("response")

	c.Type("html")

	if uid == "" || response == "" {
		return c.Status(fiber.StatusBadRequest).SendString(rsvpInvalidRequestPage())
	}

	switch response {
	case "yes":
		if _, err := s.Registrants.GetByUID(uid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).SendString(rsvpNotFoundPage())
			}
			log.Printf("ConfirmRSVP: lookup failed for %s: %v", uid, err)
			return c.Status(fiber.StatusInternalServerError).SendString(rsvpErrorPage())
		}
		if err := s.Registrants.UpdateFields(uid, map[string]interface{}{"rsvp_status": models.RSVPConfirmed}); err != nil {
			log.Printf("ConfirmRSVP: update failed for %s: %v", uid, err)
			return c.Status(fiber.StatusInternalServerError).SendString(rsvpErrorPage())
		}
		return c.SendString(rsvpConfirmedPage(s.EventName, s.TeamName))

	case "no":
		// Declines are acknowledged but not persisted.
		return c.SendString(rsvpDeclinedPage(s.TeamName))

	default:
		return c.Status(fiber.StatusBadRequest).SendString(rsvpInvalidResponsePage())
	}
}

type bulkRSVPRequest struct {
	Recipients []wati.Recipient `json:"recipients"`
}

// BulkRSVPWhatsApp sends the RSVP reminder template to a recipient list in
// one provider-side batch, then flags rsvp_whatsapp in chunked updates.
// Recipients missing a uid or mobile are silently dropped from both.
func (s *RSVPService) BulkRSVPWhatsApp(c *fiber.Ctx) error {
	var req bulkRSVPRequest
	if err := c.BodyParser(&req); err != nil || len(req.Recipients) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "No recipients provided",
		})
	}

	valid := make([]wati.Recipient, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		if r.UID != "" && r.Mobile != "" {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "No valid recipients with mobile numbers",
		})
	}

	result, err := s.Wati.SendBulkRSVP(c.Context(), valid)
	if err != nil {
		log.Printf("BulkRSVPWhatsApp: provider send failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":     false,
			"message":     "Failed to send bulk RSVP WhatsApp",
			"totalSent":   result.TotalSent,
			"totalFailed": result.TotalFailed,
		})
	}

	uids := make([]string, len(valid))
	for i, r := range valid {
		uids[i] = r.UID
	}
	updated, err := s.Registrants.BulkUpdateFields(uids, map[string]interface{}{"rsvp_whatsapp": true})
	if err != nil {
		log.Printf("BulkRSVPWhatsApp: status update failed after send: %v", err)
	}
	log.Printf("Updated rsvp_whatsapp for %d/%d users", updated, len(uids))

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     fmt.Sprintf("Bulk RSVP WhatsApp sent (DB updated: %d/%d)", updated, len(uids)),
		"totalSent":   result.TotalSent,
		"totalFailed": result.TotalFailed,
		"dbUpdated":   updated,
	})
}
