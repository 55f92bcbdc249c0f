package services

import (
	"errors"
	"log"
	"os"
	"time"

	"event-registration-system/mail"
	"event-registration-system/models"
	"event-registration-system/store"
	"event-registration-system/ticket"
	"event-registration-system/utils"
	"event-registration-system/wati"

	"github.com/gofiber/fiber/v2"
)

// UploadFunc uploads a payload under the given key and returns its public
// URL. Production wiring uses utils.UploadBytesToR2.
type UploadFunc func(key, contentType string, data []byte) (string, error)

// TicketService owns the generate → upload → record → email → status
// pipeline. Each step persists a marker on the registrant so a retry
// resumes instead of re-running side effects.
type TicketService struct {
	Registrants store.Registrants
	Generator   *ticket.Generator
	Mailer      mail.Mailer
	Wati        *wati.Client
	Upload      UploadFunc

	// One city ships a pre-made static ticket and never hits the
	// compositing path. An explicit business rule, not a fallback.
	StaticTicketCity string
	StaticTicketURL  string

	TeamName string
	Now      func() time.Time
}

func NewTicketService(registrants store.Registrants, gen *ticket.Generator, mailer mail.Mailer, watiClient *wati.Client) *TicketService {
	return &TicketService{
		Registrants:      registrants,
		Generator:        gen,
		Mailer:           mailer,
		Wati:             watiClient,
		Upload:           utils.UploadBytesToR2,
		StaticTicketCity: os.Getenv("STATIC_TICKET_CITY"),
		StaticTicketURL:  os.Getenv("STATIC_TICKET_URL"),
		TeamName:         os.Getenv("EMAIL_FROM_NAME"),
		Now:              time.Now,
	}
}

type ticketRequest struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

func (r *ticketRequest) validate() bool {
	return r.UID != "" && r.Name != "" && r.Email != "" && r.City != ""
}

// GenerateTicket composes the ticket image, emails it and records delivery
// status. Re-running for a registrant whose email already went out is a
// no-op; the explicit resend endpoint exists for that.
func (s *TicketService) GenerateTicket(c *fiber.Ctx) error {
	return s.runPipeline(c, false)
}

// ResendTicket re-sends the ticket email, reusing the uploaded image when
// one exists, and flips resend_status.
func (s *TicketService) ResendTicket(c *fiber.Ctx) error {
	return s.runPipeline(c, true)
}

func (s *TicketService) runPipeline(c *fiber.Ctx, resend bool) error {
	var req ticketRequest
	if err := c.BodyParser(&req); err != nil || !req.validate() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required fields (uid, name, email, or city).",
		})
	}

	reg, err := s.Registrants.GetByUID(req.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Registrant not found.",
			})
		}
		log.Printf("Ticket pipeline: lookup failed for %s: %v", req.UID, err)
		return s.genericFailure(c)
	}

	if !resend && reg.TicketStep == models.TicketStepEmailed {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Ticket already generated and emailed. Use resend to send it again.",
		})
	}

	imageURL, err := s.ticketImageURL(req, reg)
	if err != nil {
		log.Printf("Ticket pipeline: image step failed for %s: %v", req.UID, err)
		return s.genericFailure(c)
	}

	body := mail.TicketEmailBody(utils.DisplayName(req.Name), req.City, imageURL, s.TeamName)
	if err := s.Mailer.Send(req.Email, mail.TicketSubject, body); err != nil {
		log.Printf("Ticket pipeline: email send failed for %s: %v", req.UID, err)
		return s.genericFailure(c)
	}

	fields := map[string]interface{}{
		"image_link":   imageURL,
		"email_status": true,
		"ticket_step":  models.TicketStepEmailed,
	}
	if resend {
		fields["resend_status"] = true
	}
	if err := s.Registrants.UpdateFields(req.UID, fields); err != nil {
		// Email already went out; at-least-once send, best-effort persistence.
		log.Printf("Ticket pipeline: status update failed for %s after send: %v", req.UID, err)
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Ticket emailed, but status update failed. Status will be corrected on the next run.",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Ticket generated and email sent!"})
}

// ticketImageURL returns the public URL for the registrant's ticket:
// the static asset for the special-cased city, the already-uploaded image
// when the pipeline is resuming, or a freshly composited upload.
func (s *TicketService) ticketImageURL(req ticketRequest, reg *models.Registrant) (string, error) {
	if s.StaticTicketCity != "" && utils.NormalizeCity(req.City) == utils.NormalizeCity(s.StaticTicketCity) {
		return s.StaticTicketURL, nil
	}

	if reg.ImageLink != "" && reg.TicketStep != models.TicketStepNone {
		return reg.ImageLink, nil
	}

	img, err := s.Generator.Render(req.UID, req.Name)
	if err != nil {
		return "", err
	}

	key := utils.TicketObjectKey(req.UID, s.Now())
	url, err := s.Upload(key, "image/png", img)
	if err != nil {
		return "", err
	}

	// Record the upload before the email goes out so a crash in between
	// resumes at the send step instead of re-uploading.
	if err := s.Registrants.UpdateFields(req.UID, map[string]interface{}{
		"image_link":  url,
		"ticket_step": models.TicketStepUploaded,
	}); err != nil {
		log.Printf("Ticket pipeline: failed to record upload for %s: %v", req.UID, err)
	}
	return url, nil
}

func (s *TicketService) genericFailure(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false, "message": "Failed to generate ticket or send email.",
	})
}

type whatsappRequest struct {
	UID    string `json:"uid"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// SendWhatsApp delivers the ticket over WhatsApp via the WATI template API
// and flips whatsapp_status.
func (s *TicketService) SendWhatsApp(c *fiber.Ctx) error {
	var req whatsappRequest
	if err := c.BodyParser(&req); err != nil || req.UID == "" || req.Name == "" || req.Mobile == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required fields (uid, name, or mobile).",
		})
	}

	reg, err := s.Registrants.GetByUID(req.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Registrant not found.",
			})
		}
		log.Printf("SendWhatsApp: lookup failed for %s: %v", req.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to send WhatsApp message.",
		})
	}

	imageURL := reg.ImageLink
	if s.StaticTicketCity != "" && utils.NormalizeCity(reg.City) == utils.NormalizeCity(s.StaticTicketCity) {
		imageURL = s.StaticTicketURL
	}
	if imageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "No ticket image available yet. Generate the ticket first.",
		})
	}

	if err := s.Wati.SendRegistrationMessage(c.Context(), utils.DisplayName(req.Name), req.Mobile, imageURL); err != nil {
		log.Printf("SendWhatsApp: WATI send failed for %s: %v", req.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to send WhatsApp message.",
		})
	}

	if err := s.Registrants.UpdateFields(req.UID, map[string]interface{}{"whatsapp_status": true}); err != nil {
		log.Printf("SendWhatsApp: status update failed for %s after send: %v", req.UID, err)
		return c.JSON(fiber.Map{
			"success": true,
			"message": "WhatsApp message sent, but status update failed.",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "WhatsApp message sent successfully."})
}
