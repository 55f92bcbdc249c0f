package services

import (
	"errors"
	"log"

	"event-registration-system/store"

	"github.com/gofiber/fiber/v2"
)

// CheckinService backs the venue QR scanner: the decoded code is the
// registrant uid.
type CheckinService struct {
	Registrants store.Registrants
}

func NewCheckinService(registrants store.Registrants) *CheckinService {
	return &CheckinService{Registrants: registrants}
}

type checkinRequest struct {
	UID string `json:"uid"`
}

// Checkin marks the registrant as attended and returns their name for the
// scanner's success toast. Re-scanning an already-attended code succeeds
// again; there is no separate "already checked in" state.
func (s *CheckinService) Checkin(c *fiber.Ctx) error {
	var req checkinRequest
	if err := c.BodyParser(&req); err != nil || req.UID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required field (uid).",
		})
	}

	reg, err := s.Registrants.GetByUID(req.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "No registration found for this code.",
			})
		}
		log.Printf("Checkin: lookup failed for %s: %v", req.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to check in.",
		})
	}

	if !reg.IsAttendedEvent {
		if err := s.Registrants.UpdateFields(req.UID, map[string]interface{}{"is_attended_event": true}); err != nil {
			log.Printf("Checkin: update failed for %s: %v", req.UID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "message": "Failed to check in.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"name":    reg.Name,
		"message": "Welcome, " + reg.Name + "!",
	})
}
