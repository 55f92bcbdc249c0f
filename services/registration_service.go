package services

import (
	"errors"
	"log"
	"strings"

	"event-registration-system/models"
	"event-registration-system/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegistrationService struct {
	Registrants store.Registrants
	Cities      store.Cities
}

func NewRegistrationService(registrants store.Registrants, cities store.Cities) *RegistrationService {
	return &RegistrationService{Registrants: registrants, Cities: cities}
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Occupation string `json:"occupation"`
	Birthdate  string `json:"birthdate"`
	City       string `json:"city"`
	CarModel   string `json:"car_model"`
}

// Register creates one registrant with a fresh UID and default flags. The
// UID is assigned here exactly once and never changes afterwards.
func (s *RegistrationService) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body.",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Mobile == "" || req.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required fields (name, email, mobile, or city).",
		})
	}

	city, err := s.Cities.GetByName(req.City)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "City configuration not found for " + req.City + ".",
			})
		}
		log.Printf("Register: city lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to register. Please try again later.",
		})
	}
	if !city.IsLive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false, "message": "Registration is not open for " + city.CityName + ".",
		})
	}

	// allowed_entries = 0 means no cap for the city
	if city.AllowedEntries > 0 {
		count, err := s.Registrants.CountByCity(city.CityName)
		if err != nil {
			log.Printf("Register: capacity check failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "message": "Failed to register. Please try again later.",
			})
		}
		if count >= int64(city.AllowedEntries) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false, "message": "Registration for " + city.CityName + " is full.",
			})
		}
	}

	r := &models.Registrant{
		UID:        uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Mobile:     req.Mobile,
		Occupation: req.Occupation,
		Birthdate:  req.Birthdate,
		City:       city.CityName,
		CarModel:   req.CarModel,
		RSVPStatus: models.RSVPNotSent,
	}
	if err := s.Registrants.Create(r); err != nil {
		log.Printf("Register: insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to register. Please try again later.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"uid":     r.UID,
	})
}

// ListCities returns the live city configs for the city picker.
func (s *RegistrationService) ListCities(c *fiber.Ctx) error {
	cities, err := s.Cities.ListLive()
	if err != nil {
		log.Printf("ListCities: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to load cities.",
		})
	}
	return c.JSON(fiber.Map{"success": true, "cities": cities})
}

type gameCompleteRequest struct {
	UID string `json:"uid"`
}

// GameComplete flips the is_game_played flag after the client finishes the
// quiz sequence. The answers themselves never reach the server.
func (s *RegistrationService) GameComplete(c *fiber.Ctx) error {
	var req gameCompleteRequest
	if err := c.BodyParser(&req); err != nil || req.UID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing required field (uid).",
		})
	}

	if err := s.Registrants.UpdateFields(req.UID, map[string]interface{}{"is_game_played": true}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Registrant not found.",
			})
		}
		log.Printf("GameComplete: update failed for %s: %v", req.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Failed to record game completion.",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
