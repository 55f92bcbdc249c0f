// handlers/routes.go
package handlers

import (
	"event-registration-system/middleware"
	"event-registration-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRegistrationRoutes(app *fiber.App, registrationService *services.RegistrationService) {
	app.Get("/api/cities", registrationService.ListCities)
	app.Post("/api/register", registrationService.Register)
	app.Post("/api/game-complete", registrationService.GameComplete)
}

func SetupTicketRoutes(app *fiber.App, ticketService *services.TicketService) {
	app.Post("/api/generate-ticket", ticketService.GenerateTicket)
	app.Post("/api/resend", ticketService.ResendTicket)
	app.Post("/api/send-whatsapp", ticketService.SendWhatsApp)
}

func SetupRSVPRoutes(app *fiber.App, rsvpService *services.RSVPService) {
	app.Post("/api/send-rsvp", rsvpService.SendRSVP)
	// GET — reached from links in the RSVP email, renders HTML
	app.Get("/api/rsvp-confirm", rsvpService.ConfirmRSVP)
	app.Post("/api/bulk-rsvp-whatsapp", rsvpService.BulkRSVPWhatsApp)
}

func SetupCheckinRoutes(app *fiber.App, checkinService *services.CheckinService) {
	app.Post("/api/checkin", checkinService.Checkin)
}

func SetupAdminRoutes(app *fiber.App, adminService *services.AdminService) {
	app.Post("/api/admin/login", adminService.Login)

	// 🔐 Everything else under /api/admin requires a valid session token
	secured := app.Group("/api/admin", middleware.AdminAuthMiddleware())
	secured.Get("/registrants", adminService.ListRegistrants)
	secured.Get("/stats", adminService.Stats)
	secured.Get("/export", adminService.ExportCSV)
	secured.Post("/bulk-status", adminService.BulkStatus)
}
