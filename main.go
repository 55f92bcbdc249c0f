package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"event-registration-system/handlers"
	"event-registration-system/mail"
	"event-registration-system/models"
	"event-registration-system/services"
	"event-registration-system/store"
	"event-registration-system/ticket"
	"event-registration-system/utils"
	"event-registration-system/wati"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — JSON bodies only, no uploads
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Registrant{},
		&models.CityConfig{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	registrants := store.NewGormRegistrants(db)
	cities := store.NewGormCities(db)

	templatePath := os.Getenv("TICKET_TEMPLATE_PATH")
	if templatePath == "" {
		templatePath = "./public/placeholder/email-placeholder.png"
	}
	fontPath := os.Getenv("TICKET_FONT_PATH")
	if fontPath == "" {
		fontPath = "./public/fonts/ticket-bold.ttf"
	}
	ticketGen, err := ticket.NewGenerator(templatePath, fontPath)
	if err != nil {
		log.Fatal("failed to load ticket template:", err)
	}

	mailer, err := mail.NewSMTPMailer()
	if err != nil {
		log.Fatal("failed to configure SMTP mailer:", err)
	}

	watiClient, err := wati.NewClient()
	if err != nil {
		log.Fatal("failed to configure WATI client:", err)
	}

	registrationService := services.NewRegistrationService(registrants, cities)
	ticketService := services.NewTicketService(registrants, ticketGen, mailer, watiClient)
	rsvpService := services.NewRSVPService(registrants, cities, mailer, watiClient)
	checkinService := services.NewCheckinService(registrants)
	adminService := services.NewAdminService(registrants, cities)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticketService.StartPipelineSweep()

	handlers.SetupRegistrationRoutes(app, registrationService)
	handlers.SetupTicketRoutes(app, ticketService)
	handlers.SetupRSVPRoutes(app, rsvpService)
	handlers.SetupCheckinRoutes(app, checkinService)
	handlers.SetupAdminRoutes(app, adminService)

	app.Static("/public", "./public")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Ticket pipeline sweep running (every 5m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
