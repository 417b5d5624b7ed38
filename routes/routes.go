package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "teamboard/controllers"
	"teamboard/middleware"
	"teamboard/storage"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Login is the only way in without an existing session; rate limit it.
	auth.Post("/login", middleware.PublicRateLimiter(), controller.Login)

	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB, store storage.Store, signer *storage.Signer) {
	teamController := controller.NewTeamController(db, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	announcementController := controller.NewAnnouncementController(db, log.New(os.Stdout, "ANNOUNCE: ", log.LstdFlags))
	issueController := controller.NewIssueController(db, log.New(os.Stdout, "ISSUE: ", log.LstdFlags))
	documentController := controller.NewDocumentController(db, store, signer, log.New(os.Stdout, "DOCUMENT: ", log.LstdFlags))

	// Team creation and joining happen before a session exists, so they sit
	// outside the protected group, throttled per IP.
	app.Post("/teams", middleware.PublicRateLimiter(), teamController.CreateTeam)
	app.Post("/teams/join", middleware.PublicRateLimiter(), teamController.JoinTeam)

	// Signed downloads authenticate via the URL signature, not the session.
	app.Get("/files/*", documentController.DownloadDocument)

	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Team routes
	team := api.Group("/teams")
	team.Get("/:id", teamController.GetTeam)
	team.Get("/:id/qr", teamController.GetTeamQR)
	team.Get("/:id/members", teamController.GetTeamMembers)
	team.Put("/members/:id", teamController.UpdateMemberRole)
	team.Delete("/members/:id", teamController.RemoveMember)

	// Announcement routes
	announcement := api.Group("/announcements")
	announcement.Post("/", announcementController.CreateAnnouncement)
	announcement.Get("/", announcementController.GetAnnouncements)
	announcement.Put("/:id", announcementController.UpdateAnnouncement)
	announcement.Delete("/:id", announcementController.DeleteAnnouncement)

	// Issue routes
	issue := api.Group("/issues")
	issue.Post("/", issueController.CreateIssue)
	issue.Get("/", issueController.GetIssues)
	issue.Put("/:id", issueController.UpdateIssue)
	issue.Delete("/:id", issueController.DeleteIssue)

	// Document routes
	document := api.Group("/documents")
	document.Post("/", documentController.UploadDocument)
	document.Get("/", documentController.GetDocuments)
	document.Get("/history", documentController.GetDocumentHistory)
	document.Get("/:id/url", documentController.GetDocumentURL)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.Store, signer *storage.Signer) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db, store, signer)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
