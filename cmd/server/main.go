package main

import (
	"log"
	"runtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/http/handler"
	"github.com/pandu2406/pst-1504/internal/http/middleware"
	"github.com/pandu2406/pst-1504/internal/jobs"
	"github.com/pandu2406/pst-1504/internal/models"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
	})

	config.LoadEnv()
	config.MustGetEnv("JWT_SECRET")
	config.InitRedis()
	config.InitDB()
	defer config.CloseDB()

	sched, err := jobs.Start(config.DB)
	if err != nil {
		log.Fatalf("Gagal menjalankan scheduler: %v", err)
	}
	defer func() { _ = sched.Shutdown() }()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-queue-hash, x-visitor-uuid",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "PST API jalan",
		})
	})

	// ===== PUBLIC ROUTES =====
	app.Get("/api/health", handler.HealthCheck)
	app.Post("/api/auth/login", handler.Login)

	app.Post("/api/visitor-form/link", handler.CreateTempLink)
	app.Get("/api/visitor-form/services", handler.GetVisitorServices)
	app.Post("/api/visitor-form/submit", handler.SubmitVisitorForm)

	app.Get("/api/tracking/:code", handler.TrackQueue)
	app.Post("/api/tracking/:code/skd", handler.MarkSKDFilled)

	app.Get("/api/queue-display", handler.GetQueueDisplay)
	app.Get("/api/queue-display/admins", handler.GetDisplayAdmins)
	app.Get("/api/qrcode", handler.GetQRCode)

	// WebSocket untuk layar display
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/queue-display", websocket.New(handler.QueueDisplayWS))

	// Base API (semua wajib login)
	api := app.Group("/api", middleware.JWTAuth())

	// Auth
	api.Post("/auth/logout", handler.Logout)

	// Queue (kedua role)
	api.Get("/queue", handler.GetQueues)
	api.Post("/queue/:id/serve", handler.ServeQueue)
	api.Post("/queue/:id/complete", handler.CompleteQueue)
	api.Post("/queue/:id/cancel", handler.CancelQueue)

	// Notifications
	api.Get("/notifications", handler.GetNotifications)
	api.Post("/notifications", handler.MarkAllNotificationsRead)
	api.Post("/notifications/:id", handler.MarkNotificationRead)

	// Dashboard & laporan
	api.Get("/dashboard/stats", handler.GetDashboardStats)
	api.Get("/analytics/export", handler.ExportAnalytics)

	// Services
	api.Get("/services", handler.GetServices)
	api.Post("/services", handler.CreateService)
	api.Put("/services/:id", handler.UpdateService)
	api.Delete("/services/:id", handler.DeleteService)

	// ===== SUPER ADMIN ROUTES =====
	api.Get("/users", middleware.RoleAuth(models.RoleSuperadmin), handler.GetUsers)
	api.Post("/users", middleware.RoleAuth(models.RoleSuperadmin), handler.CreateUser)

	addr := config.GetEnv("APP_HOST", "0.0.0.0") + ":" + config.GetEnv("APP_PORT", "8080")
	log.Println("Server jalan di", addr)
	log.Fatal(app.Listen(addr))
}
