package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
)

func HealthCheck(c *fiber.Ctx) error {
	if err := config.DB.Ping(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "Database tidak terhubung",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
