package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/queue"
)

// TrackQueue status antrean publik via tracking code dari tiket.
func TrackQueue(c *fiber.Ctx) error {
	result, err := queue.FindByTrackingCode(config.DB, c.Params("code"))
	if err != nil {
		if errors.Is(err, queue.ErrQueueNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("[tracking] gagal mencari antrean: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mencari antrean",
		})
	}

	return c.JSON(fiber.Map{
		"queue": result,
	})
}

// MarkSKDFilled tandai pengunjung sudah mengisi survei kepuasan.
func MarkSKDFilled(c *fiber.Ctx) error {
	if err := queue.MarkSurveyFilled(config.DB, c.Params("code")); err != nil {
		if errors.Is(err, queue.ErrQueueNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("[tracking] gagal menandai SKD: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menandai survei",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Terima kasih sudah mengisi Survei Kebutuhan Data",
	})
}
