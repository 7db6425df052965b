package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/hashgate"
	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/pandu2406/pst-1504/internal/notify"
)

// GetNotifications notifikasi belum dibaca milik requester plus yang
// global. Mendukung hash polling seperti endpoint antrean.
func GetNotifications(c *fiber.Ctx) error {
	requesterID, _ := c.Locals("user_id").(string)
	clientHash := c.Query("hash")

	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	notifications, err := notify.ListUnread(config.DB, requesterID, limit)
	if err != nil {
		log.Printf("[notification] gagal mengambil notifikasi: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil notifikasi",
		})
	}

	serverHash, err := hashgate.ComputeHash(notifications)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menghitung hash",
		})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"hash":          serverHash,
		"hasChanges":    hashgate.HasChanged(clientHash, serverHash),
	})
}

// MarkNotificationRead tandai satu notifikasi sudah dibaca.
// Idempoten: tandai notifikasi yang sudah terbaca tetap 200.
func MarkNotificationRead(c *fiber.Ctx) error {
	requesterID, _ := c.Locals("user_id").(string)

	n, err := notify.MarkRead(config.DB, c.Params("id"), requesterID)
	if err != nil {
		switch {
		case errors.Is(err, notify.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, notify.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("[notification] gagal menandai notifikasi: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Gagal menandai notifikasi",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":      "Notifikasi ditandai sudah dibaca",
		"notification": models.ToNotificationResponse(*n),
	})
}

// MarkAllNotificationsRead tandai semua notifikasi requester sudah dibaca.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	requesterID, _ := c.Locals("user_id").(string)

	if err := notify.MarkAllRead(config.DB, requesterID); err != nil {
		log.Printf("[notification] gagal menandai semua notifikasi: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menandai notifikasi",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Semua notifikasi ditandai sudah dibaca",
	})
}
