package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/hashgate"
	"github.com/pandu2406/pst-1504/internal/queue"
)

// GetDashboardStats agregat hari ini untuk kartu dashboard staff:
// jumlah per status plus rata-rata waktu tunggu dan waktu layanan.
func GetDashboardStats(c *fiber.Ctx) error {
	clientHash := c.Query("hash")

	stats, err := queue.DashboardStats(config.DB)
	if err != nil {
		log.Printf("[dashboard] gagal menghitung statistik: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil statistik dashboard",
		})
	}

	serverHash, err := hashgate.ComputeHash(stats)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menghitung hash",
		})
	}

	return c.JSON(fiber.Map{
		"stats":      stats,
		"hash":       serverHash,
		"hasChanges": hashgate.HasChanged(clientHash, serverHash),
	})
}
