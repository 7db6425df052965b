package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/hashgate"
	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/pandu2406/pst-1504/internal/queue"
)

// GetQueueDisplay - endpoint publik untuk layar display: antrean yang
// sedang dilayani plus antrean berikutnya. Hash client lewat header
// x-queue-hash, bukan query, mengikuti kontrak front-end display.
func GetQueueDisplay(c *fiber.Ctx) error {
	adminID := c.Query("adminId")
	dateFilter := c.Query("dateFilter", "today")
	clientHash := c.Get("x-queue-hash")

	serving, next, err := queue.DisplayData(config.DB, adminID, dateFilter)
	if err != nil {
		log.Printf("[display] gagal mengambil data display: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil data display antrian",
		})
	}

	payload := fiber.Map{
		"servingQueues": serving,
		"nextQueue":     next,
	}

	serverHash, err := hashgate.ComputeHash(payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menghitung hash",
		})
	}

	payload["hash"] = serverHash
	payload["hasChanges"] = hashgate.HasChanged(clientHash, serverHash)

	return c.JSON(payload)
}

// GetDisplayAdmins daftar staff untuk filter display per loket.
func GetDisplayAdmins(c *fiber.Ctx) error {
	rows, err := config.DB.Query(`
		SELECT id, name, role FROM users
		WHERE role IN ('ADMIN', 'SUPERADMIN')
		ORDER BY role DESC, name ASC
	`)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil daftar admin",
		})
	}
	defer rows.Close()

	type adminInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}

	admins := []adminInfo{}
	for rows.Next() {
		var a adminInfo
		if err := rows.Scan(&a.ID, &a.Name, &a.Role); err != nil {
			continue
		}
		admins = append(admins, a)
	}

	return c.JSON(fiber.Map{
		"admins": admins,
	})
}

// displayPayload dipakai broadcast WebSocket, payload sama dengan
// endpoint polling supaya client bisa pakai renderer yang sama.
func displayPayload() (fiber.Map, error) {
	serving, next, err := queue.DisplayData(config.DB, "", "today")
	if err != nil {
		return nil, err
	}

	if serving == nil {
		serving = []models.QueueResponse{}
	}

	hash, err := hashgate.ComputeHash(fiber.Map{
		"servingQueues": serving,
		"nextQueue":     next,
	})
	if err != nil {
		return nil, err
	}

	return fiber.Map{
		"servingQueues": serving,
		"nextQueue":     next,
		"hash":          hash,
	}, nil
}
