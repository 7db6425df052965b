package handler

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/helper"
	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/pandu2406/pst-1504/internal/queue"
)

// SubmitVisitorFormRequest - body form pengunjung dari halaman QR
type SubmitVisitorFormRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Institution string `json:"institution"`
	Email       string `json:"email" validate:"omitempty,email"`
	ServiceID   string `json:"serviceId" validate:"required"`
	TempUUID    string `json:"tempUuid" validate:"required"`
	QueueType   string `json:"queueType" validate:"required,oneof=ONLINE OFFLINE"`
}

// SubmitVisitorForm buat tiket antrean baru dari form pengunjung.
// Seluruh pembuatan (visitor, nomor, antrean, konsumsi link, notifikasi)
// satu transaksi di queue.CreateTicket.
func SubmitVisitorForm(c *fiber.Ctx) error {
	var req SubmitVisitorFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	result, err := queue.CreateTicket(config.DB, queue.CreateTicketInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Institution: req.Institution,
		Email:       req.Email,
		ServiceID:   req.ServiceID,
		TempUUID:    req.TempUUID,
		QueueType:   models.QueueType(req.QueueType),
	})

	if err != nil {
		switch {
		case errors.Is(err, queue.ErrLinkNotFound),
			errors.Is(err, queue.ErrLinkUsed),
			errors.Is(err, queue.ErrLinkExpired),
			errors.Is(err, queue.ErrServiceNotFound),
			errors.Is(err, queue.ErrServiceInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("[visitor-form] gagal membuat antrean: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Gagal memproses form pengunjung",
			})
		}
	}

	BroadcastDisplayUpdate()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Antrean berhasil dibuat",
		"data": fiber.Map{
			"queueNumber":  result.Queue.QueueNumber,
			"serviceName":  result.ServiceName,
			"visitorName":  result.VisitorName,
			"createdAt":    result.Queue.CreatedAt,
			"queueType":    result.Queue.QueueType,
			"trackingCode": result.Queue.TrackingCode,
			"redirectUrl":  "/visitor-form/" + req.TempUUID,
		},
	})
}

// GetVisitorServices daftar layanan aktif untuk dropdown form.
// Link divalidasi dulu lewat header x-visitor-uuid.
func GetVisitorServices(c *fiber.Ctx) error {
	visitorUUID := c.Get("x-visitor-uuid")
	if visitorUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing visitor UUID",
		})
	}

	var link models.TempVisitorLink
	err := config.DB.QueryRow(`
		SELECT id, uuid, expires_at, used FROM temp_visitor_links WHERE uuid = ?
	`, visitorUUID).Scan(&link.ID, &link.UUID, &link.ExpiresAt, &link.Used)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid visitor UUID",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal memvalidasi link",
		})
	}

	if link.Expired(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Link has expired",
		})
	}
	if link.Used {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Link has already been used",
		})
	}

	rows, err := config.DB.Query(`
		SELECT id, name, status, created_at FROM services WHERE status = 'ACTIVE' ORDER BY name
	`)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil layanan",
		})
	}
	defer rows.Close()

	services := []models.ServiceResponse{}
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Status, &s.CreatedAt); err != nil {
			continue
		}
		services = append(services, models.ToServiceResponse(s))
	}

	return c.JSON(fiber.Map{
		"services": services,
	})
}
