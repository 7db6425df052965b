package handler

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/helper"
	"github.com/pandu2406/pst-1504/internal/models"
)

// GetServices daftar layanan untuk dashboard. Filter opsional ?status=.
func GetServices(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != string(models.ServiceActive) && status != string(models.ServiceInactive) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status layanan tidak dikenal",
		})
	}

	query := `SELECT id, name, status, created_at FROM services`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY name ASC`

	rows, err := config.DB.Query(query, args...)
	if err != nil {
		log.Printf("[service] gagal mengambil layanan: %v", err)
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

// CreateService tambah layanan baru, langsung ACTIVE.
func CreateService(c *fiber.Ctx) error {
	var req models.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nama layanan harus diisi",
		})
	}

	var exists int
	if err := config.DB.QueryRow(
		`SELECT COUNT(*) FROM services WHERE name = ?`, req.Name,
	).Scan(&exists); err == nil && exists > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Layanan dengan nama tersebut sudah ada",
		})
	}

	id := uuid.NewString()
	_, err := config.DB.Exec(`
		INSERT INTO services (id, name, status, created_at, updated_at)
		VALUES (?, ?, 'ACTIVE', NOW(), NOW())
	`, id, req.Name)
	if err != nil {
		log.Printf("[service] gagal membuat layanan: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal membuat layanan",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Layanan berhasil dibuat",
		"service": fiber.Map{
			"id":     id,
			"name":   req.Name,
			"status": models.ServiceActive,
		},
	})
}

// UpdateService ubah nama dan/atau status layanan.
func UpdateService(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status layanan tidak dikenal",
		})
	}

	if req.Name == "" && req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Tidak ada perubahan yang dikirim",
		})
	}

	var s models.Service
	err := config.DB.QueryRow(`
		SELECT id, name, status, created_at FROM services WHERE id = ?
	`, id).Scan(&s.ID, &s.Name, &s.Status, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Layanan tidak ditemukan",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if req.Name != "" {
		s.Name = req.Name
	}
	if req.Status != "" {
		s.Status = models.ServiceStatus(req.Status)
	}

	_, err = config.DB.Exec(`
		UPDATE services SET name = ?, status = ?, updated_at = NOW() WHERE id = ?
	`, s.Name, s.Status, id)
	if err != nil {
		log.Printf("[service] gagal mengubah layanan: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengubah layanan",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Layanan berhasil diubah",
		"service": models.ToServiceResponse(s),
	})
}

// DeleteService hapus layanan. Layanan yang sudah pernah dipakai
// antrean tidak dihapus, hanya dinonaktifkan supaya riwayat tetap utuh.
func DeleteService(c *fiber.Ctx) error {
	id := c.Params("id")

	var exists int
	err := config.DB.QueryRow(`SELECT COUNT(*) FROM services WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}
	if exists == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Layanan tidak ditemukan",
		})
	}

	var referenced int
	if err := config.DB.QueryRow(
		`SELECT COUNT(*) FROM queues WHERE service_id = ?`, id,
	).Scan(&referenced); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if referenced > 0 {
		if _, err := config.DB.Exec(`
			UPDATE services SET status = 'INACTIVE', updated_at = NOW() WHERE id = ?
		`, id); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Gagal menonaktifkan layanan",
			})
		}
		return c.JSON(fiber.Map{
			"message": "Layanan sudah dipakai antrean, status diubah menjadi INACTIVE",
		})
	}

	if _, err := config.DB.Exec(`DELETE FROM services WHERE id = ?`, id); err != nil {
		log.Printf("[service] gagal menghapus layanan: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menghapus layanan",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Layanan berhasil dihapus",
	})
}
