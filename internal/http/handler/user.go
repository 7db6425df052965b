package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/helper"
	"github.com/pandu2406/pst-1504/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers daftar akun staff. Hanya superadmin (dijaga RoleAuth).
func GetUsers(c *fiber.Ctx) error {
	rows, err := config.DB.Query(`
		SELECT id, name, username, role, created_at FROM users
		ORDER BY role DESC, name ASC
	`)
	if err != nil {
		log.Printf("[user] gagal mengambil daftar user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil daftar user",
		})
	}
	defer rows.Close()

	users := []models.UserResponse{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Role, &u.CreatedAt); err != nil {
			continue
		}
		users = append(users, models.ToUserResponse(u))
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// CreateUser buat akun staff baru. Role default ADMIN.
func CreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if req.Role == "" {
		req.Role = models.RoleAdmin
	}

	var exists int
	if err := config.DB.QueryRow(
		`SELECT COUNT(*) FROM users WHERE username = ?`, req.Username,
	).Scan(&exists); err == nil && exists > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username sudah dipakai",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal memproses password",
		})
	}

	id := uuid.NewString()
	_, err = config.DB.Exec(`
		INSERT INTO users (id, name, username, password, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, id, req.Name, req.Username, string(hashed), req.Role)
	if err != nil {
		log.Printf("[user] gagal membuat user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal membuat user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User berhasil dibuat",
		"user": fiber.Map{
			"id":       id,
			"name":     req.Name,
			"username": req.Username,
			"role":     req.Role,
		},
	})
}
