package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/helper"
	"github.com/pandu2406/pst-1504/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := helper.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username dan password harus diisi",
		})
	}

	var user models.User
	query := `SELECT id, name, username, password, role, created_at
	          FROM users WHERE username = ?`
	err := config.DB.QueryRow(query, req.Username).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Username atau password salah",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Username atau password salah",
		})
	}

	token, err := config.GenerateToken(user.ID, user.Name, user.Username, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"user":    models.ToUserResponse(user),
		"message": "Login berhasil! Selamat datang kembali, " + user.Name,
	})
}

// Logout masukkan jti token ke blacklist Redis sampai tokennya expired
// sendiri, supaya token yang dicuri setelah logout ikut mati.
func Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	exp, _ := c.Locals("token_exp").(time.Time)

	if jti != "" {
		ttl := time.Until(exp)
		if ttl > 0 {
			config.Redis.Set(config.Ctx, "blacklist:"+jti, "1", ttl)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Logout berhasil",
	})
}
