package handler

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/yeqown/go-qrcode"
)

const qrcodePath = "public/qrcodes/pst-qrcode.png"

// tempLinkTTL durasi hidup link form, default 30 menit.
func tempLinkTTL() time.Duration {
	minutes, err := strconv.Atoi(config.GetEnv("TEMP_LINK_TTL_MINUTES", "30"))
	if err != nil || minutes < 1 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// CreateTempLink mint token sekali pakai untuk form pengunjung. Dipanggil
// front-end saat pengunjung scan QR statis, sebelum form ditampilkan.
func CreateTempLink(c *fiber.Ctx) error {
	linkUUID := uuid.NewString()
	expiresAt := time.Now().Add(tempLinkTTL())

	_, err := config.DB.Exec(`
		INSERT INTO temp_visitor_links (id, uuid, expires_at, used, created_at)
		VALUES (?, ?, ?, 0, NOW())
	`, uuid.NewString(), linkUUID, expiresAt)
	if err != nil {
		log.Printf("[templink] gagal membuat temp link: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal membuat link form",
		})
	}

	baseURL := config.GetEnv("APP_BASE_URL", "http://localhost:3000")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uuid":      linkUUID,
		"expiresAt": expiresAt,
		"formUrl":   baseURL + "/visitor-form/" + linkUUID,
	})
}

// GetQRCode sajikan PNG QR statis yang mengarah ke halaman form.
// File dibuat sekali oleh seeder; kalau hilang, generate ulang di sini.
func GetQRCode(c *fiber.Ctx) error {
	if _, err := os.Stat(qrcodePath); os.IsNotExist(err) {
		if err := GenerateStaticQRCode(qrcodePath); err != nil {
			log.Printf("[templink] gagal generate QR: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Gagal membuat QR code",
			})
		}
	}

	return c.SendFile(qrcodePath)
}

// GenerateStaticQRCode tulis QR PNG untuk STATIC_FORM_UUID. Dipakai
// seeder dan endpoint QR.
func GenerateStaticQRCode(path string) error {
	baseURL := config.GetEnv("APP_BASE_URL", "http://localhost:3000")
	staticUUID := config.GetEnv("STATIC_FORM_UUID", "pst-static-form")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	qrc, err := qrcode.New(baseURL + "/visitor-form/" + staticUUID)
	if err != nil {
		return err
	}

	return qrc.Save(path)
}
