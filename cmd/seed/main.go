package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/http/handler"
	"github.com/pandu2406/pst-1504/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seeder idempoten: user dan layanan yang sudah ada dilewati, aman
// dijalankan berulang.
func main() {
	config.LoadEnv()
	config.InitDB()
	defer config.CloseDB()

	seedUsers()
	seedServices()
	seedQRCode()

	log.Println("Seed selesai")
}

func seedUsers() {
	type seedUser struct {
		name     string
		username string
		password string
		role     string
	}

	users := []seedUser{
		{"Super Admin", "superadmin", "superadmin", models.RoleSuperadmin},
	}
	for i := 1; i <= 11; i++ {
		users = append(users, seedUser{
			name:     fmt.Sprintf("Admin %d", i),
			username: fmt.Sprintf("admin%d", i),
			password: fmt.Sprintf("admin%d", i),
			role:     models.RoleAdmin,
		})
	}

	for _, u := range users {
		var exists int
		if err := config.DB.QueryRow(
			`SELECT COUNT(*) FROM users WHERE username = ?`, u.username,
		).Scan(&exists); err != nil {
			log.Fatalf("Gagal cek user %s: %v", u.username, err)
		}
		if exists > 0 {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Gagal hash password %s: %v", u.username, err)
		}

		_, err = config.DB.Exec(`
			INSERT INTO users (id, name, username, password, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, NOW(), NOW())
		`, uuid.NewString(), u.name, u.username, string(hashed), u.role)
		if err != nil {
			log.Fatalf("Gagal insert user %s: %v", u.username, err)
		}
		log.Printf("User %s (%s) dibuat", u.username, u.role)
	}
}

func seedServices() {
	services := []string{
		"Perpustakaan",
		"Konsultasi Statistik",
		"Rekomendasi Statistik",
	}

	for _, name := range services {
		var exists int
		if err := config.DB.QueryRow(
			`SELECT COUNT(*) FROM services WHERE name = ?`, name,
		).Scan(&exists); err != nil {
			log.Fatalf("Gagal cek layanan %s: %v", name, err)
		}
		if exists > 0 {
			continue
		}

		_, err := config.DB.Exec(`
			INSERT INTO services (id, name, status, created_at, updated_at)
			VALUES (?, ?, 'ACTIVE', NOW(), NOW())
		`, uuid.NewString(), name)
		if err != nil {
			log.Fatalf("Gagal insert layanan %s: %v", name, err)
		}
		log.Printf("Layanan %s dibuat", name)
	}
}

func seedQRCode() {
	const path = "public/qrcodes/pst-qrcode.png"
	if err := handler.GenerateStaticQRCode(path); err != nil {
		log.Fatalf("Gagal membuat QR statis: %v", err)
	}
	log.Printf("QR statis ditulis ke %s", path)
}
