package config

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

// InitDB buka pool MySQL. DSN harus pakai parseTime=true supaya
// kolom DATETIME bisa discan ke time.Time.
func InitDB() {
	dsn := GetEnv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/pst?parseTime=true&loc=Local")

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal("Gagal membuka koneksi database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Database tidak nyambung:", err)
	}

	DB = db
	log.Println("Database connected")
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
