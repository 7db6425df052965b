package jobs

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/pandu2406/pst-1504/internal/helper"
)

// Start daftarkan background job lalu jalankan scheduler:
//   - tiap jam: hapus temp link kedaluwarsa yang belum terpakai
//     (link terpakai disimpan sebagai jejak audit)
//   - tiap pagi: ingatkan pengunjung kemarin yang belum isi SKD lewat WhatsApp
func Start(db *sql.DB) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			PurgeExpiredLinks(db)
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(func() {
			SendSurveyReminders(db)
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Printf("[jobs] scheduler berjalan, %d job terdaftar", len(sched.Jobs()))
	return sched, nil
}

// PurgeExpiredLinks hapus temp link yang lewat masa berlaku dan belum
// pernah dipakai.
func PurgeExpiredLinks(db *sql.DB) {
	res, err := db.Exec(`
		DELETE FROM temp_visitor_links
		WHERE used = 0 AND expires_at < NOW()
	`)
	if err != nil {
		log.Printf("[jobs] gagal membersihkan temp link: %v", err)
		return
	}

	if affected, err := res.RowsAffected(); err == nil && affected > 0 {
		log.Printf("[jobs] %d temp link kedaluwarsa dihapus", affected)
	}
}

// SendSurveyReminders kirim pengingat SKD ke pengunjung kemarin yang
// antreannya selesai tapi belum mengisi survei. Best effort per nomor,
// kegagalan satu nomor tidak menghentikan yang lain.
func SendSurveyReminders(db *sql.DB) {
	rows, err := db.Query(`
		SELECT v.name, v.phone, q.tracking_code
		FROM queues q
		JOIN visitors v ON q.visitor_id = v.id
		WHERE q.status = 'COMPLETED'
		AND q.filled_skd = 0
		AND v.phone <> ''
		AND q.created_at >= CURDATE() - INTERVAL 1 DAY
		AND q.created_at < CURDATE()
	`)
	if err != nil {
		log.Printf("[jobs] gagal mengambil antrean untuk pengingat SKD: %v", err)
		return
	}
	defer rows.Close()

	type target struct {
		name, phone, code string
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.name, &t.phone, &t.code); err != nil {
			continue
		}
		targets = append(targets, t)
	}

	sent := 0
	for _, t := range targets {
		message := "Halo " + t.name + ", terima kasih sudah berkunjung ke Pelayanan Statistik Terpadu. " +
			"Mohon luangkan waktu mengisi Survei Kebutuhan Data agar layanan kami semakin baik."

		if err := helper.SendWhatsAppBotMessage(t.phone, message); err != nil {
			if errors.Is(err, helper.ErrWhatsAppNotConfigured) {
				log.Printf("[jobs] pengingat SKD dilewati: %v", err)
				return
			}
			log.Printf("[jobs] gagal mengirim pengingat SKD ke %s: %v", t.phone, err)
			continue
		}
		sent++
	}

	if len(targets) > 0 {
		log.Printf("[jobs] pengingat SKD terkirim %d/%d", sent, len(targets))
	}
}
