package queue

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/pandu2406/pst-1504/internal/notify"
)

var (
	ErrLinkNotFound    = errors.New("link form tidak valid")
	ErrLinkUsed        = errors.New("form ini sudah pernah disubmit")
	ErrLinkExpired     = errors.New("link form sudah kedaluwarsa")
	ErrServiceNotFound = errors.New("layanan tidak ditemukan")
	ErrServiceInactive = errors.New("layanan sedang tidak aktif")
)

// dbtx dipenuhi *sql.DB dan *sql.Tx. Semua operasi ledger menerima
// handle secara eksplisit, tidak pegang state sendiri.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// AssignNextNumber naikkan counter harian secara atomik dan kembalikan
// nomor antrean berikutnya; 1 untuk tiket pertama hari itu.
//
// Dua submit bersamaan akan serialize di row lock counter, jadi nomor
// per hari dijamin {1..N} tanpa duplikat maupun lubang. Harus dipanggil
// di transaksi yang sama dengan insert tiketnya.
func AssignNextNumber(tx dbtx, day time.Time) (int, error) {
	res, err := tx.Exec(`
		INSERT INTO queue_counters (day, last_number)
		VALUES (?, LAST_INSERT_ID(1))
		ON DUPLICATE KEY UPDATE last_number = LAST_INSERT_ID(last_number + 1)
	`, day.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}

	n, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

type CreateTicketInput struct {
	Name        string
	Phone       string
	Institution string
	Email       string
	ServiceID   string
	TempUUID    string
	QueueType   models.QueueType
}

type CreateTicketResult struct {
	Queue       models.Queue
	VisitorName string
	ServiceName string
}

// CreateTicket menjalankan satu unit atomik: validasi link sekali pakai,
// buat visitor, ambil nomor, buat antrean WAITING, tandai link used, dan
// catat notifikasi NEW_QUEUE. Gagal di langkah manapun -> rollback total,
// tidak ada baris parsial yang terlihat pembaca lain.
func CreateTicket(db *sql.DB, in CreateTicketInput) (*CreateTicketResult, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Kunci baris link supaya dua submit dengan uuid sama serialize di sini.
	var link models.TempVisitorLink
	err = tx.QueryRow(`
		SELECT id, uuid, expires_at, used
		FROM temp_visitor_links
		WHERE uuid = ?
		FOR UPDATE
	`, in.TempUUID).Scan(&link.ID, &link.UUID, &link.ExpiresAt, &link.Used)

	if err == sql.ErrNoRows {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	if link.Used {
		return nil, ErrLinkUsed
	}
	if link.Expired(time.Now()) {
		return nil, ErrLinkExpired
	}

	var serviceName string
	var serviceStatus models.ServiceStatus
	err = tx.QueryRow(`SELECT name, status FROM services WHERE id = ?`, in.ServiceID).
		Scan(&serviceName, &serviceStatus)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	if serviceStatus != models.ServiceActive {
		return nil, ErrServiceInactive
	}

	visitorID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO visitors (id, name, phone, institution, email, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`, visitorID, in.Name, in.Phone, nullable(in.Institution), nullable(in.Email))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	number, err := AssignNextNumber(tx, now)
	if err != nil {
		return nil, err
	}

	queueID := uuid.NewString()
	trackingCode := uuid.NewString()
	// created_at diikat ke timestamp yang sama dengan hari counter; kalau
	// pakai NOW() milik DB, selisih jam app/DB di sekitar tengah malam bisa
	// bikin nomor dari hari yang satu menempel di baris hari yang lain.
	_, err = tx.Exec(`
		INSERT INTO queues
			(id, queue_number, queue_type, status, visitor_id, service_id, tracking_code, filled_skd, created_at)
		VALUES (?, ?, ?, 'WAITING', ?, ?, ?, 0, ?)
	`, queueID, number, string(in.QueueType), visitorID, in.ServiceID, trackingCode, now)
	if err != nil {
		return nil, err
	}

	// used = 0 sebagai guard kedua meski barisnya sudah terkunci.
	res, err := tx.Exec(`UPDATE temp_visitor_links SET used = 1 WHERE id = ? AND used = 0`, link.ID)
	if err != nil {
		return nil, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if affected == 0 {
		return nil, ErrLinkUsed
	}

	msg := notify.NewQueueMessage(number, now, in.QueueType, in.Name, serviceName)
	if err := notify.Emit(tx, models.NotifNewQueue, notify.TitleNewQueue, msg, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	q := models.Queue{
		ID:           queueID,
		QueueNumber:  number,
		QueueType:    in.QueueType,
		Status:       models.StatusWaiting,
		VisitorID:    visitorID,
		ServiceID:    in.ServiceID,
		TrackingCode: trackingCode,
		CreatedAt:    now,
	}

	return &CreateTicketResult{Queue: q, VisitorName: in.Name, ServiceName: serviceName}, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
