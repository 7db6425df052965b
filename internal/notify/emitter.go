package notify

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/pandu2406/pst-1504/internal/models"
)

var (
	ErrNotFound  = errors.New("notifikasi tidak ditemukan")
	ErrForbidden = errors.New("notifikasi ini bukan milik anda")
)

// Execer dipenuhi oleh *sql.DB maupun *sql.Tx, supaya Emit bisa ikut
// dalam transaksi pembuatan/transisi antrean.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Emit menambahkan satu baris notifikasi. userID nil berarti terlihat
// oleh semua staff.
func Emit(db Execer, ntype, title, message string, userID *string) error {
	_, err := db.Exec(`
		INSERT INTO notifications (id, type, title, message, is_read, user_id, created_at)
		VALUES (?, ?, ?, ?, 0, ?, NOW())
	`, uuid.NewString(), ntype, title, message, userID)
	return err
}

// ListUnread ambil notifikasi belum dibaca yang terlihat oleh requester,
// terbaru dulu, maksimal limit baris.
func ListUnread(db *sql.DB, requesterID string, limit int) ([]models.NotificationResponse, error) {
	rows, err := db.Query(`
		SELECT id, type, title, message, is_read, user_id, created_at
		FROM notifications
		WHERE is_read = 0
		AND (user_id IS NULL OR user_id = ?)
		ORDER BY created_at DESC
		LIMIT ?
	`, requesterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.NotificationResponse{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.UserID, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, models.ToNotificationResponse(n))
	}

	return result, rows.Err()
}

// MarkRead set is_read hanya jika notifikasi global atau milik requester.
func MarkRead(db *sql.DB, id, requesterID string) (*models.Notification, error) {
	var n models.Notification
	err := db.QueryRow(`
		SELECT id, type, title, message, is_read, user_id, created_at
		FROM notifications WHERE id = ?
	`, id).Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.UserID, &n.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if n.UserID.Valid && n.UserID.String != requesterID {
		return nil, ErrForbidden
	}

	if n.IsRead {
		return &n, nil
	}

	if _, err := db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id); err != nil {
		return nil, err
	}
	n.IsRead = true

	return &n, nil
}

// MarkAllRead set is_read untuk semua notifikasi yang terlihat requester.
func MarkAllRead(db *sql.DB, requesterID string) error {
	_, err := db.Exec(`
		UPDATE notifications SET is_read = 1
		WHERE is_read = 0
		AND (user_id IS NULL OR user_id = ?)
	`, requesterID)
	return err
}
