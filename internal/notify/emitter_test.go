package notify

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notifCols = []string{"id", "type", "title", "message", "is_read", "user_id", "created_at"}

func TestEmitGlobal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = Emit(db, models.NotifNewQueue, TitleNewQueue, "Antrean baru #1-0109 (Offline) dari Budi untuk layanan Perpustakaan", nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, type, title, message, is_read, user_id, created_at").
		WithArgs("admin-1", 50).
		WillReturnRows(sqlmock.NewRows(notifCols).
			AddRow("n-2", models.NotifQueueServing, TitleServing, "pesan dua", false, nil, time.Now()).
			AddRow("n-1", models.NotifNewQueue, TitleNewQueue, "pesan satu", false, "admin-1", time.Now().Add(-time.Minute)))

	result, err := ListUnread(db, "admin-1", 50)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "n-2", result[0].ID)
	assert.Nil(t, result[0].UserID)
	require.NotNil(t, result[1].UserID)
	assert.Equal(t, "admin-1", *result[1].UserID)
}

func TestMarkReadOwn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, type, title, message, is_read, user_id, created_at").
		WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows(notifCols).
			AddRow("n-1", models.NotifQueueCompleted, TitleCompleted, "pesan", false, "admin-1", time.Now()))
	mock.ExpectExec("UPDATE notifications SET is_read = 1").
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := MarkRead(db, "n-1", "admin-1")
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// sudah terbaca: tidak ada UPDATE kedua
	mock.ExpectQuery("SELECT id, type, title, message, is_read, user_id, created_at").
		WillReturnRows(sqlmock.NewRows(notifCols).
			AddRow("n-1", models.NotifQueueCompleted, TitleCompleted, "pesan", true, "admin-1", time.Now()))

	n, err := MarkRead(db, "n-1", "admin-1")
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, type, title, message, is_read, user_id, created_at").
		WillReturnRows(sqlmock.NewRows(notifCols).
			AddRow("n-1", models.NotifQueueCompleted, TitleCompleted, "pesan", false, "admin-1", time.Now()))

	_, err = MarkRead(db, "n-1", "admin-2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkReadNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, type, title, message, is_read, user_id, created_at").
		WillReturnRows(sqlmock.NewRows(notifCols))

	_, err = MarkRead(db, "missing", "admin-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE notifications SET is_read = 1").
		WithArgs("admin-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, MarkAllRead(db, "admin-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
