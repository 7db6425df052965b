package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var displayServingCols = []string{
	"id", "queue_number", "queue_type", "status", "created_at", "start_time", "service_name", "admin_name",
}

var displayNextCols = []string{
	"id", "queue_number", "queue_type", "status", "created_at", "service_name",
}

func expectDisplayQueries(mock sqlmock.Sqlmock, createdAt time.Time) {
	mock.ExpectQuery("SELECT q.id, q.queue_number").
		WillReturnRows(sqlmock.NewRows(displayServingCols).
			AddRow("q-1", 2, "OFFLINE", "SERVING", createdAt, createdAt.Add(5*time.Minute), "Perpustakaan", "Admin Satu"))
	mock.ExpectQuery("SELECT q.id, q.queue_number").
		WillReturnRows(sqlmock.NewRows(displayNextCols).
			AddRow("q-2", 3, "ONLINE", "WAITING", createdAt.Add(time.Minute), "Konsultasi Statistik"))
}

type displayResponse struct {
	ServingQueues []json.RawMessage `json:"servingQueues"`
	NextQueue     json.RawMessage   `json:"nextQueue"`
	Hash          string            `json:"hash"`
	HasChanges    bool              `json:"hasChanges"`
}

// Polling dengan hash yang sama harus menghasilkan hasChanges=false
// selama data display tidak berubah.
func TestQueueDisplayHashGate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	config.DB = db

	app := fiber.New()
	app.Get("/api/queue-display", GetQueueDisplay)

	createdAt := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	expectDisplayQueries(mock, createdAt)
	expectDisplayQueries(mock, createdAt)

	// Polling pertama: tanpa hash, selalu dianggap berubah
	req := httptest.NewRequest(http.MethodGet, "/api/queue-display", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var first displayResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	assert.True(t, first.HasChanges)
	assert.NotEmpty(t, first.Hash)
	assert.Len(t, first.ServingQueues, 1)
	assert.NotNil(t, first.NextQueue)

	// Polling kedua dengan hash hasil pertama: tidak ada perubahan
	req = httptest.NewRequest(http.MethodGet, "/api/queue-display", nil)
	req.Header.Set("x-queue-hash", first.Hash)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)

	var second displayResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	assert.False(t, second.HasChanges)
	assert.Equal(t, first.Hash, second.Hash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
