package queue

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueuesToday(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WithArgs("WAITING").
		WillReturnRows(sqlmock.NewRows(detailCols).
			AddRow("q-1", 1, "OFFLINE", "WAITING", "v-1", "svc-1",
				nil, "track-1", false, time.Now(), nil, nil,
				"Budi", "0812", nil, "Perpustakaan", nil).
			AddRow("q-2", 2, "ONLINE", "WAITING", "v-2", "svc-2",
				nil, "track-2", false, time.Now(), nil, nil,
				"Sari", "0813", "BPS Provinsi", "Konsultasi Statistik", nil))

	queues, err := ListQueues(db, models.StatusWaiting, "today")
	require.NoError(t, err)
	require.Len(t, queues, 2)

	assert.Equal(t, 1, queues[0].QueueNumber)
	assert.Equal(t, 2, queues[1].QueueNumber)
	require.NotNil(t, queues[1].Visitor)
	require.NotNil(t, queues[1].Visitor.Institution)
	assert.Equal(t, "BPS Provinsi", *queues[1].Visitor.Institution)
}

func TestDisplayDataHidesVisitor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	startTime := time.Now().Add(-10 * time.Minute)
	mock.ExpectQuery("SELECT q.id, q.queue_number").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "queue_number", "queue_type", "status", "created_at", "start_time", "service_name", "admin_name",
		}).AddRow("q-1", 3, "OFFLINE", "SERVING", time.Now().Add(-20*time.Minute), startTime, "Perpustakaan", "Admin Satu"))

	mock.ExpectQuery("SELECT q.id, q.queue_number").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "queue_number", "queue_type", "status", "created_at", "service_name",
		}).AddRow("q-2", 4, "ONLINE", "WAITING", time.Now(), "Konsultasi Statistik"))

	serving, next, err := DisplayData(db, "", "today")
	require.NoError(t, err)
	require.Len(t, serving, 1)
	require.NotNil(t, next)

	// display publik: tanpa data pengunjung dan tanpa tracking code
	assert.Nil(t, serving[0].Visitor)
	assert.Empty(t, serving[0].TrackingCode)
	assert.Equal(t, "Admin Satu", serving[0].Admin.Name)
	assert.Equal(t, 4, next.QueueNumber)
	assert.Nil(t, next.Visitor)
}

func TestDisplayDataNoNextQueue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT q.id, q.queue_number").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "queue_number", "queue_type", "status", "created_at", "start_time", "service_name", "admin_name",
		}))
	mock.ExpectQuery("SELECT q.id, q.queue_number").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "queue_number", "queue_type", "status", "created_at", "service_name",
		}))

	serving, next, err := DisplayData(db, "", "today")
	require.NoError(t, err)
	assert.Empty(t, serving)
	assert.Nil(t, next)
}

func TestDashboardStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, count := range []int{3, 1, 5, 2} {
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
	}

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT created_at, start_time, end_time").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "start_time", "end_time"}).
			AddRow(base, base.Add(10*time.Minute), base.Add(25*time.Minute)).
			AddRow(base, base.Add(20*time.Minute), base.Add(45*time.Minute)))

	stats, err := DashboardStats(db)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Counts.Waiting)
	assert.Equal(t, 1, stats.Counts.Serving)
	assert.Equal(t, 5, stats.Counts.Completed)
	assert.Equal(t, 2, stats.Counts.Canceled)
	assert.Equal(t, 11, stats.Counts.Total)

	// rata-rata tunggu (10+20)/2 = 15 menit, layanan (15+25)/2 = 20 menit
	assert.Equal(t, 15, stats.Averages.WaitTimeMinutes)
	assert.Equal(t, 20, stats.Averages.ServiceTimeMinutes)
}

func TestMarkSurveyFilled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE queues SET filled_skd = 1").
		WithArgs("track-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, MarkSurveyFilled(db, "track-1"))
}

func TestMarkSurveyFilledUnknownCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE queues SET filled_skd = 1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = MarkSurveyFilled(db, "unknown")
	assert.ErrorIs(t, err, ErrQueueNotFound)
}
