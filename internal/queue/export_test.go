package queue

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportCols = []string{
	"queue_number", "service_name", "visitor_name", "phone", "status",
	"created_at", "start_time", "end_time", "served_by",
}

func TestExportRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT q.queue_number, s.name, v.name, v.phone").
		WillReturnRows(sqlmock.NewRows(exportCols).
			AddRow(1, "Perpustakaan", "Budi Santoso", "081234567890", "COMPLETED",
				base, base.Add(10*time.Minute), base.Add(25*time.Minute), "Admin Satu").
			AddRow(2, "Konsultasi Statistik", "Sari Dewi", "081298765432", "WAITING",
				base.Add(5*time.Minute), nil, nil, nil))

	records, err := ExportRecords(db, base)
	require.NoError(t, err)
	require.Len(t, records, 2)

	done := records[0]
	assert.Equal(t, 1, done.QueueNumber)
	assert.Equal(t, "2026-09-01 09:00:00", done.CreatedAt)
	assert.Equal(t, "2026-09-01 09:10:00", done.StartTime)
	assert.Equal(t, "2026-09-01 09:25:00", done.EndTime)
	assert.Equal(t, "Admin Satu", done.ServedBy)
	require.NotNil(t, done.WaitTimeMinutes)
	assert.Equal(t, 10, *done.WaitTimeMinutes)
	require.NotNil(t, done.ServiceTimeMinutes)
	assert.Equal(t, 15, *done.ServiceTimeMinutes)

	// belum dilayani: waktu dan menit kosong
	waiting := records[1]
	assert.Empty(t, waiting.StartTime)
	assert.Empty(t, waiting.EndTime)
	assert.Empty(t, waiting.ServedBy)
	assert.Nil(t, waiting.WaitTimeMinutes)
	assert.Nil(t, waiting.ServiceTimeMinutes)
}

func TestExportRecordCSVRow(t *testing.T) {
	wait, service := 10, 15
	rec := ExportRecord{
		QueueNumber:        7,
		ServiceType:        "Perpustakaan",
		VisitorName:        "Budi Santoso",
		PhoneNumber:        "081234567890",
		CreatedAt:          "2026-09-01 09:00:00",
		StartTime:          "2026-09-01 09:10:00",
		EndTime:            "2026-09-01 09:25:00",
		Status:             "COMPLETED",
		ServedBy:           "Admin Satu",
		WaitTimeMinutes:    &wait,
		ServiceTimeMinutes: &service,
	}

	row := rec.CSVRow()
	require.Len(t, row, len(ExportCSVHeader()))
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "10", row[9])
	assert.Equal(t, "15", row[10])

	// nil minutes jadi sel kosong, bukan "0"
	empty := ExportRecord{QueueNumber: 1}.CSVRow()
	assert.Equal(t, "", empty[9])
	assert.Equal(t, "", empty[10])
}
