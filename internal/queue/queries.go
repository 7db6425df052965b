package queue

import (
	"database/sql"
	"time"

	"github.com/pandu2406/pst-1504/internal/models"
)

// ListQueues ambil antrean dengan status tertentu, urut nomor naik.
// dateFilter "today" membatasi ke hari ini, "all" tanpa batas tanggal.
func ListQueues(db *sql.DB, status models.QueueStatus, dateFilter string) ([]models.QueueResponse, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM queues q
		JOIN visitors v ON q.visitor_id = v.id
		JOIN services s ON q.service_id = s.id
		LEFT JOIN users u ON q.admin_id = u.id
		WHERE q.status = ?
	`
	args := []any{string(status)}

	if dateFilter != "all" {
		query += ` AND q.created_at >= CURDATE() AND q.created_at < CURDATE() + INTERVAL 1 DAY`
	}
	query += ` ORDER BY q.queue_number ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.QueueResponse{}
	for rows.Next() {
		var q models.Queue
		var d detail
		err := rows.Scan(
			&q.ID, &q.QueueNumber, &q.QueueType, &q.Status, &q.VisitorID, &q.ServiceID,
			&q.AdminID, &q.TrackingCode, &q.FilledSKD, &q.CreatedAt, &q.StartTime, &q.EndTime,
			&d.VisitorName, &d.Phone, &d.Institution, &d.ServiceName, &d.AdminName,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, buildResponse(q, d))
	}

	return result, rows.Err()
}

// DisplayData ambil payload display publik: antrean yang sedang dilayani
// (paling lama duluan) plus antrean WAITING berikutnya. Data pengunjung
// tidak diikutkan, display bisa dilihat siapa saja.
func DisplayData(db *sql.DB, adminID, dateFilter string) ([]models.QueueResponse, *models.QueueResponse, error) {
	servingQuery := `
		SELECT q.id, q.queue_number, q.queue_type, q.status, q.created_at, q.start_time,
			s.name, u.name
		FROM queues q
		JOIN services s ON q.service_id = s.id
		LEFT JOIN users u ON q.admin_id = u.id
		WHERE q.status = 'SERVING'
	`
	args := []any{}

	if dateFilter != "all" {
		servingQuery += ` AND q.created_at >= CURDATE()`
	}
	if adminID != "" && adminID != "all" {
		servingQuery += ` AND q.admin_id = ?`
		args = append(args, adminID)
	}
	servingQuery += ` ORDER BY q.start_time ASC`

	rows, err := db.Query(servingQuery, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	serving := []models.QueueResponse{}
	for rows.Next() {
		var q models.Queue
		var serviceName string
		var adminName sql.NullString
		err := rows.Scan(&q.ID, &q.QueueNumber, &q.QueueType, &q.Status, &q.CreatedAt, &q.StartTime,
			&serviceName, &adminName)
		if err != nil {
			return nil, nil, err
		}

		resp := models.ToQueueResponse(q)
		resp.TrackingCode = ""
		resp.Service = &models.QueueService{Name: serviceName}
		if adminName.Valid {
			resp.Admin = &models.QueueAdmin{Name: adminName.String}
		}
		serving = append(serving, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	nextQuery := `
		SELECT q.id, q.queue_number, q.queue_type, q.status, q.created_at, s.name
		FROM queues q
		JOIN services s ON q.service_id = s.id
		WHERE q.status = 'WAITING'
	`
	if dateFilter != "all" {
		nextQuery += ` AND q.created_at >= CURDATE()`
	}
	nextQuery += ` ORDER BY q.queue_number ASC LIMIT 1`

	var nq models.Queue
	var nextServiceName string
	err = db.QueryRow(nextQuery).Scan(&nq.ID, &nq.QueueNumber, &nq.QueueType, &nq.Status, &nq.CreatedAt, &nextServiceName)
	if err == sql.ErrNoRows {
		return serving, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	next := models.ToQueueResponse(nq)
	next.TrackingCode = ""
	next.Service = &models.QueueService{Name: nextServiceName}

	return serving, &next, nil
}

type StatsCounts struct {
	Waiting   int `json:"waiting"`
	Serving   int `json:"serving"`
	Completed int `json:"completed"`
	Canceled  int `json:"canceled"`
	Total     int `json:"total"`
}

type StatsAverages struct {
	WaitTimeMinutes    int `json:"waitTimeMinutes"`
	ServiceTimeMinutes int `json:"serviceTimeMinutes"`
}

type Stats struct {
	Counts   StatsCounts   `json:"counts"`
	Averages StatsAverages `json:"averages"`
}

// DashboardStats hitung jumlah antrean per status plus rata-rata waktu
// tunggu (created->start) dan waktu layanan (start->end) dalam menit.
func DashboardStats(db *sql.DB) (*Stats, error) {
	var stats Stats

	counts := []struct {
		status models.QueueStatus
		dest   *int
	}{
		{models.StatusWaiting, &stats.Counts.Waiting},
		{models.StatusServing, &stats.Counts.Serving},
		{models.StatusCompleted, &stats.Counts.Completed},
		{models.StatusCanceled, &stats.Counts.Canceled},
	}

	for _, c := range counts {
		err := db.QueryRow(`SELECT COUNT(*) FROM queues WHERE status = ?`, string(c.status)).Scan(c.dest)
		if err != nil {
			return nil, err
		}
	}
	stats.Counts.Total = stats.Counts.Waiting + stats.Counts.Serving +
		stats.Counts.Completed + stats.Counts.Canceled

	rows, err := db.Query(`
		SELECT created_at, start_time, end_time
		FROM queues
		WHERE status IN ('COMPLETED', 'SERVING')
		AND start_time IS NOT NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totalWait, totalService time.Duration
	var waitCount, serviceCount int

	for rows.Next() {
		var createdAt time.Time
		var startTime, endTime sql.NullTime
		if err := rows.Scan(&createdAt, &startTime, &endTime); err != nil {
			return nil, err
		}

		if !startTime.Valid {
			continue
		}
		totalWait += startTime.Time.Sub(createdAt)
		waitCount++

		if endTime.Valid {
			totalService += endTime.Time.Sub(startTime.Time)
			serviceCount++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if waitCount > 0 {
		stats.Averages.WaitTimeMinutes = int((totalWait / time.Duration(waitCount)).Round(time.Minute).Minutes())
	}
	if serviceCount > 0 {
		stats.Averages.ServiceTimeMinutes = int((totalService / time.Duration(serviceCount)).Round(time.Minute).Minutes())
	}

	return &stats, nil
}

// FindByTrackingCode ambil projection publik untuk halaman tracking
// pengunjung. Nomor telepon tidak diikutkan.
func FindByTrackingCode(db *sql.DB, code string) (*models.QueueResponse, error) {
	var q models.Queue
	var serviceName string
	var adminName sql.NullString

	err := db.QueryRow(`
		SELECT q.id, q.queue_number, q.queue_type, q.status, q.tracking_code, q.filled_skd,
			q.created_at, q.start_time, q.end_time, s.name, u.name
		FROM queues q
		JOIN services s ON q.service_id = s.id
		LEFT JOIN users u ON q.admin_id = u.id
		WHERE q.tracking_code = ?
	`, code).Scan(
		&q.ID, &q.QueueNumber, &q.QueueType, &q.Status, &q.TrackingCode, &q.FilledSKD,
		&q.CreatedAt, &q.StartTime, &q.EndTime, &serviceName, &adminName,
	)

	if err == sql.ErrNoRows {
		return nil, ErrQueueNotFound
	}
	if err != nil {
		return nil, err
	}

	resp := models.ToQueueResponse(q)
	resp.Service = &models.QueueService{Name: serviceName}
	if adminName.Valid {
		resp.Admin = &models.QueueAdmin{Name: adminName.String}
	}

	return &resp, nil
}

// MarkSurveyFilled set filled_skd dari halaman tracking pengunjung.
// Independen dari status antrean.
func MarkSurveyFilled(db *sql.DB, code string) error {
	res, err := db.Exec(`UPDATE queues SET filled_skd = 1 WHERE tracking_code = ?`, code)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrQueueNotFound
	}

	return nil
}
