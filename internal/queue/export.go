package queue

import (
	"database/sql"
	"strconv"
	"time"
)

const exportTimeFormat = "2006-01-02 15:04:05"

// ExportRecord satu baris laporan antrean, flat supaya langsung bisa
// jadi baris CSV maupun elemen array JSON.
type ExportRecord struct {
	QueueNumber        int    `json:"queueNumber"`
	ServiceType        string `json:"serviceType"`
	VisitorName        string `json:"visitorName"`
	PhoneNumber        string `json:"phoneNumber"`
	CreatedAt          string `json:"createdAt"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	Status             string `json:"status"`
	ServedBy           string `json:"servedBy"`
	WaitTimeMinutes    *int   `json:"waitTimeMinutes"`
	ServiceTimeMinutes *int   `json:"serviceTimeMinutes"`
}

// CSVHeader urutan kolom sama dengan field JSON-nya.
func ExportCSVHeader() []string {
	return []string{
		"queueNumber", "serviceType", "visitorName", "phoneNumber",
		"createdAt", "startTime", "endTime", "status", "servedBy",
		"waitTimeMinutes", "serviceTimeMinutes",
	}
}

func (r ExportRecord) CSVRow() []string {
	minutes := func(m *int) string {
		if m == nil {
			return ""
		}
		return strconv.Itoa(*m)
	}

	return []string{
		strconv.Itoa(r.QueueNumber), r.ServiceType, r.VisitorName, r.PhoneNumber,
		r.CreatedAt, r.StartTime, r.EndTime, r.Status, r.ServedBy,
		minutes(r.WaitTimeMinutes), minutes(r.ServiceTimeMinutes),
	}
}

// ExportRecords ambil semua antrean sejak tanggal tertentu untuk laporan,
// urut waktu pembuatan, lengkap dengan waktu tunggu dan waktu layanan
// dalam menit (kosong untuk antrean yang belum/tidak dilayani).
func ExportRecords(db *sql.DB, since time.Time) ([]ExportRecord, error) {
	rows, err := db.Query(`
		SELECT q.queue_number, s.name, v.name, v.phone, q.status,
			q.created_at, q.start_time, q.end_time, u.name
		FROM queues q
		JOIN visitors v ON q.visitor_id = v.id
		JOIN services s ON q.service_id = s.id
		LEFT JOIN users u ON q.admin_id = u.id
		WHERE q.created_at >= ?
		ORDER BY q.created_at ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []ExportRecord{}
	for rows.Next() {
		var rec ExportRecord
		var createdAt time.Time
		var startTime, endTime sql.NullTime
		var servedBy sql.NullString

		err := rows.Scan(&rec.QueueNumber, &rec.ServiceType, &rec.VisitorName, &rec.PhoneNumber,
			&rec.Status, &createdAt, &startTime, &endTime, &servedBy)
		if err != nil {
			return nil, err
		}

		rec.CreatedAt = createdAt.Format(exportTimeFormat)
		if startTime.Valid {
			rec.StartTime = startTime.Time.Format(exportTimeFormat)
			wait := int(startTime.Time.Sub(createdAt).Round(time.Minute).Minutes())
			rec.WaitTimeMinutes = &wait
		}
		if endTime.Valid {
			rec.EndTime = endTime.Time.Format(exportTimeFormat)
			if startTime.Valid {
				service := int(endTime.Time.Sub(startTime.Time).Round(time.Minute).Minutes())
				rec.ServiceTimeMinutes = &service
			}
		}
		if servedBy.Valid {
			rec.ServedBy = servedBy.String
		}

		result = append(result, rec)
	}

	return result, rows.Err()
}
