package models

import (
	"database/sql"
	"time"
)

type QueueStatus string

const (
	StatusWaiting   QueueStatus = "WAITING"
	StatusServing   QueueStatus = "SERVING"
	StatusCompleted QueueStatus = "COMPLETED"
	StatusCanceled  QueueStatus = "CANCELED"
)

type QueueType string

const (
	QueueTypeOnline  QueueType = "ONLINE"
	QueueTypeOffline QueueType = "OFFLINE"
)

// ValidQueueStatus cek apakah string adalah status antrean yang dikenal.
func ValidQueueStatus(s string) bool {
	switch QueueStatus(s) {
	case StatusWaiting, StatusServing, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

/*
|--------------------------------------------------------------------------
| DATABASE MODEL (INTERNAL)
|--------------------------------------------------------------------------
| Dipakai untuk query ke DB
*/
type Queue struct {
	ID           string
	QueueNumber  int
	QueueType    QueueType
	Status       QueueStatus
	VisitorID    string
	ServiceID    string
	AdminID      sql.NullString
	TrackingCode string
	FilledSKD    bool
	CreatedAt    time.Time
	StartTime    sql.NullTime
	EndTime      sql.NullTime
}

/*
|--------------------------------------------------------------------------
| RESPONSE DTO
|--------------------------------------------------------------------------
| Projection antrean + relasi (visitor/service/admin) untuk API response
*/
type QueueVisitor struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone,omitempty"`
	Institution *string `json:"institution,omitempty"`
}

type QueueService struct {
	Name string `json:"name"`
}

type QueueAdmin struct {
	Name string `json:"name"`
}

type QueueResponse struct {
	ID           string        `json:"id"`
	QueueNumber  int           `json:"queueNumber"`
	QueueType    QueueType     `json:"queueType"`
	Status       QueueStatus   `json:"status"`
	AdminID      *string       `json:"adminId,omitempty"`
	TrackingCode string        `json:"trackingCode,omitempty"`
	FilledSKD    bool          `json:"filledSKD"`
	CreatedAt    time.Time     `json:"createdAt"`
	StartTime    *time.Time    `json:"startTime,omitempty"`
	EndTime      *time.Time    `json:"endTime,omitempty"`
	Visitor      *QueueVisitor `json:"visitor,omitempty"`
	Service      *QueueService `json:"service,omitempty"`
	Admin        *QueueAdmin   `json:"admin,omitempty"`
}

/*
|--------------------------------------------------------------------------
| MAPPER
|--------------------------------------------------------------------------
| Convert Queue (DB) -> QueueResponse (API)
*/
func ToQueueResponse(q Queue) QueueResponse {
	resp := QueueResponse{
		ID:           q.ID,
		QueueNumber:  q.QueueNumber,
		QueueType:    q.QueueType,
		Status:       q.Status,
		TrackingCode: q.TrackingCode,
		FilledSKD:    q.FilledSKD,
		CreatedAt:    q.CreatedAt,
	}

	if q.AdminID.Valid {
		resp.AdminID = &q.AdminID.String
	}
	if q.StartTime.Valid {
		resp.StartTime = &q.StartTime.Time
	}
	if q.EndTime.Valid {
		resp.EndTime = &q.EndTime.Time
	}

	return resp
}
