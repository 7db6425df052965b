package models

import (
	"database/sql"
	"time"
)

const (
	NotifNewQueue       = "NEW_QUEUE"
	NotifQueueServing   = "QUEUE_SERVING"
	NotifQueueCompleted = "QUEUE_COMPLETED"
	NotifQueueCanceled  = "QUEUE_CANCELED"
)

// Notification dengan UserID null terlihat oleh semua staff.
type Notification struct {
	ID        string
	Type      string
	Title     string
	Message   string
	IsRead    bool
	UserID    sql.NullString
	CreatedAt time.Time
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	UserID    *string   `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToNotificationResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.UserID.Valid {
		resp.UserID = &n.UserID.String
	}
	return resp
}
