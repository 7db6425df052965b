package models

import (
	"database/sql"
	"time"
)

// Visitor dibuat sekali per pengisian form, tidak pernah diubah setelahnya.
type Visitor struct {
	ID          string
	Name        string
	Phone       string
	Institution sql.NullString
	Email       sql.NullString
	CreatedAt   time.Time
}

type VisitorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Institution *string   `json:"institution,omitempty"`
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToVisitorResponse(v Visitor) VisitorResponse {
	resp := VisitorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Phone:     v.Phone,
		CreatedAt: v.CreatedAt,
	}
	if v.Institution.Valid {
		resp.Institution = &v.Institution.String
	}
	if v.Email.Valid {
		resp.Email = &v.Email.String
	}
	return resp
}
