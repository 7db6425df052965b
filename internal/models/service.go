package models

import "time"

type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "ACTIVE"
	ServiceInactive ServiceStatus = "INACTIVE"
)

type Service struct {
	ID        string
	Name      string
	Status    ServiceStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateServiceRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateServiceRequest struct {
	Name   string `json:"name" validate:"omitempty"`
	Status string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type ServiceResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    ServiceStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func ToServiceResponse(s Service) ServiceResponse {
	return ServiceResponse{
		ID:        s.ID,
		Name:      s.Name,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
