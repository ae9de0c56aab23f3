package domain

import "time"

type Review struct {
	ID               int64     `json:"id"`
	ServiceRequestID int64     `json:"service_request_id" validate:"required"`
	ClientID         int64     `json:"client_id"`
	ProfessionalID   int64     `json:"professional_id"`
	Rating           int       `json:"rating" validate:"required,min=1,max=5"`
	Comment          string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
}
