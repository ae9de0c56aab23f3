package domain

import "time"

type RequestStatus string

const (
	RequestPending      RequestStatus = "pending"
	RequestProposalSent RequestStatus = "proposta_enviada"
	RequestHired        RequestStatus = "contratado"
	RequestInProgress   RequestStatus = "em_execucao"
	RequestCompleted    RequestStatus = "completed"
	RequestCancelled    RequestStatus = "cancelled"
)

func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestProposalSent, RequestHired,
		RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	default:
		return false
	}
}

// IsTerminalRequestStatus reports whether no further transition is allowed.
func IsTerminalRequestStatus(s RequestStatus) bool {
	return s == RequestCompleted || s == RequestCancelled
}

type Urgency string

const (
	UrgencyLow    Urgency = "baixa"
	UrgencyMedium Urgency = "media"
	UrgencyHigh   Urgency = "alta"
)

type ServiceRequest struct {
	ID             int64         `json:"id"`
	ClientID       int64         `json:"client_id" validate:"required"`
	ProfessionalID *int64        `json:"professional_id,omitempty"`
	Title          string        `json:"title" validate:"required"`
	Description    string        `json:"description,omitempty" gorm:"type:text"`
	Category       string        `json:"category" validate:"required"`
	Location       string        `json:"location"`
	Budget         float64       `json:"budget,omitempty"`
	Urgency        Urgency       `json:"urgency"`
	Status         RequestStatus `json:"status"`
	CancelReason   string        `json:"cancel_reason,omitempty" gorm:"type:text"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`
}
