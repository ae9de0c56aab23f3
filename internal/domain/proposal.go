package domain

import "time"

type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "pending"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalWithdrawn ProposalStatus = "withdrawn"
)

func ValidProposalStatus(s ProposalStatus) bool {
	switch s {
	case ProposalPending, ProposalAccepted, ProposalRejected, ProposalWithdrawn:
		return true
	default:
		return false
	}
}

// IsTerminalProposalStatus: accepted, rejected and withdrawn admit no further
// transitions.
func IsTerminalProposalStatus(s ProposalStatus) bool {
	return s != ProposalPending
}

type Proposal struct {
	ID                int64          `json:"id"`
	ServiceRequestID  int64          `json:"service_request_id" validate:"required"`
	ProfessionalID    int64          `json:"professional_id" validate:"required"`
	ClientID          int64          `json:"client_id" validate:"required"`
	Price             float64        `json:"price" validate:"required,gt=0"`
	Message           string         `json:"message,omitempty" gorm:"type:text"`
	EstimatedDuration string         `json:"estimated_duration,omitempty"`
	Status            ProposalStatus `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
