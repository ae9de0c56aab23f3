package notification

import "time"

// Type represents notification type
type Type string

const (
	// Proposal lifecycle
	TypeNewProposal      Type = "new_proposal"      // Client: nova proposta recebida
	TypeProposalRejected Type = "proposal_rejected" // Professional: proposta recusada

	// Request lifecycle
	TypeRequestCancelled Type = "request_cancelled" // Professional: pedido cancelado
	TypeWorkStarted      Type = "work_started"      // Client: serviço iniciado
	TypeWorkCompleted    Type = "work_completed"    // Professional: serviço concluído

	// Verification
	TypeVerificationApproved Type = "verification_approved" // Professional: verificação aprovada
	TypeVerificationRejected Type = "verification_rejected" // Professional: verificação recusada

	// Review & Feedback
	TypeNewReview Type = "new_review" // Professional: nova avaliação
)

// Notification represents a user notification
type Notification struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Type        Type       `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message,omitempty"`
	RelatedID   *int64     `json:"related_id,omitempty"`
	RelatedType string     `json:"related_type,omitempty"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
