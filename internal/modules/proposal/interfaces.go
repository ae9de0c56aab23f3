package proposal

import (
	"context"

	"angoconnect/internal/domain"
)

// ProposalRepository defines the persistence operations the workflow needs.
type ProposalRepository interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id int64) (*domain.Proposal, error)
	GetByRequestID(ctx context.Context, requestID int64) ([]domain.Proposal, error)
	GetByProfessionalID(ctx context.Context, professionalID int64, limit, offset int) ([]domain.Proposal, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	RejectSiblings(ctx context.Context, requestID, acceptedID int64) error
}

// RequestRepository is the slice of the service-request store this module touches.
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Hire(ctx context.Context, id, professionalID int64) error
}

// UserDirectory resolves the submitting user so the workflow can enforce the
// verified-professional gate.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// NotificationSender pushes user-facing notifications as a side effect.
type NotificationSender interface {
	NotifyProposalReceived(ctx context.Context, clientID, requestID, proposalID int64, price float64) error
	NotifyProposalRejected(ctx context.Context, professionalID, requestID, proposalID int64) error
}
