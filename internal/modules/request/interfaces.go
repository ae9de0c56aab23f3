package request

import (
	"context"

	"angoconnect/internal/domain"
)

// RequestRepository defines the persistence operations for service requests.
type RequestRepository interface {
	Create(ctx context.Context, sr *domain.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	GetByClientID(ctx context.Context, clientID int64, limit, offset int) ([]domain.ServiceRequest, error)
	GetByProfessionalID(ctx context.Context, professionalID int64) ([]domain.ServiceRequest, error)
	ListOpen(ctx context.Context, category, location string, limit, offset int) ([]domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
}

// ProposalCounter reports how many bids a request has collected.
type ProposalCounter interface {
	CountByRequestID(ctx context.Context, requestID int64) (int64, error)
}

// NotificationSender pushes user-facing notifications as a side effect.
type NotificationSender interface {
	NotifyRequestCancelled(ctx context.Context, professionalID, requestID int64, reason string) error
	NotifyWorkStarted(ctx context.Context, clientID, requestID int64) error
	NotifyWorkCompleted(ctx context.Context, professionalID, requestID int64) error
}
