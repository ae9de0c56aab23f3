package request

import (
	"context"
	"errors"
	"strings"

	"angoconnect/internal/domain"
	pkgvalidator "angoconnect/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	requests  RequestRepository
	proposals ProposalCounter
	notifs    NotificationSender
}

func NewService(requests RequestRepository, proposals ProposalCounter, notifs NotificationSender) *Service {
	return &Service{
		requests:  requests,
		proposals: proposals,
		notifs:    notifs,
	}
}

func (s *Service) CreateRequest(ctx context.Context, clientID int64, req CreateRequestRequest) (*domain.ServiceRequest, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, ErrValidation
	}
	if req.Budget < 0 {
		return nil, ErrValidation
	}

	urgency := domain.Urgency(req.Urgency)
	switch urgency {
	case "":
		urgency = domain.UrgencyMedium
	case domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh:
	default:
		return nil, ErrValidation
	}

	sr := &domain.ServiceRequest{
		ClientID:    clientID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Budget:      req.Budget,
		Urgency:     urgency,
		Status:      domain.RequestPending,
	}

	if fields := pkgvalidator.Validate(sr); fields != nil {
		return nil, ErrValidation
	}

	if err := s.requests.Create(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

func (s *Service) GetMyRequests(ctx context.Context, clientID int64, limit, offset int) ([]domain.ServiceRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.requests.GetByClientID(ctx, clientID, limit, offset)
}

func (s *Service) GetAssignedRequests(ctx context.Context, professionalID int64) ([]domain.ServiceRequest, error) {
	return s.requests.GetByProfessionalID(ctx, professionalID)
}

func (s *Service) GetOpenRequests(ctx context.Context, category, location string, limit, offset int) ([]domain.ServiceRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.requests.ListOpen(ctx, category, location, limit, offset)
}

// GetRequest returns a request visible to the caller: the owning client, the
// hired professional, or anyone while the request is still open for bids.
func (s *Service) GetRequest(ctx context.Context, id, userID int64) (*domain.ServiceRequest, error) {
	sr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if sr.ClientID == userID {
		return sr, nil
	}
	if sr.ProfessionalID != nil && *sr.ProfessionalID == userID {
		return sr, nil
	}
	if sr.Status == domain.RequestPending || sr.Status == domain.RequestProposalSent {
		return sr, nil
	}
	return nil, ErrForbidden
}

// CountProposals backs the bid counter shown to the owning client on the
// request detail.
func (s *Service) CountProposals(ctx context.Context, requestID int64) (int64, error) {
	if s.proposals == nil {
		return 0, nil
	}
	return s.proposals.CountByRequestID(ctx, requestID)
}

// CancelRequest moves any non-terminal request to cancelled with a mandatory
// reason.
func (s *Service) CancelRequest(ctx context.Context, id, clientID int64, reason string) (*domain.ServiceRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrValidation
	}

	sr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sr.ClientID != clientID {
		return nil, ErrForbidden
	}
	if domain.IsTerminalRequestStatus(sr.Status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.requests.CancelWithReason(ctx, id, reason); err != nil {
		return nil, err
	}

	if s.notifs != nil && sr.ProfessionalID != nil {
		_ = s.notifs.NotifyRequestCancelled(ctx, *sr.ProfessionalID, sr.ID, reason)
	}

	return s.requests.GetByID(ctx, id)
}

// StartExecution is the contratado -> em_execucao transition, performed by the
// hired professional.
func (s *Service) StartExecution(ctx context.Context, id, professionalID int64) (*domain.ServiceRequest, error) {
	sr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sr.ProfessionalID == nil || *sr.ProfessionalID != professionalID {
		return nil, ErrForbidden
	}
	if sr.Status != domain.RequestHired {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.requests.UpdateStatus(ctx, id, string(domain.RequestInProgress)); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyWorkStarted(ctx, sr.ClientID, sr.ID)
	}

	return s.requests.GetByID(ctx, id)
}

// CompleteRequest is the em_execucao -> completed transition, confirmed by the
// client.
func (s *Service) CompleteRequest(ctx context.Context, id, clientID int64) (*domain.ServiceRequest, error) {
	sr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sr.ClientID != clientID {
		return nil, ErrForbidden
	}
	if sr.Status != domain.RequestInProgress {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.requests.UpdateStatus(ctx, id, string(domain.RequestCompleted)); err != nil {
		return nil, err
	}

	if s.notifs != nil && sr.ProfessionalID != nil {
		_ = s.notifs.NotifyWorkCompleted(ctx, *sr.ProfessionalID, sr.ID)
	}

	return s.requests.GetByID(ctx, id)
}
