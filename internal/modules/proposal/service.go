package proposal

import (
	"context"
	"errors"

	"angoconnect/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	proposals ProposalRepository
	requests  RequestRepository
	users     UserDirectory
	notifs    NotificationSender
}

func NewService(proposals ProposalRepository, requests RequestRepository, users UserDirectory, notifs NotificationSender) *Service {
	return &Service{
		proposals: proposals,
		requests:  requests,
		users:     users,
		notifs:    notifs,
	}
}

// CreateProposal accepts bids only from verified, unbanned professionals; the
// role middleware on the route is the first gate, this is the second.
func (s *Service) CreateProposal(ctx context.Context, professionalID int64, req CreateProposalRequest) (*domain.Proposal, error) {
	user, err := s.users.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if user.Role != domain.RoleProfessional || user.IsBanned {
		return nil, ErrForbidden
	}
	if user.VerificationStatus != domain.VerificationVerified {
		return nil, ErrNotVerified
	}

	sr, err := s.requests.GetByID(ctx, req.ServiceRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if sr.Status != domain.RequestPending && sr.Status != domain.RequestProposalSent {
		return nil, ErrRequestClosed
	}
	if sr.ClientID == professionalID {
		return nil, ErrValidation
	}

	p := &domain.Proposal{
		ServiceRequestID:  sr.ID,
		ProfessionalID:    professionalID,
		ClientID:          sr.ClientID,
		Price:             req.Price,
		Message:           req.Message,
		EstimatedDuration: req.EstimatedDuration,
		Status:            domain.ProposalPending,
	}

	if err := s.proposals.Create(ctx, p); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_one_proposal_per_professional" {
				return nil, ErrDuplicateProposal
			}
		}
		return nil, err
	}

	if sr.Status == domain.RequestPending {
		if err := s.requests.UpdateStatus(ctx, sr.ID, string(domain.RequestProposalSent)); err != nil {
			return nil, err
		}
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyProposalReceived(ctx, sr.ClientID, sr.ID, p.ID, p.Price)
	}

	return p, nil
}

// AcceptProposal hires the proposal's professional: the target proposal is
// accepted, every sibling proposal is rejected and the parent request is bound
// to the winner. The three writes are issued sequentially and are NOT wrapped
// in a transaction; a failure mid-sequence leaves the earlier writes in place.
func (s *Service) AcceptProposal(ctx context.Context, proposalID, clientID int64) (*domain.Proposal, error) {
	p, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.ClientID != clientID {
		return nil, ErrForbidden
	}
	if domain.IsTerminalProposalStatus(p.Status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.proposals.UpdateStatus(ctx, p.ID, string(domain.ProposalAccepted)); err != nil {
		return nil, err
	}

	if err := s.proposals.RejectSiblings(ctx, p.ServiceRequestID, p.ID); err != nil {
		return nil, err
	}

	if err := s.requests.Hire(ctx, p.ServiceRequestID, p.ProfessionalID); err != nil {
		return nil, err
	}

	return s.proposals.GetByID(ctx, p.ID)
}

// RejectProposal declines a single proposal. No cascade: siblings and the
// parent request are untouched. Rejecting an already rejected proposal is a
// no-op.
func (s *Service) RejectProposal(ctx context.Context, proposalID, clientID int64) (*domain.Proposal, error) {
	p, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.ClientID != clientID {
		return nil, ErrForbidden
	}
	if p.Status == domain.ProposalRejected {
		return p, nil
	}
	if domain.IsTerminalProposalStatus(p.Status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.proposals.UpdateStatus(ctx, p.ID, string(domain.ProposalRejected)); err != nil {
		return nil, err
	}
	p.Status = domain.ProposalRejected

	if s.notifs != nil {
		_ = s.notifs.NotifyProposalRejected(ctx, p.ProfessionalID, p.ServiceRequestID, p.ID)
	}

	return p, nil
}

// WithdrawProposal lets a professional pull a pending bid.
func (s *Service) WithdrawProposal(ctx context.Context, proposalID, professionalID int64) (*domain.Proposal, error) {
	p, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.ProfessionalID != professionalID {
		return nil, ErrForbidden
	}
	if p.Status == domain.ProposalWithdrawn {
		return p, nil
	}
	if domain.IsTerminalProposalStatus(p.Status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.proposals.UpdateStatus(ctx, p.ID, string(domain.ProposalWithdrawn)); err != nil {
		return nil, err
	}
	p.Status = domain.ProposalWithdrawn

	return p, nil
}

// GetRequestProposals returns the proposal list for a request the caller owns.
func (s *Service) GetRequestProposals(ctx context.Context, requestID, clientID int64) ([]domain.Proposal, error) {
	sr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sr.ClientID != clientID {
		return nil, ErrForbidden
	}
	return s.proposals.GetByRequestID(ctx, requestID)
}

func (s *Service) GetMyProposals(ctx context.Context, professionalID int64, limit, offset int) ([]domain.Proposal, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.proposals.GetByProfessionalID(ctx, professionalID, limit, offset)
}
