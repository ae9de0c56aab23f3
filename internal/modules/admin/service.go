package admin

import (
	"context"
	"errors"
	"time"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("professional not found")
	ErrNotProfessional = errors.New("user is not a professional")
	ErrAlreadyDecided  = errors.New("verification already decided")
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateVerificationStatus(ctx context.Context, userID int64, status domain.VerificationStatus) error
}

type ProfessionalRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Professional, error)
	SetVerification(ctx context.Context, userID int64, verifiedBy *int64, verifiedAt *time.Time, rejectedReason string) error
}

type RequestRepository interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type NotificationSender interface {
	NotifyVerificationApproved(ctx context.Context, professionalID int64) error
	NotifyVerificationRejected(ctx context.Context, professionalID int64, reason string) error
}

type Service struct {
	users         UserRepository
	professionals ProfessionalRepository
	requests      RequestRepository
	notifs        NotificationSender
}

func NewService(users UserRepository, professionals ProfessionalRepository, requests RequestRepository, notifs NotificationSender) *Service {
	return &Service{
		users:         users,
		professionals: professionals,
		requests:      requests,
		notifs:        notifs,
	}
}

// ApproveVerification marks a pending professional as verified. Verified
// professionals appear in the public catalog and may submit proposals.
func (s *Service) ApproveVerification(ctx context.Context, professionalUserID, adminID int64) error {
	user, err := s.loadProfessionalUser(ctx, professionalUserID)
	if err != nil {
		return err
	}
	if user.VerificationStatus == domain.VerificationVerified {
		return ErrAlreadyDecided
	}

	if err := s.users.UpdateVerificationStatus(ctx, professionalUserID, domain.VerificationVerified); err != nil {
		return err
	}

	now := time.Now()
	if err := s.professionals.SetVerification(ctx, professionalUserID, &adminID, &now, ""); err != nil {
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyVerificationApproved(ctx, professionalUserID)
	}
	return nil
}

func (s *Service) RejectVerification(ctx context.Context, professionalUserID, adminID int64, reason string) error {
	user, err := s.loadProfessionalUser(ctx, professionalUserID)
	if err != nil {
		return err
	}
	if user.VerificationStatus == domain.VerificationVerified {
		return ErrAlreadyDecided
	}

	if err := s.users.UpdateVerificationStatus(ctx, professionalUserID, domain.VerificationRejected); err != nil {
		return err
	}

	if err := s.professionals.SetVerification(ctx, professionalUserID, &adminID, nil, reason); err != nil {
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyVerificationRejected(ctx, professionalUserID, reason)
	}
	return nil
}

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	RequestsByStatus map[string]int64 `json:"requests_by_status"`
	TotalRequests    int64            `json:"total_requests"`
}

func (s *Service) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	byStatus, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	return &PlatformStats{
		RequestsByStatus: byStatus,
		TotalRequests:    total,
	}, nil
}

func (s *Service) loadProfessionalUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Role != domain.RoleProfessional {
		return nil, ErrNotProfessional
	}
	if _, err := s.professionals.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
