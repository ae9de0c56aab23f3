package review

import (
	"context"
	"errors"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrValidation      = errors.New("invalid review")
	ErrNotFound        = errors.New("request not found")
	ErrForbidden       = errors.New("not allowed")
	ErrNotCompleted    = errors.New("request not completed")
	ErrAlreadyReviewed = errors.New("request already reviewed")
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ExistsForRequest(ctx context.Context, requestID int64) (bool, error)
	GetByProfessionalID(ctx context.Context, professionalID int64, limit int) ([]domain.Review, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
}

type ProfessionalRepository interface {
	ApplyRating(ctx context.Context, professionalUserID int64, rating int) error
}

type NotificationSender interface {
	NotifyNewReview(ctx context.Context, professionalID, reviewID int64, rating int) error
}

type CreateReviewRequest struct {
	ServiceRequestID int64  `json:"service_request_id" binding:"required"`
	Rating           int    `json:"rating" binding:"required,min=1,max=5"`
	Comment          string `json:"comment,omitempty"`
}

type Service struct {
	reviews       ReviewRepository
	requests      RequestRepository
	professionals ProfessionalRepository
	notifs        NotificationSender
}

func NewService(reviews ReviewRepository, requests RequestRepository, professionals ProfessionalRepository, notifs NotificationSender) *Service {
	return &Service{
		reviews:       reviews,
		requests:      requests,
		professionals: professionals,
		notifs:        notifs,
	}
}

// CreateReview lets the client rate the professional after the request was
// completed. One review per request.
func (s *Service) CreateReview(ctx context.Context, clientID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	sr, err := s.requests.GetByID(ctx, req.ServiceRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sr.ClientID != clientID {
		return nil, ErrForbidden
	}
	if sr.Status != domain.RequestCompleted {
		return nil, ErrNotCompleted
	}
	if sr.ProfessionalID == nil {
		return nil, ErrNotCompleted
	}

	exists, err := s.reviews.ExistsForRequest(ctx, sr.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rv := &domain.Review{
		ServiceRequestID: sr.ID,
		ClientID:         clientID,
		ProfessionalID:   *sr.ProfessionalID,
		Rating:           req.Rating,
		Comment:          req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}

	if err := s.professionals.ApplyRating(ctx, rv.ProfessionalID, rv.Rating); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyNewReview(ctx, rv.ProfessionalID, rv.ID, rv.Rating)
	}

	return rv, nil
}

func (s *Service) GetProfessionalReviews(ctx context.Context, professionalID int64, limit int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reviews.GetByProfessionalID(ctx, professionalID, limit)
}
