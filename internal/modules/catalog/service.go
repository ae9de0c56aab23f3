package catalog

import (
	"context"
	"errors"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("professional not found")

type ProfessionalRepository interface {
	ListVerified(ctx context.Context, category, city string, limit, offset int) ([]domain.Professional, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Professional, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ReviewRepository interface {
	GetByProfessionalID(ctx context.Context, professionalID int64, limit int) ([]domain.Review, error)
}

type Service struct {
	professionals ProfessionalRepository
	users         UserRepository
	reviews       ReviewRepository
}

func NewService(professionals ProfessionalRepository, users UserRepository, reviews ReviewRepository) *Service {
	return &Service{
		professionals: professionals,
		users:         users,
		reviews:       reviews,
	}
}

// ProfessionalCard is the public directory entry: profile plus display name,
// without contact details.
type ProfessionalCard struct {
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	Bio         string  `json:"bio,omitempty"`
	PriceHint   float64 `json:"price_hint,omitempty"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int64   `json:"rating_count"`
}

type ProfessionalProfile struct {
	ProfessionalCard
	Reviews []domain.Review `json:"reviews"`
}

func (s *Service) ListProfessionals(ctx context.Context, category, city string, limit, offset int) ([]ProfessionalCard, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	profiles, err := s.professionals.ListVerified(ctx, category, city, limit, offset)
	if err != nil {
		return nil, err
	}

	cards := make([]ProfessionalCard, 0, len(profiles))
	for i := range profiles {
		card, err := s.toCard(ctx, &profiles[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// GetProfessional returns the public profile of a verified professional with
// their latest reviews.
func (s *Service) GetProfessional(ctx context.Context, userID int64) (*ProfessionalProfile, error) {
	profile, err := s.professionals.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	if user.VerificationStatus != domain.VerificationVerified || user.IsBanned {
		return nil, ErrNotFound
	}

	reviews, err := s.reviews.GetByProfessionalID(ctx, profile.UserID, 10)
	if err != nil {
		return nil, err
	}

	return &ProfessionalProfile{
		ProfessionalCard: ProfessionalCard{
			UserID:      profile.UserID,
			Name:        user.Name,
			Category:    profile.Category,
			City:        profile.City,
			Bio:         profile.Bio,
			PriceHint:   profile.PriceHint,
			RatingAvg:   profile.RatingAvg,
			RatingCount: profile.RatingCount,
		},
		Reviews: reviews,
	}, nil
}

func (s *Service) toCard(ctx context.Context, p *domain.Professional) (*ProfessionalCard, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &ProfessionalCard{
		UserID:      p.UserID,
		Name:        user.Name,
		Category:    p.Category,
		City:        p.City,
		Bio:         p.Bio,
		PriceHint:   p.PriceHint,
		RatingAvg:   p.RatingAvg,
		RatingCount: p.RatingCount,
	}, nil
}
