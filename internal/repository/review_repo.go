package repository

import (
	"context"
	"time"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	ServiceRequestID int64     `gorm:"column:service_request_id;uniqueIndex"`
	ClientID         int64     `gorm:"column:client_id;index"`
	ProfessionalID   int64     `gorm:"column:professional_id;index"`
	Rating           int       `gorm:"column:rating"`
	Comment          *string   `gorm:"column:comment"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	rv := &domain.Review{
		ID:               m.ID,
		ServiceRequestID: m.ServiceRequestID,
		ClientID:         m.ClientID,
		ProfessionalID:   m.ProfessionalID,
		Rating:           m.Rating,
		CreatedAt:        m.CreatedAt,
	}
	if m.Comment != nil {
		rv.Comment = *m.Comment
	}
	return rv
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		ServiceRequestID: rv.ServiceRequestID,
		ClientID:         rv.ClientID,
		ProfessionalID:   rv.ProfessionalID,
		Rating:           rv.Rating,
		Comment:          nullableString(rv.Comment),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) ExistsForRequest(ctx context.Context, requestID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("service_request_id = ?", requestID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepository) GetByProfessionalID(ctx context.Context, professionalID int64, limit int) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []reviewModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}
