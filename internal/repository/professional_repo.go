package repository

import (
	"context"
	"time"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

type ProfessionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

type professionalModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         int64      `gorm:"column:user_id;uniqueIndex"`
	Category       string     `gorm:"column:category;index"`
	Bio            *string    `gorm:"column:bio"`
	City           string     `gorm:"column:city;index"`
	PriceHint      float64    `gorm:"column:price_hint"`
	RatingAvg      float64    `gorm:"column:rating_avg"`
	RatingCount    int64      `gorm:"column:rating_count"`
	AdminNotes     *string    `gorm:"column:admin_notes"`
	RejectedReason *string    `gorm:"column:rejected_reason"`
	VerifiedAt     *time.Time `gorm:"column:verified_at"`
	VerifiedBy     *int64     `gorm:"column:verified_by"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (professionalModel) TableName() string { return "professionals" }

func toDomainProfessional(m professionalModel) *domain.Professional {
	p := &domain.Professional{
		ID:          m.ID,
		UserID:      m.UserID,
		Category:    m.Category,
		City:        m.City,
		PriceHint:   m.PriceHint,
		RatingAvg:   m.RatingAvg,
		RatingCount: m.RatingCount,
		VerifiedAt:  m.VerifiedAt,
		VerifiedBy:  m.VerifiedBy,
		CreatedAt:   m.CreatedAt,
	}
	if m.Bio != nil {
		p.Bio = *m.Bio
	}
	if m.AdminNotes != nil {
		p.AdminNotes = *m.AdminNotes
	}
	if m.RejectedReason != nil {
		p.RejectedReason = *m.RejectedReason
	}
	return p
}

func toProfessionalModel(p *domain.Professional) professionalModel {
	return professionalModel{
		ID:             p.ID,
		UserID:         p.UserID,
		Category:       p.Category,
		Bio:            nullableString(p.Bio),
		City:           p.City,
		PriceHint:      p.PriceHint,
		RatingAvg:      p.RatingAvg,
		RatingCount:    p.RatingCount,
		AdminNotes:     nullableString(p.AdminNotes),
		RejectedReason: nullableString(p.RejectedReason),
		VerifiedAt:     p.VerifiedAt,
		VerifiedBy:     p.VerifiedBy,
		CreatedAt:      p.CreatedAt,
	}
}

func (r *ProfessionalRepository) Create(ctx context.Context, p *domain.Professional) error {
	m := toProfessionalModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfessional(m)
	return nil
}

func (r *ProfessionalRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Professional, error) {
	var m professionalModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfessional(m), nil
}

func (r *ProfessionalRepository) Update(ctx context.Context, p *domain.Professional) error {
	m := toProfessionalModel(p)
	return r.db.WithContext(ctx).Save(&m).Error
}

// ListVerified returns profiles of verified professionals, optionally
// filtered by category and city.
func (r *ProfessionalRepository) ListVerified(ctx context.Context, category, city string, limit, offset int) ([]domain.Professional, error) {
	q := r.db.WithContext(ctx).
		Model(&professionalModel{}).
		Joins("JOIN users ON users.id = professionals.user_id").
		Where("users.verification_status = ?", string(domain.VerificationVerified)).
		Where("users.is_banned = ?", false)

	if category != "" {
		q = q.Where("professionals.category = ?", category)
	}
	if city != "" {
		q = q.Where("professionals.city = ?", city)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []professionalModel
	if err := q.Order("professionals.rating_avg DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Professional, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProfessional(m))
	}
	return out, nil
}

// ApplyRating folds a new review rating into the running aggregate.
func (r *ProfessionalRepository) ApplyRating(ctx context.Context, professionalUserID int64, rating int) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE professionals
SET rating_avg = (rating_avg * rating_count + ?) / (rating_count + 1),
    rating_count = rating_count + 1
WHERE user_id = ?
`, rating, professionalUserID).Error
}

func (r *ProfessionalRepository) SetVerification(ctx context.Context, userID int64, verifiedBy *int64, verifiedAt *time.Time, rejectedReason string) error {
	updates := map[string]any{
		"verified_by": verifiedBy,
		"verified_at": verifiedAt,
	}
	if rejectedReason != "" {
		updates["rejected_reason"] = rejectedReason
	}
	res := r.db.WithContext(ctx).
		Model(&professionalModel{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
