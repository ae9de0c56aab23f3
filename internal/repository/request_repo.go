package repository

import (
	"context"
	"fmt"
	"time"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	ClientID       int64      `gorm:"column:client_id;index"`
	ProfessionalID *int64     `gorm:"column:professional_id;index"`
	Title          string     `gorm:"column:title"`
	Description    *string    `gorm:"column:description"`
	Category       string     `gorm:"column:category;index"`
	Location       *string    `gorm:"column:location"`
	Budget         float64    `gorm:"column:budget"`
	Urgency        string     `gorm:"column:urgency"`
	Status         string     `gorm:"column:status;index"`
	CancelReason   *string    `gorm:"column:cancel_reason"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	CancelledAt    *time.Time `gorm:"column:cancelled_at"`
}

func (requestModel) TableName() string { return "service_requests" }

func toDomainRequest(m requestModel) *domain.ServiceRequest {
	sr := &domain.ServiceRequest{
		ID:             m.ID,
		ClientID:       m.ClientID,
		ProfessionalID: m.ProfessionalID,
		Title:          m.Title,
		Category:       m.Category,
		Budget:         m.Budget,
		Urgency:        domain.Urgency(m.Urgency),
		Status:         domain.RequestStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		CancelledAt:    m.CancelledAt,
	}
	if m.Description != nil {
		sr.Description = *m.Description
	}
	if m.Location != nil {
		sr.Location = *m.Location
	}
	if m.CancelReason != nil {
		sr.CancelReason = *m.CancelReason
	}
	return sr
}

func toRequestModel(sr *domain.ServiceRequest) requestModel {
	return requestModel{
		ID:             sr.ID,
		ClientID:       sr.ClientID,
		ProfessionalID: sr.ProfessionalID,
		Title:          sr.Title,
		Description:    nullableString(sr.Description),
		Category:       sr.Category,
		Location:       nullableString(sr.Location),
		Budget:         sr.Budget,
		Urgency:        string(sr.Urgency),
		Status:         string(sr.Status),
		CancelReason:   nullableString(sr.CancelReason),
		CreatedAt:      sr.CreatedAt,
		UpdatedAt:      sr.UpdatedAt,
		CancelledAt:    sr.CancelledAt,
	}
}

func (r *RequestRepository) Create(ctx context.Context, sr *domain.ServiceRequest) error {
	m := toRequestModel(sr)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*sr = *toDomainRequest(m)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	var m requestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

func (r *RequestRepository) GetByClientID(ctx context.Context, clientID int64, limit, offset int) ([]domain.ServiceRequest, error) {
	q := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("client_id = ?", clientID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []requestModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

func (r *RequestRepository) GetByProfessionalID(ctx context.Context, professionalID int64) ([]domain.ServiceRequest, error) {
	var rows []requestModel
	err := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

// ListOpen returns requests still accepting proposals.
func (r *RequestRepository) ListOpen(ctx context.Context, category, location string, limit, offset int) ([]domain.ServiceRequest, error) {
	q := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("status IN ?", []string{
			string(domain.RequestPending),
			string(domain.RequestProposalSent),
		}).
		Order("created_at DESC")

	if category != "" {
		q = q.Where("category = ?", category)
	}
	if location != "" {
		q = q.Where("location = ?", location)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []requestModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidRequestStatus(domain.RequestStatus(status)) {
		return fmt.Errorf("unknown request status %q", status)
	}

	res := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Hire binds the winning professional and moves the request to contratado.
// Single write: this is step 3 of the acceptance sequence.
func (r *RequestRepository) Hire(ctx context.Context, id, professionalID int64) error {
	res := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          string(domain.RequestHired),
			"professional_id": professionalID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RequestRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        string(domain.RequestCancelled),
			"cancel_reason": reason,
			"cancelled_at":  now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RequestRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string `gorm:"column:status"`
		Total  int64  `gorm:"column:total"`
	}
	err := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Select("status, COUNT(1) AS total").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func toDomainRequests(rows []requestModel) []domain.ServiceRequest {
	out := make([]domain.ServiceRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRequest(m))
	}
	return out
}
