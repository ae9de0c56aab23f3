package repository

import (
	"context"
	"fmt"
	"time"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

type proposalModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	ServiceRequestID  int64     `gorm:"column:service_request_id;index;uniqueIndex:idx_one_proposal_per_professional"`
	ProfessionalID    int64     `gorm:"column:professional_id;index;uniqueIndex:idx_one_proposal_per_professional"`
	ClientID          int64     `gorm:"column:client_id;index"`
	Price             float64   `gorm:"column:price"`
	Message           *string   `gorm:"column:message"`
	EstimatedDuration *string   `gorm:"column:estimated_duration"`
	Status            string    `gorm:"column:status;index"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string { return "proposals" }

func toDomainProposal(m proposalModel) *domain.Proposal {
	p := &domain.Proposal{
		ID:               m.ID,
		ServiceRequestID: m.ServiceRequestID,
		ProfessionalID:   m.ProfessionalID,
		ClientID:         m.ClientID,
		Price:            m.Price,
		Status:           domain.ProposalStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Message != nil {
		p.Message = *m.Message
	}
	if m.EstimatedDuration != nil {
		p.EstimatedDuration = *m.EstimatedDuration
	}
	return p
}

func toProposalModel(p *domain.Proposal) proposalModel {
	return proposalModel{
		ID:                p.ID,
		ServiceRequestID:  p.ServiceRequestID,
		ProfessionalID:    p.ProfessionalID,
		ClientID:          p.ClientID,
		Price:             p.Price,
		Message:           nullableString(p.Message),
		EstimatedDuration: nullableString(p.EstimatedDuration),
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	m := toProposalModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProposal(m)
	return nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*domain.Proposal, error) {
	var m proposalModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProposal(m), nil
}

func (r *ProposalRepository) GetByRequestID(ctx context.Context, requestID int64) ([]domain.Proposal, error) {
	var rows []proposalModel
	err := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Where("service_request_id = ?", requestID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainProposals(rows), nil
}

func (r *ProposalRepository) GetByProfessionalID(ctx context.Context, professionalID int64, limit, offset int) ([]domain.Proposal, error) {
	q := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []proposalModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProposals(rows), nil
}

func (r *ProposalRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidProposalStatus(domain.ProposalStatus(status)) {
		return fmt.Errorf("unknown proposal status %q", status)
	}

	res := r.db.WithContext(ctx).
		Model(&proposalModel{}).
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

// RejectSiblings marks every other proposal on the same request rejected.
// Step 2 of the acceptance sequence; issued as its own write.
func (r *ProposalRepository) RejectSiblings(ctx context.Context, requestID, acceptedID int64) error {
	return r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Where("service_request_id = ? AND id != ?", requestID, acceptedID).
		Update("status", string(domain.ProposalRejected)).Error
}

func (r *ProposalRepository) CountByRequestID(ctx context.Context, requestID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Where("service_request_id = ?", requestID).
		Count(&count).Error
	return count, err
}

func toDomainProposals(rows []proposalModel) []domain.Proposal {
	out := make([]domain.Proposal, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProposal(m))
	}
	return out
}
