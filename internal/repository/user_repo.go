package repository

import (
	"context"
	"time"

	"angoconnect/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB {
	return r.db
}

type userModel struct {
	ID                  int64      `gorm:"column:id;primaryKey"`
	Email               string     `gorm:"column:email;uniqueIndex"`
	PasswordHash        string     `gorm:"column:password_hash"`
	Role                string     `gorm:"column:role"`
	Name                string     `gorm:"column:name"`
	Phone               *string    `gorm:"column:phone"`
	AvatarURL           *string    `gorm:"column:avatar_url"`
	VerificationStatus  *string    `gorm:"column:verification_status"`
	IsBanned            bool       `gorm:"column:is_banned"`
	BanReason           *string    `gorm:"column:ban_reason"`
	FailedLoginAttempts int        `gorm:"column:failed_login_attempts"`
	LockedUntil         *time.Time `gorm:"column:locked_until"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	u := &domain.User{
		ID:                  m.ID,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Role:                domain.UserRole(m.Role),
		Name:                m.Name,
		IsBanned:            m.IsBanned,
		FailedLoginAttempts: m.FailedLoginAttempts,
		LockedUntil:         m.LockedUntil,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.Phone != nil {
		u.Phone = *m.Phone
	}
	if m.AvatarURL != nil {
		u.AvatarURL = *m.AvatarURL
	}
	if m.VerificationStatus != nil {
		u.VerificationStatus = domain.VerificationStatus(*m.VerificationStatus)
	}
	if m.BanReason != nil {
		u.BanReason = *m.BanReason
	}
	return u
}

func toUserModel(u *domain.User) userModel {
	m := userModel{
		ID:                  u.ID,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		Role:                string(u.Role),
		Name:                u.Name,
		IsBanned:            u.IsBanned,
		FailedLoginAttempts: u.FailedLoginAttempts,
		LockedUntil:         u.LockedUntil,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	m.Phone = nullableString(u.Phone)
	m.AvatarURL = nullableString(u.AvatarURL)
	m.BanReason = nullableString(u.BanReason)
	if u.VerificationStatus != "" {
		v := string(u.VerificationStatus)
		m.VerificationStatus = &v
	}
	return m
}

func nullableString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("email = ?", email).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", email).Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *UserRepository) UpdateVerificationStatus(ctx context.Context, userID int64, status domain.VerificationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", userID).
		Update("verification_status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
