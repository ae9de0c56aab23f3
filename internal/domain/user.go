package domain

import "time"

type UserRole string

const (
	RoleClient       UserRole = "client"
	RoleProfessional UserRole = "professional"
	RoleAdmin        UserRole = "admin"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
	VerificationBlocked  VerificationStatus = "blocked"
)

type User struct {
	ID                  int64              `json:"id"`
	Email               string             `json:"email" validate:"required,email"`
	PasswordHash        string             `json:"-"`
	Role                UserRole           `json:"role"`
	Name                string             `json:"name"`
	Phone               string             `json:"phone,omitempty"`
	AvatarURL           string             `json:"avatar_url,omitempty"`
	VerificationStatus  VerificationStatus `json:"verification_status,omitempty"`
	IsBanned            bool               `json:"-"`
	BanReason           string             `json:"-"`
	FailedLoginAttempts int                `json:"-"`
	LockedUntil         *time.Time         `json:"-"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// Professional is the extended profile row behind a user with RoleProfessional.
type Professional struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Category       string     `json:"category"`
	Bio            string     `json:"bio,omitempty" gorm:"type:text"`
	City           string     `json:"city"`
	PriceHint      float64    `json:"price_hint,omitempty"`
	RatingAvg      float64    `json:"rating_avg"`
	RatingCount    int64      `json:"rating_count"`
	AdminNotes     string     `json:"-"`
	RejectedReason string     `json:"rejected_reason,omitempty"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty"`
	VerifiedBy     *int64     `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}
