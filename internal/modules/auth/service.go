package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"angoconnect/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
	maxActiveSessions      = 10
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service contains all business logic for authentication
type Service struct {
	users              UserRepositoryInterface
	jwt                jwtService
	refreshTokenPepper string
	refreshTTL         time.Duration
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

type refreshTokenRow struct {
	UserAgent       *string    `gorm:"column:user_agent"`
	IP              *string    `gorm:"column:ip"`
	ID              int64      `gorm:"column:id;primaryKey"`
	UserID          int64      `gorm:"column:user_id;index"`
	TokenHash       string     `gorm:"column:token_hash;uniqueIndex"`
	JTI             string     `gorm:"column:jti"`
	FamilyID        string     `gorm:"column:family_id;index"`
	RotatedFrom     *int64     `gorm:"column:rotated_from"`
	ExpiresAt       time.Time  `gorm:"column:expires_at"`
	UsedAt          *time.Time `gorm:"column:used_at"`
	RevokedAt       *time.Time `gorm:"column:revoked_at"`
	ReuseDetectedAt *time.Time `gorm:"column:reuse_detected_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
}

func (refreshTokenRow) TableName() string { return "refresh_tokens" }

// RefreshTokenModel exposes the refresh token row for schema migration.
func RefreshTokenModel() any { return &refreshTokenRow{} }

// professionalRow is the profile insert used during professional signup.
// Reads go through repository.ProfessionalRepository.
type professionalRow struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex"`
	Category  string    `gorm:"column:category"`
	Bio       *string   `gorm:"column:bio"`
	City      string    `gorm:"column:city"`
	PriceHint *float64  `gorm:"column:price_hint"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (professionalRow) TableName() string { return "professionals" }

type userRow struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Email              string    `gorm:"column:email"`
	PasswordHash       string    `gorm:"column:password_hash"`
	Role               string    `gorm:"column:role"`
	Name               string    `gorm:"column:name"`
	Phone              *string   `gorm:"column:phone"`
	VerificationStatus *string   `gorm:"column:verification_status"`
	IsBanned           bool      `gorm:"column:is_banned"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (userRow) TableName() string { return "users" }

func NewService(
	users UserRepositoryInterface,
	jwt jwtService,
	refreshTokenPepper string,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:              users,
		jwt:                jwt,
		refreshTokenPepper: refreshTokenPepper,
		refreshTTL:         refreshTTL,
	}
}

func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*domain.User, error) {
	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleClient,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// RegisterProfessional creates the user account and the professional profile
// in one transaction. The account starts with verification_status=pending and
// cannot submit proposals until an admin approves it.
func (s *Service) RegisterProfessional(ctx context.Context, req RegisterProfessionalRequest) (*domain.User, error) {
	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	tx := s.users.DB().WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()
	pending := string(domain.VerificationPending)
	row := &userRow{
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:       hashedPassword,
		Role:               string(domain.RoleProfessional),
		Name:               req.Name,
		Phone:              nullableString(req.Phone),
		VerificationStatus: &pending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := tx.Create(row).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	profile := &professionalRow{
		UserID:    row.ID,
		Category:  req.Category,
		Bio:       nullableString(req.Bio),
		City:      req.City,
		CreatedAt: now,
	}
	if req.PriceHint > 0 {
		profile.PriceHint = &req.PriceHint
	}

	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetCurrentUser(ctx, row.ID)
}

func (s *Service) Login(ctx context.Context, req LoginRequest, userAgent, ip string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if user.IsBanned {
		return nil, ErrAccountBanned
	}
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		failedAttempts := user.FailedLoginAttempts + 1
		updates := map[string]any{"failed_login_attempts": failedAttempts}
		if failedAttempts >= maxFailedLoginAttempts {
			updates["locked_until"] = now.Add(lockoutDuration)
		}
		if updateErr := s.users.DB().WithContext(ctx).Table("users").Where("id = ?", user.ID).Updates(updates).Error; updateErr != nil {
			return nil, updateErr
		}
		if failedAttempts >= maxFailedLoginAttempts {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		if err := s.users.DB().WithContext(ctx).Table("users").Where("id = ?", user.ID).Updates(map[string]any{
			"failed_login_attempts": 0,
			"locked_until":          nil,
		}).Error; err != nil {
			return nil, err
		}
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw, refreshHash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
	if err != nil {
		return nil, err
	}

	familyID := uuid.NewString()
	if err := s.users.DB().WithContext(ctx).Create(&refreshTokenRow{
		UserID:    user.ID,
		TokenHash: refreshHash,
		JTI:       uuid.NewString(),
		FamilyID:  familyID,
		ExpiresAt: now.Add(s.refreshTTL),
		UserAgent: nullableString(userAgent),
		IP:        nullableString(ip),
	}).Error; err != nil {
		return nil, err
	}

	s.revokeExcessSessions(ctx, user.ID, now)

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshTokenRaw}, nil
}

// revokeExcessSessions caps the active refresh tokens per user; best effort.
func (s *Service) revokeExcessSessions(ctx context.Context, userID int64, now time.Time) {
	var ids []int64
	if err := s.users.DB().WithContext(ctx).
		Model(&refreshTokenRow{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Order("created_at DESC").
		Pluck("id", &ids).Error; err != nil {
		return
	}
	if len(ids) <= maxActiveSessions {
		return
	}
	_ = s.users.DB().WithContext(ctx).
		Model(&refreshTokenRow{}).
		Where("id IN ?", ids[maxActiveSessions:]).
		Update("revoked_at", now).Error
}

func (s *Service) RefreshSession(ctx context.Context, refreshRaw, userAgent, ip string) (*RefreshResult, error) {
	now := time.Now()
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)
	var result *RefreshResult

	err := s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current refreshTokenRow
		if err := tx.Where("token_hash = ?", hash).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}

		if !current.ExpiresAt.After(now) {
			return ErrInvalidRefreshToken
		}

		// A used or revoked token coming back means theft; kill the family.
		if current.UsedAt != nil || current.RevokedAt != nil {
			if err := tx.Model(&refreshTokenRow{}).Where("id = ?", current.ID).Updates(map[string]any{
				"reuse_detected_at": now,
			}).Error; err != nil {
				return err
			}
			if err := tx.Model(&refreshTokenRow{}).Where("family_id = ? AND revoked_at IS NULL", current.FamilyID).Updates(map[string]any{
				"revoked_at": now,
			}).Error; err != nil {
				return err
			}
			return ErrRefreshTokenReused
		}

		var user userRow
		if err := tx.Table("users").Where("id = ?", current.UserID).First(&user).Error; err != nil {
			return err
		}
		if user.IsBanned {
			if err := tx.Model(&refreshTokenRow{}).Where("family_id = ? AND revoked_at IS NULL", current.FamilyID).Updates(map[string]any{"revoked_at": now}).Error; err != nil {
				return err
			}
			return ErrAccountBanned
		}

		accessToken, err := s.jwt.GenerateToken(user.ID, user.Role)
		if err != nil {
			return err
		}
		newRaw, newHash, err := generateOpaqueRefreshToken(s.refreshTokenPepper)
		if err != nil {
			return err
		}

		if err := tx.Model(&refreshTokenRow{}).Where("id = ?", current.ID).Updates(map[string]any{
			"used_at":    now,
			"revoked_at": now,
		}).Error; err != nil {
			return err
		}
		rotatedFrom := current.ID
		if err := tx.Create(&refreshTokenRow{
			UserID:      current.UserID,
			TokenHash:   newHash,
			JTI:         uuid.NewString(),
			FamilyID:    current.FamilyID,
			RotatedFrom: &rotatedFrom,
			ExpiresAt:   now.Add(s.refreshTTL),
			UserAgent:   nullableString(userAgent),
			IP:          nullableString(ip),
		}).Error; err != nil {
			return err
		}
		result = &RefreshResult{AccessToken: accessToken, RefreshToken: newRaw}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	hash := hashTokenWithPepper(refreshRaw, s.refreshTokenPepper)
	now := time.Now()

	var token refreshTokenRow
	if err := s.users.DB().WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return s.users.DB().WithContext(ctx).Model(&refreshTokenRow{}).Where("id = ?", token.ID).Updates(map[string]any{
		"revoked_at": now,
	}).Error
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateOpaqueRefreshToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}

func nullableString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
