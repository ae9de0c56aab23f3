package auth

type RegisterClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterProfessionalRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required"`
	Password  string  `json:"password" binding:"required,min=6"`
	Category  string  `json:"category" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Bio       string  `json:"bio,omitempty"`
	PriceHint float64 `json:"price_hint,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone string `json:"phone,omitempty"`
}
