package auth

import (
	"errors"
	"net/http"

	"angoconnect/internal/domain"
	"angoconnect/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the endpoints that need no JWT.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.RegisterClient)
	rg.POST("/auth/register-professional", h.RegisterProfessional)
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/refresh", h.Refresh)
	rg.POST("/auth/logout", h.Logout)
}

// RegisterProtectedRoutes mounts the endpoints behind JWT middleware.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.PUT("/auth/me", h.UpdateProfile)
}

// RegisterClient cria uma conta de cliente.
// @Summary		Registar cliente
// @Tags		Auth
// @Param		request	body	RegisterClientRequest	true	"Dados de registo"
// @Success		201	{object}	map[string]interface{} "Conta criada"
// @Failure		409	{object}	map[string]interface{} "Email já registado"
// @Router		/auth/register [POST]
func (h *Handler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.service.RegisterClient(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// RegisterProfessional cria uma conta de profissional com verificação pendente.
// @Summary		Registar profissional
// @Description	Cria o utilizador e o perfil profissional. A conta fica pendente até um administrador aprovar a verificação.
// @Tags		Auth
// @Param		request	body	RegisterProfessionalRequest	true	"Dados de registo"
// @Success		201	{object}	map[string]interface{} "Conta criada (verificação pendente)"
// @Failure		409	{object}	map[string]interface{} "Email já registado"
// @Router		/auth/register-professional [POST]
func (h *Handler) RegisterProfessional(c *gin.Context) {
	var req RegisterProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.service.RegisterProfessional(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// Login autentica e devolve o par access/refresh token.
// @Summary		Entrar
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Credenciais"
// @Success		200	{object}	map[string]interface{} "Tokens e utilizador"
// @Failure		401	{object}	map[string]interface{} "Credenciais inválidas"
// @Failure		429	{object}	map[string]interface{} "Conta bloqueada temporariamente"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrAccountLocked):
			response.Error(c, http.StatusTooManyRequests, "ACCOUNT_LOCKED", "Too many failed attempts, try again later")
		case errors.Is(err, ErrAccountBanned):
			response.Error(c, http.StatusForbidden, "ACCOUNT_BANNED", "Account is banned")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

// Refresh roda o refresh token e emite um novo access token.
// @Summary		Renovar sessão
// @Tags		Auth
// @Param		request	body	RefreshRequest	true	"Refresh token"
// @Success		200	{object}	map[string]interface{} "Novo par de tokens"
// @Failure		401	{object}	map[string]interface{} "Token inválido, expirado ou reutilizado"
// @Router		/auth/refresh [POST]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.RefreshSession(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrRefreshTokenReused):
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
		case errors.Is(err, ErrAccountBanned):
			response.Error(c, http.StatusForbidden, "ACCOUNT_BANNED", "Account is banned")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to refresh session")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to logout")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":                 user,
		"can_submit_proposals": canSubmitProposals(user),
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userID := c.GetInt64("user_id")
	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func canSubmitProposals(u *domain.User) bool {
	return u.Role == domain.RoleProfessional &&
		u.VerificationStatus == domain.VerificationVerified &&
		!u.IsBanned
}
