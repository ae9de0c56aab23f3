package admin

import (
	"errors"
	"net/http"
	"strconv"

	"angoconnect/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already guarded by AdminOnly middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/professionals/:id/approve", h.ApproveVerification)
	rg.POST("/admin/professionals/:id/reject", h.RejectVerification)
	rg.GET("/admin/stats", h.GetPlatformStats)
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ApproveVerification aprova a verificação de um profissional.
// @Summary		Aprovar profissional
// @Description	Marca a verificação do profissional como aprovada. O profissional passa a aparecer no catálogo público e pode enviar propostas.
// @Tags		Admin - Verificação de profissionais
// @Security	BearerAuth
// @Param		id	path	int	true	"ID do utilizador profissional"
// @Success		200	{object}		map[string]interface{} "Profissional verificado"
// @Failure		403	{object}		map[string]interface{} "Acesso negado (requer administrador)"
// @Failure		409	{object}		map[string]interface{} "Verificação já decidida"
// @Router		/admin/professionals/:id/approve [POST]
func (h *Handler) ApproveVerification(c *gin.Context) {
	professionalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	adminID := c.GetInt64("user_id")
	if err := h.service.ApproveVerification(c.Request.Context(), professionalID, adminID); err != nil {
		handleAdminError(c, err, "Failed to approve verification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Professional verified"})
}

// RejectVerification rejeita a verificação com uma razão obrigatória.
// @Summary		Rejeitar profissional
// @Description	Rejeita o pedido de verificação do profissional indicando a razão. O profissional é notificado e pode corrigir os dados.
// @Tags		Admin - Verificação de profissionais
// @Security	BearerAuth
// @Param		id		path	int				true	"ID do utilizador profissional"
// @Param		request	body	rejectRequest	true	"Razão da rejeição"
// @Success		200	{object}		map[string]interface{} "Verificação rejeitada"
// @Failure		400	{object}		map[string]interface{} "Razão em falta"
// @Router		/admin/professionals/:id/reject [POST]
func (h *Handler) RejectVerification(c *gin.Context) {
	professionalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	adminID := c.GetInt64("user_id")
	if err := h.service.RejectVerification(c.Request.Context(), professionalID, adminID, req.Reason); err != nil {
		handleAdminError(c, err, "Failed to reject verification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Verification rejected"})
}

// GetPlatformStats devolve contadores agregados da plataforma.
// @Summary		Estatísticas da plataforma
// @Tags		Admin - Estatísticas
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Pedidos por estado e total"
// @Router		/admin/stats [GET]
func (h *Handler) GetPlatformStats(c *gin.Context) {
	stats, err := h.service.GetPlatformStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid professional ID")
		return 0, false
	}
	return id, true
}

func handleAdminError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Professional not found")
	case errors.Is(err, ErrNotProfessional):
		response.Error(c, http.StatusBadRequest, "NOT_PROFESSIONAL", "User is not a professional")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Verification already decided")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
