package proposal

import (
	"errors"
	"net/http"
	"strconv"

	"angoconnect/internal/middleware"
	"angoconnect/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/proposals", middleware.ProfessionalOnly(), h.CreateProposal)
	rg.GET("/proposals/mine", h.GetMyProposals)
	rg.POST("/proposals/:id/accept", h.AcceptProposal)
	rg.POST("/proposals/:id/reject", h.RejectProposal)
	rg.POST("/proposals/:id/withdraw", h.WithdrawProposal)
	rg.GET("/requests/:id/proposals", h.GetRequestProposals)
}

// CreateProposal envia uma proposta para um pedido de serviço.
// @Summary		Enviar proposta
// @Description	Profissional verificado envia uma proposta (preço, mensagem, prazo estimado) para um pedido aberto.
// @Tags		Propostas
// @Security	BearerAuth
// @Param		request	body	CreateProposalRequest	true	"Dados da proposta"
// @Success		201	{object}	map[string]interface{} "Proposta criada"
// @Failure		403	{object}	map[string]interface{} "Apenas profissionais verificados podem enviar propostas"
// @Failure		409	{object}	map[string]interface{} "Pedido fechado ou proposta duplicada"
// @Router		/proposals [POST]
func (h *Handler) CreateProposal(c *gin.Context) {
	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	p, err := h.service.CreateProposal(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service request not found")
		case errors.Is(err, ErrNotVerified):
			response.Error(c, http.StatusForbidden, "NOT_VERIFIED", "Only verified professionals can submit proposals")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot submit a proposal")
		case errors.Is(err, ErrRequestClosed):
			response.Error(c, http.StatusConflict, "REQUEST_CLOSED", "Request is no longer accepting proposals")
		case errors.Is(err, ErrDuplicateProposal):
			response.Error(c, http.StatusConflict, "DUPLICATE_PROPOSAL", "You already submitted a proposal for this request")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid proposal")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create proposal")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"proposal": p})
}

// AcceptProposal aceita uma proposta e contrata o profissional.
// @Summary		Aceitar proposta
// @Description	O cliente dono do pedido aceita a proposta. As restantes propostas do pedido são rejeitadas e o pedido passa a contratado.
// @Tags		Propostas
// @Security	BearerAuth
// @Param		id	path	int	true	"ID da proposta"
// @Success		200	{object}	map[string]interface{} "Proposta aceite"
// @Failure		403	{object}	map[string]interface{} "Apenas o cliente dono do pedido pode aceitar"
// @Failure		409	{object}	map[string]interface{} "Proposta já está num estado terminal"
// @Router		/proposals/:id/accept [POST]
func (h *Handler) AcceptProposal(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.GetInt64("user_id")
	p, err := h.service.AcceptProposal(c.Request.Context(), proposalID, userID)
	if err != nil {
		handleWorkflowError(c, err, "Failed to accept proposal")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"proposal": p})
}

func (h *Handler) RejectProposal(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.GetInt64("user_id")
	p, err := h.service.RejectProposal(c.Request.Context(), proposalID, userID)
	if err != nil {
		handleWorkflowError(c, err, "Failed to reject proposal")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"proposal": p})
}

func (h *Handler) WithdrawProposal(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.GetInt64("user_id")
	p, err := h.service.WithdrawProposal(c.Request.Context(), proposalID, userID)
	if err != nil {
		handleWorkflowError(c, err, "Failed to withdraw proposal")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"proposal": p})
}

func (h *Handler) GetRequestProposals(c *gin.Context) {
	requestID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.GetInt64("user_id")
	list, err := h.service.GetRequestProposals(c.Request.Context(), requestID, userID)
	if err != nil {
		handleWorkflowError(c, err, "Failed to load proposals")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"proposals": list})
}

func (h *Handler) GetMyProposals(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.GetMyProposals(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load proposals")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"proposals": list})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid proposal ID")
		return 0, false
	}
	return id, true
}

func handleWorkflowError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Proposal not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot act on this proposal")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Proposal is not in a state that allows this action")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
