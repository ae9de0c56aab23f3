package request

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests", h.CreateRequest)
	rg.GET("/requests/mine", h.GetMyRequests)
	rg.GET("/requests/assigned", h.GetAssignedRequests)
	rg.GET("/requests/open", h.GetOpenRequests)
	rg.GET("/requests/:id", h.GetRequest)
	rg.POST("/requests/:id/cancel", h.CancelRequest)
	rg.POST("/requests/:id/start", h.StartExecution)
	rg.POST("/requests/:id/complete", h.CompleteRequest)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	sr, err := h.service.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service request")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create request")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": sr})
}

func (h *Handler) GetMyRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.GetMyRequests(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) GetAssignedRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")

	list, err := h.service.GetAssignedRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) GetOpenRequests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.GetOpenRequests(
		c.Request.Context(),
		c.Query("category"),
		c.Query("location"),
		limit,
		offset,
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load open requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.GetInt64("user_id")
	sr, err := h.service.GetRequest(c.Request.Context(), id, userID)
	if err != nil {
		handleRequestError(c, err, "Failed to load request")
		return
	}

	payload := gin.H{"request": sr}
	if sr.ClientID == userID {
		if n, err := h.service.CountProposals(c.Request.Context(), sr.ID); err == nil {
			payload["proposal_count"] = n
		}
	}

	response.Success(c, http.StatusOK, payload)
}

func (h *Handler) CancelRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CancelRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	userID := c.GetInt64("user_id")
	sr, err := h.service.CancelRequest(c.Request.Context(), id, userID, req.Reason)
	if err != nil {
		handleRequestError(c, err, "Failed to cancel request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": sr})
}

func (h *Handler) StartExecution(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.GetInt64("user_id")
	sr, err := h.service.StartExecution(c.Request.Context(), id, userID)
	if err != nil {
		handleRequestError(c, err, "Failed to start execution")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": sr})
}

func (h *Handler) CompleteRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := c.GetInt64("user_id")
	sr, err := h.service.CompleteRequest(c.Request.Context(), id, userID)
	if err != nil {
		handleRequestError(c, err, "Failed to complete request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": sr})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return 0, false
	}
	return id, true
}

func handleRequestError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service request not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot act on this request")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Request is not in a state that allows this action")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
