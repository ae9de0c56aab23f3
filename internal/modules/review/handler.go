package review

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

// RegisterRoutes mounts review creation under the protected group; listing a
// professional's reviews is mounted publicly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.CreateReview)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/professionals/:id/reviews", h.GetProfessionalReviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review body")
		return
	}

	clientID := c.GetInt64("user_id")
	rv, err := h.service.CreateReview(c.Request.Context(), clientID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service request not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the request owner can review")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		case errors.Is(err, ErrNotCompleted):
			response.Error(c, http.StatusConflict, "NOT_COMPLETED", "Request must be completed before reviewing")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "Request already has a review")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) GetProfessionalReviews(c *gin.Context) {
	professionalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid professional ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, err := h.service.GetProfessionalReviews(c.Request.Context(), professionalID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}
