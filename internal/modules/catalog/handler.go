package catalog

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

// RegisterRoutes mounts the public directory; no JWT required.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/professionals", h.ListProfessionals)
	rg.GET("/professionals/:id", h.GetProfessional)
}

func (h *Handler) ListProfessionals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	cards, err := h.service.ListProfessionals(
		c.Request.Context(),
		c.Query("category"),
		c.Query("city"),
		limit,
		offset,
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load professionals")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"professionals": cards})
}

func (h *Handler) GetProfessional(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid professional ID")
		return
	}

	profile, err := h.service.GetProfessional(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Professional not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load professional")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"professional": profile})
}
