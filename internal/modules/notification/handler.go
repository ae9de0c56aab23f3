package notification

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
	rg.GET("/notifications", h.List)
	rg.GET("/notifications/unread-count", h.UnreadCount)
	rg.POST("/notifications/:id/read", h.MarkAsRead)
	rg.POST("/notifications/read-all", h.MarkAllAsRead)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": list})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.GetInt64("user_id")

	count, err := h.service.CountUnread(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	userID := c.GetInt64("user_id")
	n, err := h.service.MarkAsRead(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notification as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notification": n})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	marked, err := h.service.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"marked": marked})
}
