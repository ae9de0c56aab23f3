package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"angoconnect/internal/modules/notification"
	"angoconnect/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Origin check is delegated to the CORS layer; browsers cannot set
	// custom headers on websocket handshakes anyway.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is what a connected client may send upstream.
type clientMessage struct {
	Type           string `json:"type"`
	NotificationID int64  `json:"notification_id,omitempty"`
}

type Handler struct {
	hub           *Hub
	jwtService    *jwt.Service
	notifications *notification.Service
}

func NewHandler(hub *Hub, jwtService *jwt.Service, notifications *notification.Service) *Handler {
	return &Handler{
		hub:           hub,
		jwtService:    jwtService,
		notifications: notifications,
	}
}

// HandleNotifications upgrades GET /ws/notifications?token=JWT into the live
// notification feed. Auth goes through the query string because browsers
// cannot attach an Authorization header to a websocket handshake.
func (h *Handler) HandleNotifications(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required. Use ?token=YOUR_JWT_TOKEN",
		})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return
	}

	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed user_id=%d err=%v", userID, err)
		return
	}

	cl := h.hub.Register(userID, conn)
	log.Printf("websocket connected user_id=%d", userID)

	defer func() {
		h.hub.Unregister(userID)
		log.Printf("websocket disconnected user_id=%d", userID)
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go h.pingLoop(cl)

	h.readLoop(cl, userID)
}

// pingLoop shares the connection with hub pushes, so pings go through the
// client's write mutex like every other frame.
func (h *Handler) pingLoop(cl *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := cl.ping(); err != nil {
			return
		}
	}
}

func (h *Handler) readLoop(cl *client, userID int64) {
	conn := cl.conn
	for {
		_, rawMsg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error user_id=%d err=%v", userID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(rawMsg, &msg); err != nil {
			_ = cl.writeJSON(gin.H{"event": "error", "code": "INVALID_JSON"})
			continue
		}

		switch msg.Type {
		case "ping":
			_ = cl.writeJSON(gin.H{"event": "pong"})
		case "read":
			h.handleRead(userID, msg.NotificationID)
		default:
			_ = cl.writeJSON(gin.H{"event": "error", "code": "UNKNOWN_TYPE"})
		}
	}
}

// handleRead lets the client acknowledge a notification without a separate
// HTTP round trip. The read-event push back to the feed happens inside the
// notification service.
func (h *Handler) handleRead(userID, notificationID int64) {
	if notificationID <= 0 {
		return
	}
	_, _ = h.notifications.MarkAsRead(context.Background(), notificationID, userID)
}
