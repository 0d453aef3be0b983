package notify

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	jwtsvc "github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/jwt"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/response"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origin filtering happens in the CORS layer for the REST API;
		// the ws endpoint is authenticated by token instead
		return true
	},
}

type Handler struct {
	hub *Hub
	jwt *jwtsvc.Service
	log *zap.Logger
}

func NewHandler(hub *Hub, jwt *jwtsvc.Service, log *zap.Logger) *Handler {
	return &Handler{hub: hub, jwt: jwt, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket upgrades GET /ws?token=JWT for owner accounts.
// Browsers cannot set headers on websocket requests, so the token
// travels as a query parameter.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if claims.Role != domain.RoleOwner {
		response.Error(c, http.StatusForbidden, "Only owners receive reservation events")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ownerID := claims.UserID
	h.hub.Register(ownerID, conn)
	h.log.Info("owner connected", zap.Int64("owner_id", ownerID))

	defer func() {
		h.hub.Unregister(ownerID)
		h.log.Info("owner disconnected", zap.Int64("owner_id", ownerID))
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go pingLoop(conn)

	// the client never sends application messages; the read loop only
	// notices closure
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pingLoop runs beside the hub's WriteJSON calls; only WriteControl is
// safe concurrently with another writer on the same connection.
func pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		deadline := time.Now().Add(writeWait)
		if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			return
		}
	}
}
