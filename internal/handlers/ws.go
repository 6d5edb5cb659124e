package handlers

import (
	"log"
	"net/http"
	"strings"

	"teamboard-be/config"
	"teamboard-be/internal/models"
	"teamboard-be/internal/services"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WsHandler struct {
	cfg    *config.Config
	access *services.AccessService
	hub    *services.Hub
}

func NewWsHandler(cfg *config.Config, access *services.AccessService, hub *services.Hub) *WsHandler {
	return &WsHandler{cfg: cfg, access: access, hub: hub}
}

func (h *WsHandler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == h.cfg.FrontendURL
		},
	}
}

// Subscribe upgrades the connection and streams the board's mutation events.
// Browsers cannot set headers on a WebSocket handshake, so the access token
// rides in the `token` query parameter.
// GET /api/boards/:boardId/ws?token=
func (h *WsHandler) Subscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		// fall back to the header for non-browser clients
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	claims, err := utils.ValidateToken(token, h.cfg.JWTSecret)
	if err != nil || claims.TokenType != "access" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "invalid token",
		})
		return
	}

	ctx := c.Request.Context()
	boardID := c.Param("boardId")

	if err := h.access.RequireBoardAccess(ctx, claims.UserID, boardID); err != nil {
		respondError(c, err)
		return
	}

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade: %v", err)
		return
	}

	client := services.NewClient(h.hub, conn, boardID, claims.UserID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
