package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/barber-agenda/internal/config"
	syncpkg "github.com/BruksfildServices01/barber-agenda/internal/sync"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SyncHandler é o endpoint websocket da agenda: o cliente conecta, fica
// registrado no hub da sua barbearia e recebe os payloads de recarga.
type SyncHandler struct {
	cfg *config.Config
	hub *syncpkg.Hub
}

func NewSyncHandler(cfg *config.Config, hub *syncpkg.Hub) *SyncHandler {
	return &SyncHandler{cfg: cfg, hub: hub}
}

// Connect autentica pelo token na query string (browsers não mandam
// header Authorization no upgrade de websocket).
func (h *SyncHandler) Connect(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
		return
	}

	barbershopID, ok := claims["barbershopId"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("sync: falha no upgrade websocket:", err)
		return
	}

	id := h.hub.Register(uint(barbershopID), conn)

	// Drena mensagens do cliente só para detectar o fechamento
	go func() {
		defer h.hub.Unregister(id)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
