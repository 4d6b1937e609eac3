package handlers

import (
	"net/http"
	"os"

	"gifting_platform/internal/http/middleware"
	"gifting_platform/internal/logger"
	"gifting_platform/internal/service"
	"gifting_platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the connection and attaches it to the event hub so the user
// receives level-up events in real time.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws: upgrade failed", "user_id", userID, "error", err)
			return
		}

		client := ws.NewClient(userID, conn)
		hub.Register(client)
		middleware.WSConnections.Inc()
		defer func() {
			hub.Unregister(client)
			client.Close()
			middleware.WSConnections.Dec()
		}()

		client.Run()
	}
}
