package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/habalhub/habal-backend/internal/services"
)

// WebSocketHandler upgrades an authenticated request to a hub connection.
// Auth middleware has already resolved the user and roles, including the
// query-token path browsers need for websockets.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		roles := c.GetStringSlice("roles")
		services.HandleWebSocket(hub, c.Writer, c.Request, userId, roles)
	}
}
