// internal/handlers/realtime_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Mustazir/stillore-server/internal/realtime"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// AdminStream upgrades the connection to a websocket and keeps it open
// for order events. Auth middleware runs before this point.
func (h *RealtimeHandler) AdminStream(c *gin.Context) {
	admin, ok := utils.GetAdminFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Admin authentication required"))
		return
	}

	if err := h.hub.Serve(c.Writer, c.Request, admin.ID.String()); err != nil {
		// Upgrade failures write their own response.
		logrus.WithError(err).Warn("Websocket upgrade failed")
	}
}
