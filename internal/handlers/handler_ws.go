package handlers

import (
	"log/slog"

	"github.com/SscSPs/empower_finance_app/internal/events/ws"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterWSRoutes exposes the change feed. The hub only sends; it never reads client data.
func RegisterWSRoutes(rg *gin.RouterGroup, hub *ws.Hub) {
	rg.GET("/ws", func(c *gin.Context) { serveWS(c, hub) })
}

// serveWS godoc
// @Summary Subscribe to change notifications
// @Description Upgrades to a websocket that receives an event for each change to the caller's transactions and goals. Browsers pass the token as access_token.
// @Tags events
// @Param   access_token query string false "Bearer token for clients that cannot set headers"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /ws [get]
func serveWS(c *gin.Context, hub *ws.Hub) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := hub.Serve(c.Writer, c.Request, userID); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to upgrade websocket", slog.String("error", err.Error()))
	}
}
