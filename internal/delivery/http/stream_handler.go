package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/view"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development; restrict in production
	},
}

const streamPingInterval = 30 * time.Second

// StreamHandler pushes each new collection snapshot to connected
// front ends over WebSocket, so the list view re-renders without
// polling the agent.
type StreamHandler struct {
	vm     *view.ViewModel
	logger *zap.Logger
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(vm *view.ViewModel, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{vm: vm, logger: logger}
}

// Stream handles GET /api/v1/jobs/stream (WebSocket upgrade)
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ch := h.vm.Subscribe()
	defer h.vm.Unsubscribe(ch)

	h.logger.Debug("Snapshot stream opened", zap.String("remote", conn.RemoteAddr().String()))

	// Send the current snapshot immediately so the client can render
	// without waiting for the next mutation.
	if err := conn.WriteJSON(h.vm.Snapshot()); err != nil {
		return
	}

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case snap := <-ch:
			if err := conn.WriteJSON(snap); err != nil {
				h.logger.Debug("Snapshot stream write failed (client disconnected)", zap.Error(err))
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
