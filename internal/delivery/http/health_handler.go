package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/view"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	vm     *view.ViewModel
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(vm *view.ViewModel, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{vm: vm, logger: logger}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(c *gin.Context) {
	snap := h.vm.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"snapshot_fetched_at": snap.FetchedAt,
		"jobs":                len(snap.Jobs),
	})
}
