package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store SnapshotStore
}

func NewHealthHandler(store SnapshotStore) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	// Check that a snapshot is in service
	snap := h.store.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "Attendance data not loaded",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"records":   len(snap.Records),
		"source":    snap.Source,
		"loaded_at": snap.LoadedAt,
	})
}
