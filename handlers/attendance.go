package handlers

import (
	"context"
	"log"
	"net/http"

	"absen_map_dashboard/dataset"
	"absen_map_dashboard/mapview"
	"absen_map_dashboard/models"

	"github.com/gin-gonic/gin"
)

// SnapshotStore is the read side of dataset.Store.
type SnapshotStore interface {
	Current() *models.Snapshot
}

// ReloadableStore can also refresh its snapshot from the source.
type ReloadableStore interface {
	SnapshotStore
	Reload(ctx context.Context) (*models.Snapshot, error)
}

type AttendanceHandler struct {
	store ReloadableStore
}

func NewAttendanceHandler(store ReloadableStore) *AttendanceHandler {
	return &AttendanceHandler{store: store}
}

type selection struct {
	Name      string
	August    string
	September string
}

func selectionFromQuery(c *gin.Context) selection {
	return selection{
		Name:      c.DefaultQuery("name", dataset.All),
		August:    c.DefaultQuery("august", dataset.All),
		September: c.DefaultQuery("september", dataset.All),
	}
}

func (s selection) apply(records []models.Record) []models.Record {
	return dataset.Filter(records, s.Name, s.August, s.September)
}

func currentSnapshot(c *gin.Context, store SnapshotStore) (*models.Snapshot, bool) {
	snap := store.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Attendance data is not loaded yet"})
		return nil, false
	}
	return snap, true
}

// GetRecords returns the filtered attendance records.
func (h *AttendanceHandler) GetRecords(c *gin.Context) {
	snap, ok := currentSnapshot(c, h.store)
	if !ok {
		return
	}

	records := selectionFromQuery(c).apply(snap.Records)
	c.JSON(http.StatusOK, models.RecordsResponse{
		Count:   len(records),
		Records: records,
	})
}

func (h *AttendanceHandler) GetOptions(c *gin.Context) {
	snap, ok := currentSnapshot(c, h.store)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dataset.Options(snap.Records))
}

// GetMap builds the map document for the current selectors.
func (h *AttendanceHandler) GetMap(c *gin.Context) {
	snap, ok := currentSnapshot(c, h.store)
	if !ok {
		return
	}

	records := selectionFromQuery(c).apply(snap.Records)
	c.JSON(http.StatusOK, mapview.Build(records))
}

func (h *AttendanceHandler) ExportRecords(c *gin.Context) {
	snap, ok := currentSnapshot(c, h.store)
	if !ok {
		return
	}

	records := selectionFromQuery(c).apply(snap.Records)
	f, err := buildWorkbook(records)
	if err != nil {
		log.Printf("Error building workbook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Disposition", `attachment; filename="absen.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("Error writing workbook: %v", err)
	}
}

// ReloadRecords fetches the source again. On failure the previous snapshot
// stays in service.
func (h *AttendanceHandler) ReloadRecords(c *gin.Context) {
	snap, err := h.store.Reload(c.Request.Context())
	if err != nil {
		log.Printf("Error reloading attendance data: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reload attendance data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Attendance data reloaded",
		"records":   len(snap.Records),
		"loaded_at": snap.LoadedAt,
	})
}
