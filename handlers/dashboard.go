package handlers

import (
	"net/http"

	"absen_map_dashboard/dataset"

	"github.com/gin-gonic/gin"
)

const (
	PageTitle = "Absen Record and Location"

	MenuData = "data"
	MenuMap  = "map"
)

type DashboardHandler struct {
	store       SnapshotStore
	authEnabled bool
}

func NewDashboardHandler(store SnapshotStore, authEnabled bool) *DashboardHandler {
	return &DashboardHandler{store: store, authEnabled: authEnabled}
}

// Page renders either the full data grid or the map with its selectors.
// The grid ignores any filter parameters.
func (h *DashboardHandler) Page(c *gin.Context) {
	snap := h.store.Current()
	if snap == nil {
		c.String(http.StatusServiceUnavailable, "Attendance data is not loaded yet")
		return
	}

	menu := c.DefaultQuery("menu", MenuData)
	if menu != MenuMap {
		menu = MenuData
	}

	data := gin.H{
		"Title":       PageTitle,
		"Menu":        menu,
		"RowCount":    len(snap.Table.Rows),
		"LoadedAt":    snap.LoadedAt.Format("2006-01-02 15:04:05"),
		"AuthEnabled": h.authEnabled,
	}

	if menu == MenuData {
		data["Columns"] = snap.Table.Columns
		data["Rows"] = snap.Table.Rows
	} else {
		data["Options"] = dataset.Options(snap.Records)
		data["Selected"] = selectionFromQuery(c)
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}
