package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"absen_map_dashboard/dataset"
	"absen_map_dashboard/mapview"
	"absen_map_dashboard/models"
	"absen_map_dashboard/web"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const testCSV = `Name,Date,Work Location,Latitude Work Location,Longitude Work Location,Status Group,Duty On,Duty On Lat,Duty On Long,Duty On Address,Duty On Distance,Distance On Note,Duty Off,Duty Off Lat,Duty Off Long,Duty Off Address,Duty Off Distance,Distance Off Note
Budi,2024-08-01,Kantor Makassar,-5.1477,119.4327,Duty On,07:55,-5.1478,119.4329,Jl. Ahmad Yani,12 m,Inside,17:02,-5.1476,119.4326,Jl. Ahmad Yani,15 m,Inside
Budi,2024-09-02,Kantor Makassar,-5.1477,119.4327,Lateness,08:31,-5.1479,119.4330,Jl. Ahmad Yani,30 m,Inside,17:10,No Data,No Data,No Data,No Data,No Data
Sari,2024-08-01,Kantor Palu,-0.8917,119.8707,Incomplete,07:40,No Data,No Data,No Data,No Data,No Data,17:00,-0.8918,119.8708,Jl. Sudirman,8 m,Inside
`

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	snap      *models.Snapshot
	reloadErr error
	reloads   int
}

func (s *fakeStore) Current() *models.Snapshot { return s.snap }

func (s *fakeStore) Reload(ctx context.Context) (*models.Snapshot, error) {
	s.reloads++
	if s.reloadErr != nil {
		return nil, s.reloadErr
	}
	return s.snap, nil
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	table, err := dataset.ParseCSV(strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return &fakeStore{snap: &models.Snapshot{
		Table:    *table,
		Records:  dataset.BuildRecords(table),
		Source:   "test",
		LoadedAt: time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC),
	}}
}

func newRouter(store ReloadableStore) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	health := NewHealthHandler(store)
	dashboard := NewDashboardHandler(store, false)
	attendance := NewAttendanceHandler(store)

	r.GET("/health", health.HealthCheck)
	r.GET("/", dashboard.Page)
	r.GET("/api/records", attendance.GetRecords)
	r.GET("/api/records/export.xlsx", attendance.ExportRecords)
	r.GET("/api/options", attendance.GetOptions)
	r.GET("/api/map", attendance.GetMap)
	r.POST("/api/reload", attendance.ReloadRecords)
	return r
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestGetRecordsFilters(t *testing.T) {
	r := newRouter(newFakeStore(t))

	cases := []struct {
		target string
		want   int
	}{
		{"/api/records", 3},
		{"/api/records?name=all&august=all&september=all", 3},
		{"/api/records?name=Budi", 2},
		{"/api/records?august=2024-08-01", 2},
		{"/api/records?name=Budi&august=2024-08-01", 1},
		{"/api/records?august=2024-08-01&september=2024-09-02", 0},
		{"/api/records?name=Nobody", 0},
	}
	for _, tc := range cases {
		target, want := tc.target, tc.want
		w := do(r, http.MethodGet, target)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, w.Code)
		}
		var resp models.RecordsResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode: %v", target, err)
		}
		if resp.Count != want || len(resp.Records) != want {
			t.Errorf("%s: expected %d records, got %d", target, want, resp.Count)
		}
	}
}

func TestGetMapColorsAndOmissions(t *testing.T) {
	r := newRouter(newFakeStore(t))

	w := do(r, http.MethodGet, "/api/map")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var doc models.MapDocument
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(doc.Clusters) != 2 {
		t.Errorf("expected 2 work locations, got %d", len(doc.Clusters))
	}
	// Budi: on+off, Budi late: on only, Sari: off only.
	if len(doc.Circles) != 4 {
		t.Fatalf("expected 4 circle markers, got %d", len(doc.Circles))
	}

	colors := map[string]string{}
	for _, c := range doc.Circles {
		if c.Kind == mapview.KindDutyOn && strings.Contains(c.Popup, "Status: Lateness") {
			colors["late-on"] = c.Color
		}
		if c.Kind == mapview.KindDutyOn && strings.Contains(c.Popup, "Status: Duty On") {
			colors["ok-on"] = c.Color
		}
	}
	if colors["late-on"] != "red" {
		t.Errorf("expected lateness duty on to be red, got %q", colors["late-on"])
	}
	if colors["ok-on"] != mapview.ColorDutyOn {
		t.Errorf("expected duty on to be green, got %q", colors["ok-on"])
	}
}

func TestGetOptions(t *testing.T) {
	r := newRouter(newFakeStore(t))

	w := do(r, http.MethodGet, "/api/options")
	var opts models.FilterOptions
	if err := json.Unmarshal(w.Body.Bytes(), &opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(opts.Names) != 3 || opts.Names[0] != "all" {
		t.Errorf("unexpected names: %v", opts.Names)
	}
	if len(opts.September) != 2 || opts.September[1] != "2024-09-02" {
		t.Errorf("unexpected september options: %v", opts.September)
	}
}

func TestDashboardTableIgnoresFilters(t *testing.T) {
	r := newRouter(newFakeStore(t))

	w := do(r, http.MethodGet, "/?menu=data&name=Sari&august=2024-08-01")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if got := strings.Count(body, `<td class="index">`); got != 3 {
		t.Errorf("expected 3 table rows, got %d", got)
	}
	if !strings.Contains(body, "Data Absen") || !strings.Contains(body, "<th>Duty Off Lat</th>") {
		t.Errorf("expected the data grid to be rendered")
	}
	if strings.Contains(body, `id="map"`) {
		t.Errorf("expected no map in table mode")
	}
}

func TestDashboardMapMode(t *testing.T) {
	r := newRouter(newFakeStore(t))

	w := do(r, http.MethodGet, "/?menu=map&name=Sari")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `id="map"`) {
		t.Errorf("expected the map container")
	}
	if !strings.Contains(body, `<option value="Sari" selected>`) {
		t.Errorf("expected Sari to be preselected")
	}
	if !strings.Contains(body, `<option value="all" selected>all</option>`) {
		t.Errorf("expected date selectors to default to all")
	}
	if !strings.Contains(body, "Tampilkan Visualisasi Map") {
		t.Errorf("expected the sidebar menu")
	}
}

func TestExportRecords(t *testing.T) {
	r := newRouter(newFakeStore(t))

	w := do(r, http.MethodGet, "/api/records/export.xlsx?name=Budi")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != xlsxContentType {
		t.Errorf("unexpected content type %s", w.Header().Get("Content-Type"))
	}

	f, err := excelize.OpenReader(w.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != models.ColName || rows[1][0] != "Budi" {
		t.Errorf("unexpected first cells: %v / %v", rows[0], rows[1])
	}
	if rows[2][13] != models.NoData {
		t.Errorf("expected missing duty off lat as No Data, got %q", rows[2][13])
	}
}

func TestReloadRecords(t *testing.T) {
	store := newFakeStore(t)
	r := newRouter(store)

	w := do(r, http.MethodPost, "/api/reload")
	if w.Code != http.StatusOK || store.reloads != 1 {
		t.Fatalf("expected successful reload, got %d", w.Code)
	}

	store.reloadErr = errors.New("network down")
	w = do(r, http.MethodPost, "/api/reload")
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestNotLoaded(t *testing.T) {
	r := newRouter(&fakeStore{})

	for _, target := range []string{"/health", "/api/records", "/api/map", "/"} {
		if w := do(r, http.MethodGet, target); w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", target, w.Code)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	r := newRouter(newFakeStore(t))

	w := do(r, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" || body["records"] != float64(3) {
		t.Errorf("unexpected health body: %v", body)
	}
}
