package mapview

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"absen_map_dashboard/models"
)

var (
	DefaultCenter = models.LatLng{-3.845736431317857, 120.44353552425166}
	DefaultZoom   = 5
)

const (
	ColorFlagged = "red"
	ColorDutyOn  = "#32CD32"
	ColorDutyOff = "#800080"

	KindDutyOn  = "duty_on"
	KindDutyOff = "duty_off"
)

var googleSubdomains = []string{"mt0", "mt1", "mt2", "mt3"}

// flaggedStatuses are drawn in red on both punches.
var flaggedStatuses = map[string]bool{
	"Incomplete": true,
	"Lateness":   true,
}

func IsFlagged(statusGroup string) bool {
	return flaggedStatuses[statusGroup]
}

func dutyOnColor(statusGroup string) string {
	if IsFlagged(statusGroup) {
		return ColorFlagged
	}
	return ColorDutyOn
}

func dutyOffColor(statusGroup string) string {
	if IsFlagged(statusGroup) {
		return ColorFlagged
	}
	return ColorDutyOff
}

// Build composes the map for a filtered set of records. Records with bad
// coordinates only lose the affected marker.
func Build(records []models.Record) models.MapDocument {
	doc := models.MapDocument{
		Center:       DefaultCenter,
		Zoom:         DefaultZoom,
		ControlScale: true,
		BaseTiles:    "openstreetmap",
		Clusters:     workLocationMarkers(records),
		Circles:      []models.CircleMarker{},
	}

	for _, r := range records {
		if m, ok := punchMarker(r, r.DutyOn, KindDutyOn); ok {
			doc.Circles = append(doc.Circles, m)
		}
		if m, ok := punchMarker(r, r.DutyOff, KindDutyOff); ok {
			doc.Circles = append(doc.Circles, m)
		}
	}

	doc.TileLayers = []models.TileLayer{
		{
			Name:        "Google Satellite",
			URL:         "http://{s}.google.com/vt/lyrs=s&x={x}&y={y}&z={z}",
			Attribution: "Google",
			Subdomains:  googleSubdomains,
		},
		{
			Name:        "Google Traffic",
			URL:         "http://mt1.google.com/vt/lyrs=h,traffic&x={x}&y={y}&z={z}",
			Attribution: "Google",
			Subdomains:  googleSubdomains,
		},
		{
			Name:        "Google Maps",
			URL:         "https://mt1.google.com/vt/lyrs=m&x={x}&y={y}&z={z}",
			Attribution: "Dummy Attribution",
		},
	}
	doc.Controls = models.MapControls{
		Geocoder:       true,
		LayerControl:   true,
		Draw:           true,
		DrawExport:     false,
		ClickForMarker: true,
	}

	return doc
}

type locationKey struct {
	lat, long float64
}

func workLocationMarkers(records []models.Record) []models.ClusterMarker {
	names := make(map[locationKey]string)
	var keys []locationKey
	for _, r := range records {
		if r.WorkLat == nil || r.WorkLong == nil {
			continue
		}
		key := locationKey{*r.WorkLat, *r.WorkLong}
		if _, seen := names[key]; seen {
			continue
		}
		names[key] = r.WorkLocation
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lat != keys[j].lat {
			return keys[i].lat < keys[j].lat
		}
		return keys[i].long < keys[j].long
	})

	markers := make([]models.ClusterMarker, 0, len(keys))
	for _, key := range keys {
		markers = append(markers, models.ClusterMarker{
			Location: models.LatLng{key.lat, key.long},
			Popup:    "Work Location: " + html.EscapeString(orNoData(names[key])),
			Icon:     models.Icon{Color: "blue", Name: "building", Prefix: "fa"},
		})
	}
	return markers
}

func punchMarker(r models.Record, p models.Punch, kind string) (models.CircleMarker, bool) {
	if !p.HasLocation() {
		return models.CircleMarker{}, false
	}

	color := dutyOnColor(r.StatusGroup)
	if kind == KindDutyOff {
		color = dutyOffColor(r.StatusGroup)
	}

	return models.CircleMarker{
		Kind:          kind,
		Location:      models.LatLng{*p.Lat, *p.Long},
		Radius:        5,
		Color:         color,
		Fill:          true,
		FillColor:     color,
		FillOpacity:   0.7,
		Popup:         Popup(r, kind),
		PopupMaxWidth: 300,
	}, true
}

// Popup renders the HTML summary shown when a punch marker is clicked.
func Popup(r models.Record, kind string) string {
	p, timeLabel, placeLabel := r.DutyOn, "Jam Masuk", "CheckIn di"
	if kind == KindDutyOff {
		p, timeLabel, placeLabel = r.DutyOff, "Jam Keluar", "CheckOut di"
	}

	lines := []struct{ label, value string }{
		{"Nama", r.Name},
		{"Status", r.StatusGroup},
		{"Tanggal", r.DateKey()},
		{timeLabel, p.Time},
		{placeLabel, p.Address},
		{"Jarak", p.Distance},
		{"Note", p.Note},
	}

	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprintf("%s: %s", l.label, html.EscapeString(orNoData(l.value)))
	}
	return strings.Join(parts, "<br>")
}

func orNoData(value string) string {
	if strings.TrimSpace(value) == "" {
		return models.NoData
	}
	return value
}
