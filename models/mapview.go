package models

type LatLng [2]float64

// MapDocument describes a Leaflet map for the dashboard script to draw.
type MapDocument struct {
	Center       LatLng          `json:"center"`
	Zoom         int             `json:"zoom"`
	ControlScale bool            `json:"control_scale"`
	BaseTiles    string          `json:"base_tiles"`
	Clusters     []ClusterMarker `json:"clusters"`
	Circles      []CircleMarker  `json:"circles"`
	TileLayers   []TileLayer     `json:"tile_layers"`
	Controls     MapControls     `json:"controls"`
}

type Icon struct {
	Color  string `json:"color"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

type ClusterMarker struct {
	Location LatLng `json:"location"`
	Popup    string `json:"popup"`
	Icon     Icon   `json:"icon"`
}

type CircleMarker struct {
	Kind          string  `json:"kind"`
	Location      LatLng  `json:"location"`
	Radius        int     `json:"radius"`
	Color         string  `json:"color"`
	Fill          bool    `json:"fill"`
	FillColor     string  `json:"fill_color"`
	FillOpacity   float64 `json:"fill_opacity"`
	Popup         string  `json:"popup"`
	PopupMaxWidth int     `json:"popup_max_width"`
}

type TileLayer struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Attribution string   `json:"attribution"`
	Subdomains  []string `json:"subdomains,omitempty"`
}

type MapControls struct {
	Geocoder       bool `json:"geocoder"`
	LayerControl   bool `json:"layer_control"`
	Draw           bool `json:"draw"`
	DrawExport     bool `json:"draw_export"`
	ClickForMarker bool `json:"click_for_marker"`
}
