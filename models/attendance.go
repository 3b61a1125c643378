package models

import "time"

// NoData is the sentinel the attendance export writes for absent values.
const NoData = "No Data"

// Column names of the attendance export.
const (
	ColName            = "Name"
	ColDate            = "Date"
	ColWorkLocation    = "Work Location"
	ColWorkLat         = "Latitude Work Location"
	ColWorkLong        = "Longitude Work Location"
	ColStatusGroup     = "Status Group"
	ColDutyOn          = "Duty On"
	ColDutyOnLat       = "Duty On Lat"
	ColDutyOnLong      = "Duty On Long"
	ColDutyOnAddress   = "Duty On Address"
	ColDutyOnDistance  = "Duty On Distance"
	ColDistanceOnNote  = "Distance On Note"
	ColDutyOff         = "Duty Off"
	ColDutyOffLat      = "Duty Off Lat"
	ColDutyOffLong     = "Duty Off Long"
	ColDutyOffAddress  = "Duty Off Address"
	ColDutyOffDistance = "Duty Off Distance"
	ColDistanceOffNote = "Distance Off Note"
)

// Columns lists the attendance columns in export order.
var Columns = []string{
	ColName, ColDate, ColWorkLocation, ColWorkLat, ColWorkLong, ColStatusGroup,
	ColDutyOn, ColDutyOnLat, ColDutyOnLong, ColDutyOnAddress, ColDutyOnDistance, ColDistanceOnNote,
	ColDutyOff, ColDutyOffLat, ColDutyOffLong, ColDutyOffAddress, ColDutyOffDistance, ColDistanceOffNote,
}

// Table is the raw tabular form of a loaded source, header plus rows.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Punch is one duty-on or duty-off event of a record.
type Punch struct {
	Time     string   `json:"time"`
	Lat      *float64 `json:"lat"`
	Long     *float64 `json:"long"`
	Address  string   `json:"address"`
	Distance string   `json:"distance"`
	Note     string   `json:"note"`
}

// HasLocation reports whether both coordinates parsed.
func (p Punch) HasLocation() bool {
	return p.Lat != nil && p.Long != nil
}

type Record struct {
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	DateValid    bool      `json:"date_valid"`
	RawDate      string    `json:"raw_date"`
	WorkLocation string    `json:"work_location"`
	WorkLat      *float64  `json:"work_lat"`
	WorkLong     *float64  `json:"work_long"`
	StatusGroup  string    `json:"status_group"`
	DutyOn       Punch     `json:"duty_on"`
	DutyOff      Punch     `json:"duty_off"`
}

// DateKey returns the record date as YYYY-MM-DD, or "" when missing.
func (r Record) DateKey() string {
	if !r.DateValid {
		return ""
	}
	return r.Date.Format("2006-01-02")
}

// Snapshot is an immutable view of one successful load.
type Snapshot struct {
	Table    Table
	Records  []Record
	Source   string
	LoadedAt time.Time
}

type FilterOptions struct {
	Names     []string `json:"names"`
	August    []string `json:"august"`
	September []string `json:"september"`
}

type RecordsResponse struct {
	Count   int      `json:"count"`
	Records []Record `json:"records"`
}
