package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"absen_map_dashboard/models"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"1/2/2006",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006/01/02",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"02-Jan-06",
}

// ParseDate parses the export's date column. Unparseable values return
// false instead of an error so one bad cell never fails a load.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, models.NoData) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseCoordinate returns nil for empty, sentinel, or non-numeric values.
func ParseCoordinate(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, models.NoData) {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// BuildRecords maps table rows onto attendance records by column name.
func BuildRecords(table *models.Table) []models.Record {
	if table == nil {
		return nil
	}

	index := make(map[string]int, len(table.Columns))
	for i, col := range table.Columns {
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}

	records := make([]models.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rawDate := cell(models.ColDate)
		date, dateValid := ParseDate(rawDate)

		records = append(records, models.Record{
			Name:         cell(models.ColName),
			Date:         date,
			DateValid:    dateValid,
			RawDate:      rawDate,
			WorkLocation: cell(models.ColWorkLocation),
			WorkLat:      ParseCoordinate(cell(models.ColWorkLat)),
			WorkLong:     ParseCoordinate(cell(models.ColWorkLong)),
			StatusGroup:  cell(models.ColStatusGroup),
			DutyOn: models.Punch{
				Time:     cell(models.ColDutyOn),
				Lat:      ParseCoordinate(cell(models.ColDutyOnLat)),
				Long:     ParseCoordinate(cell(models.ColDutyOnLong)),
				Address:  cell(models.ColDutyOnAddress),
				Distance: cell(models.ColDutyOnDistance),
				Note:     cell(models.ColDistanceOnNote),
			},
			DutyOff: models.Punch{
				Time:     cell(models.ColDutyOff),
				Lat:      ParseCoordinate(cell(models.ColDutyOffLat)),
				Long:     ParseCoordinate(cell(models.ColDutyOffLong)),
				Address:  cell(models.ColDutyOffAddress),
				Distance: cell(models.ColDutyOffDistance),
				Note:     cell(models.ColDistanceOffNote),
			},
		})
	}

	return records
}
