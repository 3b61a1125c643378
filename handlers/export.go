package handlers

import (
	"absen_map_dashboard/models"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet     = "Absen"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func buildWorkbook(records []models.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]interface{}, len(models.Columns))
	for i, col := range models.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := exportRow(r)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return f, nil
}

// exportRow follows models.Columns order.
func exportRow(r models.Record) []interface{} {
	date := r.RawDate
	if r.DateValid {
		date = r.DateKey()
	}
	return []interface{}{
		r.Name, date, r.WorkLocation, coordCell(r.WorkLat), coordCell(r.WorkLong), r.StatusGroup,
		r.DutyOn.Time, coordCell(r.DutyOn.Lat), coordCell(r.DutyOn.Long), r.DutyOn.Address, r.DutyOn.Distance, r.DutyOn.Note,
		r.DutyOff.Time, coordCell(r.DutyOff.Lat), coordCell(r.DutyOff.Long), r.DutyOff.Address, r.DutyOff.Distance, r.DutyOff.Note,
	}
}

func coordCell(v *float64) interface{} {
	if v == nil {
		return models.NoData
	}
	return *v
}
