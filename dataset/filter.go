package dataset

import (
	"sort"

	"absen_map_dashboard/models"
)

// All is the selector value meaning "no constraint".
const All = "all"

// Months offered by the August and September selectors.
const (
	AugustMonth    = "2024-08"
	SeptemberMonth = "2024-09"
)

// Filter returns the records matching every non-"all" selector. Name is
// compared against Name, the date selectors against the record date as
// YYYY-MM-DD. Setting both date selectors to different days yields no rows.
func Filter(records []models.Record, name, august, september string) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !matches(name, r.Name) {
			continue
		}
		if !matchesDate(august, r) || !matchesDate(september, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isAll(selector string) bool {
	return selector == "" || selector == All
}

func matches(selector, value string) bool {
	return isAll(selector) || selector == value
}

func matchesDate(selector string, r models.Record) bool {
	if isAll(selector) {
		return true
	}
	return r.DateValid && r.DateKey() == selector
}

// Options builds the selector choices, each list starting with "all".
func Options(records []models.Record) models.FilterOptions {
	opts := models.FilterOptions{
		Names:     []string{All},
		August:    []string{All},
		September: []string{All},
	}

	seenName := make(map[string]bool)
	august := make(map[string]bool)
	september := make(map[string]bool)

	for _, r := range records {
		if r.Name != "" && !seenName[r.Name] {
			seenName[r.Name] = true
			opts.Names = append(opts.Names, r.Name)
		}
		if !r.DateValid {
			continue
		}
		switch r.Date.Format("2006-01") {
		case AugustMonth:
			august[r.DateKey()] = true
		case SeptemberMonth:
			september[r.DateKey()] = true
		}
	}

	opts.August = append(opts.August, sortedKeys(august)...)
	opts.September = append(opts.September, sortedKeys(september)...)
	return opts
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
