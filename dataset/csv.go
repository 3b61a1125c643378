package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"absen_map_dashboard/models"
)

// ErrEmptySource is returned when a source has no header row.
var ErrEmptySource = errors.New("source has no header row")

// ParseCSV reads a header row followed by data rows. Rows shorter than the
// header are padded with empty cells, longer rows are truncated.
func ParseCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptySource
		}
		return nil, fmt.Errorf("error reading csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := &models.Table{Columns: columns}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading csv row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, normalizeRow(row, len(columns)))
	}

	return table, nil
}

func normalizeRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// CSVLoader fetches the attendance export over HTTP.
type CSVLoader struct {
	Client *http.Client
	URL    string
}

func NewCSVLoader(client *http.Client, url string) *CSVLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &CSVLoader{Client: client, URL: url}
}

func (l *CSVLoader) Name() string {
	return l.URL
}

func (l *CSVLoader) Load(ctx context.Context) (*models.Table, error) {
	return FetchCSV(ctx, l.Client, l.URL)
}

// FetchCSV downloads and parses a CSV document. Any non-2xx response is an
// error.
func FetchCSV(ctx context.Context, client *http.Client, url string) (*models.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}

	log.Printf("Fetching attendance csv from %s", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error fetching csv: unexpected status %s", resp.Status)
	}

	return ParseCSV(resp.Body)
}
