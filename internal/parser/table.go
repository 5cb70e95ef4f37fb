// Package parser streams uploaded tabular files into ordered RawRecord
// sequences, reporting progress as rows are consumed.
package parser

import (
	"errors"
	"strings"

	"github.com/rpattn/rximport/internal/domain"
)

// progressInterval is how many rows are consumed between progress checkpoints.
const progressInterval = 250

var (
	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("file is empty")
	// ErrNoHeader is returned when no non-empty header row can be detected.
	ErrNoHeader = errors.New("no header row detected")
)

// buildRecords turns a raw grid into ordered RawRecords. The first non-empty
// row is the header; blank rows are skipped; short rows are padded so every
// record exposes every column. Row ordinals are 1-based over data rows.
func buildRecords(grid [][]string, onProgress domain.ProgressFunc) ([]domain.RawRecord, error) {
	var headers []string
	var dataRows [][]string

	for _, row := range grid {
		if isBlankRow(row) {
			continue
		}
		if headers == nil {
			headers = trimRow(row)
			continue
		}
		dataRows = append(dataRows, row)
	}
	if headers == nil {
		return nil, ErrNoHeader
	}

	records := make([]domain.RawRecord, 0, len(dataRows))
	for idx, row := range dataRows {
		fields := make(map[string]string, len(headers))
		for col, header := range headers {
			if header == "" {
				continue
			}
			if col < len(row) {
				fields[header] = strings.TrimSpace(row[col])
			} else {
				fields[header] = ""
			}
		}
		records = append(records, domain.RawRecord{Row: idx + 1, Fields: fields})

		if (idx+1)%progressInterval == 0 {
			onProgress.Report(domain.Progress{
				Current:    idx + 1,
				Total:      len(dataRows),
				Percentage: (idx + 1) * 100 / len(dataRows),
				Status:     "parsing",
				Message:    "parsing rows",
			})
		}
	}

	onProgress.Report(domain.Progress{
		Current:    len(records),
		Total:      len(records),
		Percentage: 100,
		Status:     "parsing",
		Message:    "parsing complete",
	})
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimRow(row []string) []string {
	trimmed := make([]string, len(row))
	for i, cell := range row {
		trimmed[i] = strings.TrimSpace(cell)
	}
	return trimmed
}
