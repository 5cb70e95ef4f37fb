package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rpattn/rximport/internal/domain"
)

// ParseScripts reads a pharmacy scripts spreadsheet (first sheet) into
// ordered RawRecords.
func ParseScripts(r io.Reader, onProgress domain.ProgressFunc) ([]domain.RawRecord, error) {
	onProgress.Report(domain.Progress{Status: "reading", Message: "reading scripts workbook"})

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}

	return buildRecords(grid, onProgress)
}
