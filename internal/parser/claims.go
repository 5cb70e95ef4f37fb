package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rpattn/rximport/internal/domain"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ParseClaims reads a delimited payer claims file into ordered RawRecords.
// A UTF-8 BOM is tolerated and ragged rows are accepted; the header row is
// the first non-empty line.
func ParseClaims(r io.Reader, onProgress domain.ProgressFunc) ([]domain.RawRecord, error) {
	onProgress.Report(domain.Progress{Status: "reading", Message: "reading claims file"})

	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = buffered.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(buffered)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	grid, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}

	return buildRecords(grid, onProgress)
}
