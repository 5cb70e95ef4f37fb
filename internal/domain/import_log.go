package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportStatus is the lifecycle state of one file-import attempt.
type ImportStatus string

const (
	StatusProcessing ImportStatus = "Processing"
	StatusSuccess    ImportStatus = "Success"
	StatusPartial    ImportStatus = "Partial"
	StatusFailed     ImportStatus = "Failed"
)

// FileType distinguishes the two ingest pipelines.
type FileType string

const (
	FileTypeScripts FileType = "scripts"
	FileTypeClaims  FileType = "claims"
)

// MaxStoredErrors bounds the serialized error list persisted per import log.
const MaxStoredErrors = 100

// ImportLog is one row per file-import attempt. It is created with
// StatusProcessing before parsing begins and finalized exactly once.
type ImportLog struct {
	ID              uuid.UUID         `json:"id"`
	FileName        string            `json:"file_name"`
	FileType        FileType          `json:"file_type"`
	FileSizeBytes   int64             `json:"file_size_bytes"`
	Status          ImportStatus      `json:"status"`
	TotalRecords    int               `json:"total_records"`
	RecordsImported int               `json:"records_imported"`
	RecordsSkipped  int               `json:"records_skipped"`
	ReferenceCounts ReferenceCounts   `json:"reference_counts"`
	Errors          []ValidationError `json:"errors,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	DurationMillis  *int64            `json:"duration_ms,omitempty"`
}

// TruncateErrors bounds an error list to MaxStoredErrors entries for storage.
func TruncateErrors(errs []ValidationError) []ValidationError {
	if len(errs) <= MaxStoredErrors {
		return errs
	}
	return errs[:MaxStoredErrors]
}
