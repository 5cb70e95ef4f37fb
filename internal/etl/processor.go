// Package etl drives the validate → resolve → persist pipeline for one batch
// of parsed records and aggregates per-row outcomes into an ImportSummary.
package etl

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/repository"
	"github.com/rpattn/rximport/internal/resolver"
	"github.com/rpattn/rximport/internal/validation"
)

// ErrNoRecords signals an empty input batch. It is a distinct condition from
// a failed run: no storage is touched and no rows are attributed.
var ErrNoRecords = errors.New("no records to import")

// cancelCheckInterval is how many rows are persisted between context checks.
const cancelCheckInterval = 100

// Processor is the import orchestrator. One call processes one uploaded
// file's parsed records; the two file-type pipelines share no state, so they
// may run concurrently.
type Processor struct {
	refs    repository.ReferenceRepository
	records repository.RecordRepository
	logger  *zap.Logger
}

// NewProcessor wires an orchestrator over the storage collaborators.
func NewProcessor(refs repository.ReferenceRepository, records repository.RecordRepository, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{refs: refs, records: records, logger: logger}
}

// ProcessScripts runs the pharmacy scripts pipeline over parsed records.
func (p *Processor) ProcessScripts(ctx context.Context, records []domain.RawRecord, onProgress domain.ProgressFunc) (domain.ImportSummary, error) {
	return p.run(ctx, records, onProgress, rowPipeline{
		validate: validation.ValidatePrescription,
		persist:  p.persistScript,
	})
}

// ProcessClaims runs the payer claims pipeline over parsed records.
func (p *Processor) ProcessClaims(ctx context.Context, records []domain.RawRecord, onProgress domain.ProgressFunc) (domain.ImportSummary, error) {
	return p.run(ctx, records, onProgress, rowPipeline{
		validate: validation.ValidateClaim,
		persist:  p.persistClaim,
	})
}

// rowPipeline is the file-type-specific half of the orchestrator: a pure
// per-row validator and a resolve-and-persist step for rows that passed.
type rowPipeline struct {
	validate func(domain.RawRecord) domain.ValidationResult
	persist  func(context.Context, *resolver.Resolver, domain.RawRecord) (*domain.ValidationError, error)
}

type validRow struct {
	record domain.RawRecord
}

// run is the single-pass orchestration: validate every record first, resolve
// references only for valid rows (invalid rows must never create reference
// entities), persist row by row, and accumulate the summary. Progress is
// reported on the 30-100% band; the first 30% belongs to parsing.
func (p *Processor) run(
	ctx context.Context,
	records []domain.RawRecord,
	onProgress domain.ProgressFunc,
	pipeline rowPipeline,
) (domain.ImportSummary, error) {
	summary := domain.ImportSummary{
		Errors:   []domain.ValidationError{},
		Warnings: []domain.ValidationError{},
	}
	if len(records) == 0 {
		return summary, ErrNoRecords
	}

	summary.TotalRecords = len(records)
	onProgress.Report(domain.Progress{
		Total:      len(records),
		Percentage: 30,
		Status:     "validating",
		Message:    "validating records",
	})

	valid := make([]validRow, 0, len(records))
	for _, rec := range records {
		result := pipeline.validate(rec)
		summary.Warnings = append(summary.Warnings, result.Warnings...)
		if !result.IsValid {
			summary.Errors = append(summary.Errors, result.Errors...)
			continue
		}
		valid = append(valid, validRow{record: rec})
	}

	onProgress.Report(domain.Progress{
		Current:    len(valid),
		Total:      len(records),
		Percentage: 45,
		Status:     "resolving",
		Message:    "resolving reference data",
	})

	run := resolver.New(p.refs)

	for idx, row := range valid {
		if idx%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				summary.RecordsSkipped = summary.TotalRecords - summary.RecordsImported
				summary.ReferenceDataCreated = run.Counts()
				return summary, err
			}
		}

		rowErr, fatal := pipeline.persist(ctx, run, row.record)
		if fatal != nil {
			summary.RecordsSkipped = summary.TotalRecords - summary.RecordsImported
			summary.ReferenceDataCreated = run.Counts()
			return summary, fatal
		}
		if rowErr != nil {
			p.logger.Debug("row skipped",
				zap.Int("row", rowErr.Row),
				zap.String("field", rowErr.Field),
				zap.String("reason", rowErr.Message))
			summary.Errors = append(summary.Errors, *rowErr)
			continue
		}
		summary.RecordsImported++

		if (idx+1)%cancelCheckInterval == 0 {
			onProgress.Report(domain.Progress{
				Current:    idx + 1,
				Total:      len(valid),
				Percentage: 50 + (idx+1)*45/len(valid),
				Status:     "saving",
				Message:    "saving records",
			})
		}
	}

	summary.RecordsSkipped = summary.TotalRecords - summary.RecordsImported
	summary.ReferenceDataCreated = run.Counts()

	onProgress.Report(domain.Progress{
		Current:    summary.RecordsImported,
		Total:      summary.TotalRecords,
		Percentage: 100,
		Status:     "complete",
		Message:    "import complete",
	})
	return summary, nil
}

// classifyRowError turns a resolution or persistence failure into either a
// synthesized per-row error (returned first) or a fatal run error (second).
// Storage unavailability is the only fatal class.
func classifyRowError(rec domain.RawRecord, field string, err error) (*domain.ValidationError, error) {
	if err == nil {
		return nil, nil
	}
	if errors.Is(err, repository.ErrUnavailable) {
		return nil, err
	}

	message := "failed to resolve reference data"
	switch {
	case errors.Is(err, resolver.ErrMissingKey):
		message = field + " could not identify a reference entity"
	case errors.Is(err, repository.ErrDuplicate):
		message = "duplicate record"
	default:
		message = message + ": " + err.Error()
	}
	finding := domain.NewError(rec.Row, field, rec.Get(field), message)
	return &finding, nil
}
