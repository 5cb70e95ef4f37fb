package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/rximport/internal/domain"
)

type importLogRepository struct {
	pool *pgxpool.Pool
}

// NewImportLogRepository wires the import audit log backed by pgxpool.
func NewImportLogRepository(pool *pgxpool.Pool) ImportLogRepository {
	return &importLogRepository{pool: pool}
}

func (r *importLogRepository) Start(ctx context.Context, fileName string, fileType domain.FileType, fileSize int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO import_logs (file_name, file_type, file_size_bytes, status, started_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING id`,
		fileName, string(fileType), fileSize, string(domain.StatusProcessing),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("start import log", err)
	}
	return id, nil
}

func (r *importLogRepository) Complete(ctx context.Context, logID uuid.UUID, summary domain.ImportSummary, startedAt time.Time) error {
	serialized, err := json.Marshal(domain.TruncateErrors(summary.Errors))
	if err != nil {
		return fmt.Errorf("failed to serialize import errors: %w", err)
	}

	counts := summary.ReferenceDataCreated
	_, err = r.pool.Exec(ctx,
		`UPDATE import_logs
		 SET status = $2,
		     total_records = $3,
		     records_imported = $4,
		     records_skipped = $5,
		     covered_entities_created = $6,
		     pharmacies_created = $7,
		     prescribers_created = $8,
		     locations_created = $9,
		     drugs_created = $10,
		     patients_created = $11,
		     insurance_plans_created = $12,
		     errors = $13,
		     completed_at = now(),
		     duration_ms = $14,
		     updated_at = now()
		 WHERE id = $1`,
		logID,
		string(summary.Status()),
		summary.TotalRecords,
		summary.RecordsImported,
		summary.RecordsSkipped,
		counts.CoveredEntities,
		counts.Pharmacies,
		counts.Prescribers,
		counts.Locations,
		counts.Drugs,
		counts.Patients,
		counts.InsurancePlans,
		serialized,
		time.Since(startedAt).Milliseconds(),
	)
	return classifyError("complete import log", err)
}

func (r *importLogRepository) Fail(ctx context.Context, logID uuid.UUID, message string, startedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE import_logs
		 SET status = $2,
		     error_message = $3,
		     completed_at = now(),
		     duration_ms = $4,
		     updated_at = now()
		 WHERE id = $1`,
		logID,
		string(domain.StatusFailed),
		message,
		time.Since(startedAt).Milliseconds(),
	)
	return classifyError("fail import log", err)
}

func (r *importLogRepository) List(ctx context.Context, limit, offset int) ([]domain.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, file_name, file_type, file_size_bytes, status,
		        total_records, records_imported, records_skipped,
		        covered_entities_created, pharmacies_created, prescribers_created,
		        locations_created, drugs_created, patients_created, insurance_plans_created,
		        errors, error_message, started_at, completed_at, duration_ms
		 FROM import_logs
		 ORDER BY started_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, classifyError("list import logs", err)
	}
	defer rows.Close()

	logs := []domain.ImportLog{}
	for rows.Next() {
		var (
			entry        domain.ImportLog
			fileType     string
			status       string
			serialized   []byte
			errorMessage pgtype.Text
			completedAt  pgtype.Timestamptz
			durationMS   pgtype.Int8
		)
		if scanErr := rows.Scan(
			&entry.ID, &entry.FileName, &fileType, &entry.FileSizeBytes, &status,
			&entry.TotalRecords, &entry.RecordsImported, &entry.RecordsSkipped,
			&entry.ReferenceCounts.CoveredEntities, &entry.ReferenceCounts.Pharmacies,
			&entry.ReferenceCounts.Prescribers, &entry.ReferenceCounts.Locations,
			&entry.ReferenceCounts.Drugs, &entry.ReferenceCounts.Patients,
			&entry.ReferenceCounts.InsurancePlans,
			&serialized, &errorMessage, &entry.StartedAt, &completedAt, &durationMS,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", scanErr)
		}

		entry.FileType = domain.FileType(fileType)
		entry.Status = domain.ImportStatus(status)
		if len(serialized) > 0 {
			if jsonErr := json.Unmarshal(serialized, &entry.Errors); jsonErr != nil {
				return nil, fmt.Errorf("failed to decode import log errors: %w", jsonErr)
			}
		}
		if errorMessage.Valid {
			entry.ErrorMessage = errorMessage.String
		}
		if completedAt.Valid {
			completed := completedAt.Time
			entry.CompletedAt = &completed
		}
		if durationMS.Valid {
			duration := durationMS.Int64
			entry.DurationMillis = &duration
		}

		logs = append(logs, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate import logs: %w", rowsErr)
	}
	return logs, nil
}
