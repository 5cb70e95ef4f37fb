package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/rximport/internal/domain"
)

var (
	// ErrDuplicate marks a natural-key or record uniqueness violation.
	// Resolvers retry creations as lookups on it; the orchestrator turns it
	// into a per-row "duplicate" skip.
	ErrDuplicate = errors.New("duplicate record")

	// ErrUnavailable marks storage as unreachable. Unlike per-row failures it
	// aborts the remaining run and the audit log is marked Failed.
	ErrUnavailable = errors.New("storage unavailable")
)

// ReferenceRepository exposes find-by-natural-key and create primitives per
// reference entity type. Find returns (uuid.Nil, false, nil) on a clean miss.
type ReferenceRepository interface {
	FindCoveredEntityByKey(ctx context.Context, key string) (uuid.UUID, bool, error)
	CreateCoveredEntity(ctx context.Context, entity domain.CoveredEntity) (uuid.UUID, error)

	FindPharmacyByKey(ctx context.Context, key string) (uuid.UUID, bool, error)
	CreatePharmacy(ctx context.Context, pharmacy domain.Pharmacy) (uuid.UUID, error)

	FindPrescriberByKey(ctx context.Context, key string) (uuid.UUID, bool, error)
	CreatePrescriber(ctx context.Context, prescriber domain.Prescriber) (uuid.UUID, error)

	FindDrugByKey(ctx context.Context, key string) (uuid.UUID, bool, error)
	CreateDrug(ctx context.Context, drug domain.Drug) (uuid.UUID, error)

	FindPatientByKey(ctx context.Context, key string) (uuid.UUID, bool, error)
	CreatePatient(ctx context.Context, patient domain.Patient) (uuid.UUID, error)

	FindLocationByKey(ctx context.Context, key string) (uuid.UUID, bool, error)
	CreateLocation(ctx context.Context, location domain.Location) (uuid.UUID, error)

	FindInsurancePlanByKey(ctx context.Context, key string) (uuid.UUID, bool, error)
	CreateInsurancePlan(ctx context.Context, plan domain.InsurancePlan) (uuid.UUID, error)
}

// RecordRepository persists normalized records. Inserts are row-scoped so the
// orchestrator can classify duplicate-key violations per row.
type RecordRepository interface {
	InsertPrescription(ctx context.Context, prescription domain.Prescription) error
	InsertClaim(ctx context.Context, claim domain.Claim) error
}

// ImportLogRepository is the audit trail of file-import attempts.
type ImportLogRepository interface {
	// Start writes a Processing row before parsing begins so a crash
	// mid-import is visible as a stuck Processing entry.
	Start(ctx context.Context, fileName string, fileType domain.FileType, fileSize int64) (uuid.UUID, error)
	// Complete finalizes the row with counts, a bounded error list, the
	// derived status and computed duration. A log is finalized exactly once.
	Complete(ctx context.Context, logID uuid.UUID, summary domain.ImportSummary, startedAt time.Time) error
	// Fail finalizes the row as Failed with a raw error message, used for
	// exceptions outside the ETL processor's own error accumulation.
	Fail(ctx context.Context, logID uuid.UUID, message string, startedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]domain.ImportLog, error)
}
