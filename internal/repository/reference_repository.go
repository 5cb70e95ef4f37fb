package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/rximport/internal/domain"
)

type referenceRepository struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository wires a reference-data repository backed by pgxpool.
func NewReferenceRepository(pool *pgxpool.Pool) ReferenceRepository {
	return &referenceRepository{pool: pool}
}

func (r *referenceRepository) findID(ctx context.Context, op, query, key string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, key).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, classifyError(op, err)
	}
	return id, true, nil
}

func (r *referenceRepository) FindCoveredEntityByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	return r.findID(ctx, "find covered entity",
		`SELECT id FROM covered_entities WHERE natural_key = $1`, key)
}

func (r *referenceRepository) CreateCoveredEntity(ctx context.Context, entity domain.CoveredEntity) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO covered_entities (natural_key, entity_340b_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		entity.NaturalKey(), entity.Entity340BID, entity.Name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("create covered entity", err)
	}
	return id, nil
}

func (r *referenceRepository) FindPharmacyByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	return r.findID(ctx, "find pharmacy",
		`SELECT id FROM pharmacies WHERE natural_key = $1`, key)
}

func (r *referenceRepository) CreatePharmacy(ctx context.Context, pharmacy domain.Pharmacy) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO pharmacies (natural_key, npi, nabp, name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		pharmacy.NaturalKey(), pharmacy.NPI, pharmacy.NABP, pharmacy.Name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("create pharmacy", err)
	}
	return id, nil
}

func (r *referenceRepository) FindPrescriberByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	return r.findID(ctx, "find prescriber",
		`SELECT id FROM prescribers WHERE natural_key = $1`, key)
}

func (r *referenceRepository) CreatePrescriber(ctx context.Context, prescriber domain.Prescriber) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO prescribers (natural_key, npi, dea, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		prescriber.NaturalKey(), prescriber.NPI, prescriber.DEA, prescriber.FirstName, prescriber.LastName,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("create prescriber", err)
	}
	return id, nil
}

func (r *referenceRepository) FindDrugByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	return r.findID(ctx, "find drug",
		`SELECT id FROM drugs WHERE natural_key = $1`, key)
}

func (r *referenceRepository) CreateDrug(ctx context.Context, drug domain.Drug) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO drugs (natural_key, ndc, name)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		drug.NaturalKey(), drug.NDC, drug.Name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("create drug", err)
	}
	return id, nil
}

func (r *referenceRepository) FindPatientByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	return r.findID(ctx, "find patient",
		`SELECT id FROM patients WHERE natural_key = $1`, key)
}

func (r *referenceRepository) CreatePatient(ctx context.Context, patient domain.Patient) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO patients (natural_key, mrn, external_id, first_name, last_name, date_of_birth)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		patient.NaturalKey(), patient.MRN, patient.ExternalID, patient.FirstName, patient.LastName, patient.DateOfBirth,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("create patient", err)
	}
	return id, nil
}

func (r *referenceRepository) FindLocationByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	return r.findID(ctx, "find location",
		`SELECT id FROM locations WHERE natural_key = $1`, key)
}

func (r *referenceRepository) CreateLocation(ctx context.Context, location domain.Location) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO locations (natural_key, covered_entity_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		location.NaturalKey(), location.CoveredEntityID, location.Name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("create location", err)
	}
	return id, nil
}

func (r *referenceRepository) FindInsurancePlanByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	return r.findID(ctx, "find insurance plan",
		`SELECT id FROM insurance_plans WHERE natural_key = $1`, key)
}

func (r *referenceRepository) CreateInsurancePlan(ctx context.Context, plan domain.InsurancePlan) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO insurance_plans (natural_key, bin, pcn, group_number, name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		plan.NaturalKey(), plan.BIN, plan.PCN, plan.GroupNumber, plan.Name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyError("create insurance plan", err)
	}
	return id, nil
}
