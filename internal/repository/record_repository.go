package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/rximport/internal/domain"
)

type recordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository wires a normalized-record repository backed by pgxpool.
func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

func (r *recordRepository) InsertPrescription(ctx context.Context, p domain.Prescription) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO prescriptions (
			covered_entity_id, pharmacy_id, prescriber_id, drug_id, patient_id, location_id,
			prescription_number, refills_authorized, quantity_dispensed, days_supply,
			prescribed_date, fill_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.CoveredEntityID, p.PharmacyID, p.PrescriberID, p.DrugID, p.PatientID, p.LocationID,
		p.PrescriptionNumber, p.RefillsAuthorized, p.QuantityDispensed, p.DaysSupply,
		p.PrescribedDate, p.FillDate,
	)
	return classifyError("insert prescription", err)
}

func (r *recordRepository) InsertClaim(ctx context.Context, c domain.Claim) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO claims (
			covered_entity_id, pharmacy_id, prescriber_id, drug_id, patient_id, insurance_plan_id,
			prescription_number, refill_number, date_written, fill_date,
			quantity_dispensed, days_supply, drug_cost_340b, billed_amount, paid_amount, dispensing_fee)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		c.CoveredEntityID, c.PharmacyID, c.PrescriberID, c.DrugID, c.PatientID, c.InsurancePlanID,
		c.PrescriptionNumber, c.RefillNumber, c.DateWritten, c.FillDate,
		c.QuantityDispensed, c.DaysSupply, c.DrugCost340B, c.BilledAmount, c.PaidAmount, c.DispensingFee,
	)
	return classifyError("insert claim", err)
}
