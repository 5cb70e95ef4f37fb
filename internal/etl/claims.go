package etl

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/resolver"
	"github.com/rpattn/rximport/internal/validation"
)

// persistClaim resolves the references a validated claim row implies and
// inserts the normalized claim.
func (p *Processor) persistClaim(ctx context.Context, run *resolver.Resolver, rec domain.RawRecord) (*domain.ValidationError, error) {
	coveredEntityID, err := run.CoveredEntity(ctx, domain.CoveredEntity{
		Entity340BID: rec.Get(validation.ColCoveredEntityID),
		Name:         rec.Get(validation.ColCoveredEntityName),
	})
	if rowErr, fatal := classifyRowError(rec, validation.ColCoveredEntityID, err); rowErr != nil || fatal != nil {
		return rowErr, fatal
	}

	pharmacyID, err := run.Pharmacy(ctx, domain.Pharmacy{
		NPI:  rec.Get(validation.ColPharmacyNPI),
		NABP: rec.Get(validation.ColPharmacyNABP),
		Name: rec.Get(validation.ColPharmacyName),
	})
	if rowErr, fatal := classifyRowError(rec, validation.ColPharmacyNPI, err); rowErr != nil || fatal != nil {
		return rowErr, fatal
	}

	prescriberID, err := run.Prescriber(ctx, domain.Prescriber{
		NPI:       rec.Get(validation.ColPrescriberNPI),
		DEA:       rec.Get(validation.ColPrescriberDEA),
		FirstName: rec.Get(validation.ColPrescriberFirst),
		LastName:  rec.Get(validation.ColPrescriberLast),
	})
	if rowErr, fatal := classifyRowError(rec, validation.ColPrescriberNPI, err); rowErr != nil || fatal != nil {
		return rowErr, fatal
	}

	drugID, err := run.Drug(ctx, domain.Drug{
		NDC:  rec.Get(validation.ColNDC),
		Name: rec.Get(validation.ColDrugName),
	})
	if rowErr, fatal := classifyRowError(rec, validation.ColNDC, err); rowErr != nil || fatal != nil {
		return rowErr, fatal
	}

	patientID, err := run.Patient(ctx, domain.Patient{
		MRN:        rec.Get(validation.ColPatientMRN),
		ExternalID: rec.Get(validation.ColPatientID),
		FirstName:  rec.Get(validation.ColPatientFirst),
		LastName:   rec.Get(validation.ColPatientLast),
	})
	if rowErr, fatal := classifyRowError(rec, validation.ColPatientMRN, err); rowErr != nil || fatal != nil {
		return rowErr, fatal
	}

	// Insurance routing identifiers are optional on cash claims.
	var planID *uuid.UUID
	if rec.Has(validation.ColInsuranceBIN) || rec.Has(validation.ColInsuranceName) {
		id, err := run.InsurancePlan(ctx, domain.InsurancePlan{
			BIN:         rec.Get(validation.ColInsuranceBIN),
			PCN:         rec.Get(validation.ColInsurancePCN),
			GroupNumber: rec.Get(validation.ColInsuranceGroup),
			Name:        rec.Get(validation.ColInsuranceName),
		})
		if rowErr, fatal := classifyRowError(rec, validation.ColInsuranceBIN, err); rowErr != nil || fatal != nil {
			return rowErr, fatal
		}
		planID = &id
	}

	claim := domain.Claim{
		CoveredEntityID:    coveredEntityID,
		PharmacyID:         pharmacyID,
		PrescriberID:       prescriberID,
		DrugID:             drugID,
		PatientID:          patientID,
		InsurancePlanID:    planID,
		PrescriptionNumber: cellInt64(rec, validation.ColPrescriptionNumber),
		RefillNumber:       cellInt(rec, validation.ColRefillNumber),
		DateWritten:        cellDate(rec, validation.ColDateWritten),
		FillDate:           cellDate(rec, validation.ColFillDate),
		QuantityDispensed:  cellDecimal(rec, validation.ColQuantityDispensed),
		DaysSupply:         cellInt(rec, validation.ColDaysSupply),
		DrugCost340B:       cellDecimal(rec, validation.ColDrugCost340B),
		BilledAmount:       cellDecimal(rec, validation.ColBilledAmount),
		PaidAmount:         cellDecimal(rec, validation.ColPaidAmount),
		DispensingFee:      cellDecimal(rec, validation.ColDispensingFee),
	}

	err = p.records.InsertClaim(ctx, claim)
	return classifyRowError(rec, validation.ColPrescriptionNumber, err)
}
