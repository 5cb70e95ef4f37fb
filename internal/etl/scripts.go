package etl

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/resolver"
	"github.com/rpattn/rximport/internal/validation"
)

// persistScript resolves the references a validated script row implies and
// inserts the normalized prescription. The first return value is a per-row
// failure that skips only this row; the second aborts the run.
func (p *Processor) persistScript(ctx context.Context, run *resolver.Resolver, rec domain.RawRecord) (*domain.ValidationError, error) {
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
		MRN:         rec.Get(validation.ColPatientMRN),
		ExternalID:  rec.Get(validation.ColPatientID),
		FirstName:   rec.Get(validation.ColPatientFirst),
		LastName:    rec.Get(validation.ColPatientLast),
		DateOfBirth: cellDatePtr(rec, validation.ColPatientDOB),
	})
	if rowErr, fatal := classifyRowError(rec, validation.ColPatientMRN, err); rowErr != nil || fatal != nil {
		return rowErr, fatal
	}

	// Location is optional: scripts without a site column resolve no location.
	var locationID *uuid.UUID
	if rec.Has(validation.ColLocation) {
		id, err := run.Location(ctx, domain.Location{
			CoveredEntityID: coveredEntityID,
			Name:            rec.Get(validation.ColLocation),
		})
		if rowErr, fatal := classifyRowError(rec, validation.ColLocation, err); rowErr != nil || fatal != nil {
			return rowErr, fatal
		}
		locationID = &id
	}

	prescription := domain.Prescription{
		CoveredEntityID:    coveredEntityID,
		PharmacyID:         pharmacyID,
		PrescriberID:       prescriberID,
		DrugID:             drugID,
		PatientID:          patientID,
		LocationID:         locationID,
		PrescriptionNumber: cellInt64(rec, validation.ColPrescriptionNumber),
		RefillsAuthorized:  cellInt(rec, validation.ColRefillsAuthorized),
		QuantityDispensed:  cellDecimal(rec, validation.ColQuantityDispensed),
		DaysSupply:         cellInt(rec, validation.ColDaysSupply),
		PrescribedDate:     cellDate(rec, validation.ColPrescribedDate),
		FillDate:           cellDatePtr(rec, validation.ColFillDate),
	}

	err = p.records.InsertPrescription(ctx, prescription)
	return classifyRowError(rec, validation.ColPrescriptionNumber, err)
}
