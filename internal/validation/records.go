// Package validation holds the pure field rules applied to candidate claim
// and prescription records. Nothing here touches storage, so validation is
// safe to run in parallel across rows.
package validation

import (
	"time"

	"github.com/rpattn/rximport/internal/domain"
)

var minReasonableDOB = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

type collector struct {
	errors   []domain.ValidationError
	warnings []domain.ValidationError
}

func (c *collector) add(findings ...domain.ValidationError) {
	for _, f := range findings {
		if f.Severity == domain.SeverityError {
			c.errors = append(c.errors, f)
		} else {
			c.warnings = append(c.warnings, f)
		}
	}
}

func (c *collector) result() domain.ValidationResult {
	return domain.ValidationResult{
		IsValid:  len(c.errors) == 0,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
}

// ValidateClaim checks one payer claim row. Financial and identity fields
// that would corrupt downstream aggregation are errors; format and soft-range
// findings are warnings so visibly dirty but usable data is not discarded.
func ValidateClaim(rec domain.RawRecord) domain.ValidationResult {
	c := &collector{}
	row := rec.Row

	_, findings := ValidateNumber(rec.Get(ColPrescriptionNumber), ColPrescriptionNumber, row, NumberRules{
		Required: true,
		Integer:  true,
		Min:      Bound(1),
	})
	c.add(findings...)

	written, findings := ValidateDate(rec.Get(ColDateWritten), ColDateWritten, row, DateRules{Required: true})
	c.add(findings...)
	filled, findings := ValidateDate(rec.Get(ColFillDate), ColFillDate, row, DateRules{Required: true})
	c.add(findings...)
	c.add(ValidateDateOrder(written, filled, ColDateWritten, ColFillDate, row)...)

	// Refill number is a structural business constraint: anything outside
	// [0,99] blocks the row.
	_, findings = ValidateIntRange(rec.Get(ColRefillNumber), ColRefillNumber, row, 0, 99, true)
	c.add(findings...)

	_, findings = ValidateNumber(rec.Get(ColQuantityDispensed), ColQuantityDispensed, row, NumberRules{
		Required: true,
		Min:      Bound(0.001),
		Max:      Bound(99999),
	})
	c.add(findings...)

	// Days supply bounds are soft on both sides; zero or negative values warn
	// via WarnMin but never block the row.
	_, findings = ValidateNumber(rec.Get(ColDaysSupply), ColDaysSupply, row, NumberRules{
		Integer:       true,
		WarnMin:       Bound(1),
		WarnMax:       Bound(365),
		AllowZero:     true,
		AllowNegative: true,
	})
	c.add(findings...)

	for _, moneyField := range []string{ColDrugCost340B, ColBilledAmount, ColPaidAmount, ColDispensingFee} {
		_, findings = ValidateNumber(rec.Get(moneyField), moneyField, row, NumberRules{
			AllowZero:     true,
			AllowNegative: true,
			WarnMin:       Bound(0),
		})
		c.add(findings...)
	}

	c.add(ValidateNDC(rec.Get(ColNDC), row)...)
	c.add(ValidateNPI(rec.Get(ColPrescriberNPI), ColPrescriberNPI, row)...)

	return c.result()
}

// ValidatePrescription checks one pharmacy script row. Mirrors the claim
// composition with patient and prescriber names as hard-required fields.
func ValidatePrescription(rec domain.RawRecord) domain.ValidationResult {
	c := &collector{}
	row := rec.Row

	c.add(ValidateRequired(rec.Get(ColPatientFirst), ColPatientFirst, row)...)
	c.add(ValidateRequired(rec.Get(ColPatientLast), ColPatientLast, row)...)
	c.add(ValidateRequired(rec.Get(ColPrescriberLast), ColPrescriberLast, row)...)

	_, findings := ValidateNumber(rec.Get(ColPrescriptionNumber), ColPrescriptionNumber, row, NumberRules{
		Required: true,
		Integer:  true,
		Min:      Bound(1),
	})
	c.add(findings...)

	prescribed, findings := ValidateDate(rec.Get(ColPrescribedDate), ColPrescribedDate, row, DateRules{Required: true})
	c.add(findings...)
	filled, findings := ValidateDate(rec.Get(ColFillDate), ColFillDate, row, DateRules{})
	c.add(findings...)
	c.add(ValidateDateOrder(prescribed, filled, ColPrescribedDate, ColFillDate, row)...)

	_, findings = ValidateIntRange(rec.Get(ColRefillsAuthorized), ColRefillsAuthorized, row, 0, 99, true)
	c.add(findings...)

	_, findings = ValidateNumber(rec.Get(ColQuantityDispensed), ColQuantityDispensed, row, NumberRules{
		Required: true,
		Min:      Bound(0.001),
		Max:      Bound(99999),
	})
	c.add(findings...)

	_, findings = ValidateNumber(rec.Get(ColDaysSupply), ColDaysSupply, row, NumberRules{
		Integer:       true,
		WarnMin:       Bound(1),
		WarnMax:       Bound(365),
		AllowZero:     true,
		AllowNegative: true,
	})
	c.add(findings...)

	_, findings = ValidateDate(rec.Get(ColPatientDOB), ColPatientDOB, row, DateRules{MinDate: minReasonableDOB})
	c.add(findings...)

	c.add(ValidateNDC(rec.Get(ColNDC), row)...)
	c.add(ValidateNPI(rec.Get(ColPrescriberNPI), ColPrescriberNPI, row)...)

	return c.result()
}
