package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawRecord is one physical data row as produced by a parser: a mapping of
// column name to raw cell value plus the 1-based row ordinal used in all
// diagnostics. Treated as immutable once produced.
type RawRecord struct {
	Row    int
	Fields map[string]string
}

// Get returns the trimmed cell value for a column, or "" when absent.
func (r RawRecord) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// Has reports whether a column holds a non-blank value.
func (r RawRecord) Has(field string) bool {
	return r.Get(field) != ""
}

// Prescription is a validated pharmacy script row with all reference fields
// replaced by resolved surrogate ids. Never mutated after insertion.
type Prescription struct {
	ID                 uuid.UUID       `json:"id"`
	CoveredEntityID    uuid.UUID       `json:"covered_entity_id"`
	PharmacyID         uuid.UUID       `json:"pharmacy_id"`
	PrescriberID       uuid.UUID       `json:"prescriber_id"`
	DrugID             uuid.UUID       `json:"drug_id"`
	PatientID          uuid.UUID       `json:"patient_id"`
	LocationID         *uuid.UUID      `json:"location_id,omitempty"`
	PrescriptionNumber int64           `json:"prescription_number"`
	RefillsAuthorized  int             `json:"refills_authorized"`
	QuantityDispensed  decimal.Decimal `json:"quantity_dispensed"`
	DaysSupply         int             `json:"days_supply"`
	PrescribedDate     time.Time       `json:"prescribed_date"`
	FillDate           *time.Time      `json:"fill_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Claim is a validated payer claim row with resolved reference ids and the
// 340B purchase/reimbursement economics.
type Claim struct {
	ID                 uuid.UUID       `json:"id"`
	CoveredEntityID    uuid.UUID       `json:"covered_entity_id"`
	PharmacyID         uuid.UUID       `json:"pharmacy_id"`
	PrescriberID       uuid.UUID       `json:"prescriber_id"`
	DrugID             uuid.UUID       `json:"drug_id"`
	PatientID          uuid.UUID       `json:"patient_id"`
	InsurancePlanID    *uuid.UUID      `json:"insurance_plan_id,omitempty"`
	PrescriptionNumber int64           `json:"prescription_number"`
	RefillNumber       int             `json:"refill_number"`
	DateWritten        time.Time       `json:"date_written"`
	FillDate           time.Time       `json:"fill_date"`
	QuantityDispensed  decimal.Decimal `json:"quantity_dispensed"`
	DaysSupply         int             `json:"days_supply"`
	DrugCost340B       decimal.Decimal `json:"drug_cost_340b"`
	BilledAmount       decimal.Decimal `json:"billed_amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	DispensingFee      decimal.Decimal `json:"dispensing_fee"`
	CreatedAt          time.Time       `json:"created_at"`
}
