package validation

// Column names shared by both file layouts.
const (
	ColPrescriptionNumber = "Prescription Number"
	ColFillDate           = "Fill Date"
	ColQuantityDispensed  = "Quantity Dispensed"
	ColDaysSupply         = "Days Supply"
	ColNDC                = "NDC"
	ColDrugName           = "Drug Name"
	ColPrescriberNPI      = "Prescriber NPI"
	ColPrescriberDEA      = "Prescriber DEA"
	ColPrescriberFirst    = "Prescriber First Name"
	ColPrescriberLast     = "Prescriber Last Name"
	ColPharmacyNPI        = "Pharmacy NPI"
	ColPharmacyNABP       = "Pharmacy NABP"
	ColPharmacyName       = "Pharmacy Name"
	ColCoveredEntityID    = "Covered Entity ID"
	ColCoveredEntityName  = "Covered Entity Name"
	ColPatientMRN         = "Patient MRN"
	ColPatientID          = "Patient ID"
	ColPatientFirst       = "Patient First Name"
	ColPatientLast        = "Patient Last Name"
	ColPatientDOB         = "Patient DOB"
)

// Columns specific to pharmacy script exports.
const (
	ColPrescribedDate    = "Prescribed Date"
	ColRefillsAuthorized = "Refills Authorized"
	ColLocation          = "Location"
)

// Columns specific to payer claim files.
const (
	ColDateWritten    = "Date Written"
	ColRefillNumber   = "Refill Number"
	ColDrugCost340B   = "340B Drug Cost"
	ColBilledAmount   = "Billed Amount"
	ColPaidAmount     = "Paid Amount"
	ColDispensingFee  = "Dispensing Fee"
	ColInsuranceBIN   = "Insurance BIN"
	ColInsurancePCN   = "Insurance PCN"
	ColInsuranceGroup = "Insurance Group"
	ColInsuranceName  = "Insurance Name"
)
