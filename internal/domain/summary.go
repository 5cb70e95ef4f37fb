package domain

// ReferenceCounts tracks reference entities created during one import run.
// Reused lookups are not counted.
type ReferenceCounts struct {
	CoveredEntities int `json:"coveredEntities"`
	Pharmacies      int `json:"pharmacies"`
	Prescribers     int `json:"prescribers"`
	Locations       int `json:"locations"`
	Drugs           int `json:"drugs"`
	Patients        int `json:"patients"`
	InsurancePlans  int `json:"insurancePlans"`
}

// Total sums creations across all entity types.
func (c ReferenceCounts) Total() int {
	return c.CoveredEntities + c.Pharmacies + c.Prescribers + c.Locations +
		c.Drugs + c.Patients + c.InsurancePlans
}

// ImportSummary aggregates the per-row outcomes of one import run.
// recordsImported + recordsSkipped always equals totalRecords.
type ImportSummary struct {
	TotalRecords         int               `json:"totalRecords"`
	RecordsImported      int               `json:"recordsImported"`
	RecordsSkipped       int               `json:"recordsSkipped"`
	ReferenceDataCreated ReferenceCounts   `json:"referenceDataCreated"`
	Errors               []ValidationError `json:"errors"`
	Warnings             []ValidationError `json:"warnings"`
}

// Status derives the terminal import status from the summary counts:
// Failed when nothing imported and at least one error occurred, Partial when
// something imported alongside errors, otherwise Success.
func (s ImportSummary) Status() ImportStatus {
	switch {
	case s.RecordsImported == 0 && len(s.Errors) > 0:
		return StatusFailed
	case s.RecordsImported > 0 && len(s.Errors) > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}
