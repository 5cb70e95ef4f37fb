package domain

import "testing"

func TestImportSummaryStatus(t *testing.T) {
	tests := []struct {
		name    string
		summary ImportSummary
		want    ImportStatus
	}{
		{
			name:    "all rows imported",
			summary: ImportSummary{TotalRecords: 5, RecordsImported: 5},
			want:    StatusSuccess,
		},
		{
			name: "some rows imported with errors",
			summary: ImportSummary{
				TotalRecords:    5,
				RecordsImported: 3,
				RecordsSkipped:  2,
				Errors:          []ValidationError{{Row: 1}, {Row: 2}},
			},
			want: StatusPartial,
		},
		{
			name: "no rows imported with errors",
			summary: ImportSummary{
				TotalRecords:   5,
				RecordsSkipped: 5,
				Errors:         []ValidationError{{Row: 1}},
			},
			want: StatusFailed,
		},
		{
			name: "warnings alone do not degrade status",
			summary: ImportSummary{
				TotalRecords:    2,
				RecordsImported: 2,
				Warnings:        []ValidationError{{Row: 1}},
			},
			want: StatusSuccess,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReferenceCountsTotal(t *testing.T) {
	counts := ReferenceCounts{
		CoveredEntities: 1,
		Pharmacies:      2,
		Prescribers:     3,
		Locations:       4,
		Drugs:           5,
		Patients:        6,
		InsurancePlans:  7,
	}
	if got := counts.Total(); got != 28 {
		t.Errorf("Total() = %d, want 28", got)
	}
}

func TestTruncateErrors(t *testing.T) {
	errs := make([]ValidationError, MaxStoredErrors+50)
	for i := range errs {
		errs[i] = ValidationError{Row: i + 1}
	}
	truncated := TruncateErrors(errs)
	if len(truncated) != MaxStoredErrors {
		t.Fatalf("len = %d, want %d", len(truncated), MaxStoredErrors)
	}
	if truncated[0].Row != 1 {
		t.Errorf("truncation must keep the earliest findings, got first row %d", truncated[0].Row)
	}

	short := []ValidationError{{Row: 1}}
	if got := TruncateErrors(short); len(got) != 1 {
		t.Errorf("short list must pass through, got len %d", len(got))
	}
}
