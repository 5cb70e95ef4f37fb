package domain

// Progress reports a coarse checkpoint during parse or ETL. Parsing occupies
// the first 30% of the visible range, ETL the remaining 70%.
type Progress struct {
	Current    int    `json:"current"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// ProgressFunc receives checkpoints. A nil ProgressFunc is always legal.
type ProgressFunc func(Progress)

// Report invokes the callback when present.
func (f ProgressFunc) Report(p Progress) {
	if f != nil {
		f(p)
	}
}
