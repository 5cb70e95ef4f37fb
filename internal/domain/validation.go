package domain

// Severity classifies a validation finding. Errors block the row from being
// imported; warnings surface to the operator but never block. A finding is
// never auto-escalated or auto-suppressed after classification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError is one field-attributed finding for one row.
type ValidationError struct {
	Row      int      `json:"row"`
	Field    string   `json:"field"`
	Value    string   `json:"value,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// NewError builds an error-severity finding.
func NewError(row int, field, value, message string) ValidationError {
	return ValidationError{Row: row, Field: field, Value: value, Message: message, Severity: SeverityError}
}

// NewWarning builds a warning-severity finding.
func NewWarning(row int, field, value, message string) ValidationError {
	return ValidationError{Row: row, Field: field, Value: value, Message: message, Severity: SeverityWarning}
}

// ValidationResult is the outcome of validating one candidate record.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}
