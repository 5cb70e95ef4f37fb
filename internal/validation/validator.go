package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rpattn/rximport/internal/domain"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1/2/06",
	"01/02/06",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// ParseDate attempts every accepted layout against a trimmed cell value.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ValidateRequired flags an empty or blank value as an error.
func ValidateRequired(value, field string, row int) []domain.ValidationError {
	if strings.TrimSpace(value) == "" {
		return []domain.ValidationError{domain.NewError(row, field, value, fmt.Sprintf("%s is required", field))}
	}
	return nil
}

// DateRules configures ValidateDate. MinDate/MaxDate are soft guidance:
// values outside the window produce warnings, not errors.
type DateRules struct {
	Required    bool
	MinDate     time.Time
	MaxDate     time.Time
	AllowFuture bool
}

// ValidateDate parses and checks one date cell. The parsed time is the zero
// value whenever the cell is empty or unparsable, which downstream order
// checks treat as "skip silently".
func ValidateDate(value, field string, row int, rules DateRules) (time.Time, []domain.ValidationError) {
	value = strings.TrimSpace(value)
	if value == "" {
		if rules.Required {
			return time.Time{}, []domain.ValidationError{domain.NewError(row, field, value, fmt.Sprintf("%s is required", field))}
		}
		return time.Time{}, nil
	}

	ts, ok := ParseDate(value)
	if !ok {
		return time.Time{}, []domain.ValidationError{domain.NewError(row, field, value, fmt.Sprintf("%s is not a recognized date", field))}
	}

	var findings []domain.ValidationError
	if !rules.AllowFuture && ts.After(time.Now()) {
		findings = append(findings, domain.NewError(row, field, value, fmt.Sprintf("%s cannot be in the future", field)))
	}
	if !rules.MinDate.IsZero() && ts.Before(rules.MinDate) {
		findings = append(findings, domain.NewWarning(row, field, value,
			fmt.Sprintf("%s is before %s", field, rules.MinDate.Format("2006-01-02"))))
	}
	if !rules.MaxDate.IsZero() && ts.After(rules.MaxDate) {
		findings = append(findings, domain.NewWarning(row, field, value,
			fmt.Sprintf("%s is after %s", field, rules.MaxDate.Format("2006-01-02"))))
	}
	return ts, findings
}

// ValidateDateOrder errors when later < earlier. Either side being the zero
// time means that date failed to parse and was already flagged elsewhere, so
// the order check skips silently rather than double-reporting.
func ValidateDateOrder(earlier, later time.Time, earlierField, laterField string, row int) []domain.ValidationError {
	if earlier.IsZero() || later.IsZero() {
		return nil
	}
	if later.Before(earlier) {
		return []domain.ValidationError{domain.NewError(row, laterField, later.Format("2006-01-02"),
			fmt.Sprintf("%s cannot be before %s", laterField, earlierField))}
	}
	return nil
}

// NumberRules configures ValidateNumber. Min is a hard floor (error); Max is
// a soft ceiling (warning) since data may legitimately exceed expectations.
// WarnMin/WarnMax express fully soft ranges where both bounds only warn.
type NumberRules struct {
	Required      bool
	Min           *float64
	Max           *float64
	WarnMin       *float64
	WarnMax       *float64
	AllowZero     bool
	AllowNegative bool
	Integer       bool
}

// Bound returns a *float64 literal for rule construction.
func Bound(v float64) *float64 { return &v }

// ValidateNumber parses and checks one numeric cell.
func ValidateNumber(value, field string, row int, rules NumberRules) (float64, []domain.ValidationError) {
	value = strings.TrimSpace(value)
	if value == "" {
		if rules.Required {
			return 0, []domain.ValidationError{domain.NewError(row, field, value, fmt.Sprintf("%s is required", field))}
		}
		return 0, nil
	}

	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, []domain.ValidationError{domain.NewError(row, field, value, fmt.Sprintf("%s is not a number", field))}
	}

	var findings []domain.ValidationError
	if rules.Integer && math.Mod(parsed, 1) != 0 {
		findings = append(findings, domain.NewError(row, field, value, fmt.Sprintf("%s must be a whole number", field)))
	}
	if parsed == 0 && !rules.AllowZero {
		findings = append(findings, domain.NewError(row, field, value, fmt.Sprintf("%s cannot be zero", field)))
	}
	if parsed < 0 && !rules.AllowNegative {
		findings = append(findings, domain.NewError(row, field, value, fmt.Sprintf("%s cannot be negative", field)))
	}
	if rules.Min != nil && parsed < *rules.Min && parsed != 0 && !(parsed < 0 && !rules.AllowNegative) {
		findings = append(findings, domain.NewError(row, field, value,
			fmt.Sprintf("%s must be at least %s", field, formatBound(*rules.Min))))
	}
	if rules.Max != nil && parsed > *rules.Max {
		findings = append(findings, domain.NewWarning(row, field, value,
			fmt.Sprintf("%s exceeds expected maximum of %s", field, formatBound(*rules.Max))))
	}
	if rules.WarnMin != nil && parsed < *rules.WarnMin {
		findings = append(findings, domain.NewWarning(row, field, value,
			fmt.Sprintf("%s is below expected minimum of %s", field, formatBound(*rules.WarnMin))))
	}
	if rules.WarnMax != nil && parsed > *rules.WarnMax {
		findings = append(findings, domain.NewWarning(row, field, value,
			fmt.Sprintf("%s exceeds expected maximum of %s", field, formatBound(*rules.WarnMax))))
	}
	return parsed, findings
}

// ValidateIntRange enforces a structural integer range: any value outside
// [min, max] is an error, never a warning.
func ValidateIntRange(value, field string, row int, min, max int, required bool) (int, []domain.ValidationError) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return 0, []domain.ValidationError{domain.NewError(row, field, value, fmt.Sprintf("%s is required", field))}
		}
		return 0, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		if f, ferr := strconv.ParseFloat(value, 64); ferr == nil && math.Mod(f, 1) == 0 {
			parsed = int(f)
		} else {
			return 0, []domain.ValidationError{domain.NewError(row, field, value, fmt.Sprintf("%s must be a whole number", field))}
		}
	}
	if parsed < min || parsed > max {
		return parsed, []domain.ValidationError{domain.NewError(row, field, value,
			fmt.Sprintf("%s must be between %d and %d", field, min, max))}
	}
	return parsed, nil
}

// ValidateNDC strips non-digits and warns when the result is not 11 digits.
// Malformed codes are tolerated but flagged for manual review.
func ValidateNDC(value string, row int) []domain.ValidationError {
	digits := digitCount(value)
	if digits == 0 {
		return nil
	}
	if digits != 11 {
		return []domain.ValidationError{domain.NewWarning(row, ColNDC, value,
			fmt.Sprintf("NDC should be 11 digits, got %d digits", digits))}
	}
	return nil
}

// ValidateNPI strips non-digits and warns when the result is not 10 digits.
func ValidateNPI(value, field string, row int) []domain.ValidationError {
	digits := digitCount(value)
	if digits == 0 {
		return nil
	}
	if digits != 10 {
		return []domain.ValidationError{domain.NewWarning(row, field, value,
			fmt.Sprintf("%s should be 10 digits, got %d digits", field, digits))}
	}
	return nil
}

func digitCount(value string) int {
	count := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
