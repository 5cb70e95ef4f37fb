package etl

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/validation"
)

// The conversion helpers below run only on rows that already passed
// validation, so parse failures degrade to zero values instead of errors.

func cellInt64(rec domain.RawRecord, field string) int64 {
	value := strings.ReplaceAll(rec.Get(field), ",", "")
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int64(f)
	}
	return 0
}

func cellInt(rec domain.RawRecord, field string) int {
	return int(cellInt64(rec, field))
}

func cellDecimal(rec domain.RawRecord, field string) decimal.Decimal {
	value := strings.ReplaceAll(rec.Get(field), ",", "")
	value = strings.TrimPrefix(value, "$")
	if d, err := decimal.NewFromString(value); err == nil {
		return d
	}
	return decimal.Zero
}

func cellDate(rec domain.RawRecord, field string) time.Time {
	ts, _ := validation.ParseDate(rec.Get(field))
	return ts
}

func cellDatePtr(rec domain.RawRecord, field string) *time.Time {
	if ts, ok := validation.ParseDate(rec.Get(field)); ok {
		return &ts
	}
	return nil
}
