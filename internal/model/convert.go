package model

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const (
	dateLayout          = "2006-01-02"
	timestampLayout     = "2006-01-02 15:04:05"
	timestampFracLayout = "2006-01-02 15:04:05.000000"
)

// DecimalOrZero returns the float value of d, or 0 when d is NULL.
func DecimalOrZero(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return d.Decimal.InexactFloat64()
}

// DateOrNil formats d as YYYY-MM-DD, or returns nil when d is NULL.
// Infinity values keep their PostgreSQL spelling.
func DateOrNil(d pgtype.Date) *string {
	if !d.Valid {
		return nil
	}
	var s string
	switch d.InfinityModifier {
	case pgtype.Infinity:
		s = "infinity"
	case pgtype.NegativeInfinity:
		s = "-infinity"
	default:
		s = d.Time.Format(dateLayout)
	}
	return &s
}

// FormatTimestamp renders t as "YYYY-MM-DD HH:MM:SS", with six fractional
// digits only when t has sub-second precision.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampFracLayout)
}
