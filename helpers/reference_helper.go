package helpers

import (
	"fmt"
	"time"
)

// Reference formats, kept as pure functions so uniqueness and round-trip
// tests can target them directly:
//
//	declaration  DEC-<year>-<id zero padded to 5>
//	payment      PAY-<year>-<id zero padded to 5>
//	notice       AV-GNR-<unix milliseconds>
//	AMR number   <year> concatenated with <id zero padded to 4>, as an integer

// DeclarationReference builds the reference string of a declaration.
func DeclarationReference(year int, id int64) string {
	return fmt.Sprintf("DEC-%d-%05d", year, id)
}

// PaymentReference builds the reference string of a payment.
func PaymentReference(year int, id int64) string {
	return fmt.Sprintf("PAY-%d-%05d", year, id)
}

// NoticeReference builds the reference of a generated assessment notice from
// a high-resolution timestamp.
func NoticeReference(at time.Time) string {
	return fmt.Sprintf("AV-GNR-%d", at.UnixMilli())
}

// EnforcementNumber builds the numeric AMR number from the emission year and
// the allocated id: the year followed by the id zero padded to 4 digits.
func EnforcementNumber(year int, id int64) int64 {
	return int64(year)*10000 + id
}

// DateOnly formats a timestamp the way every date field goes over the wire.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
