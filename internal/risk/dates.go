// Package risk implements the expiry risk classification engine: date math,
// the decision policy that recommends a discount or a donation for a product
// nearing expiry, and the suggestion-list builder. Everything here is a pure
// function of its inputs — all I/O stays in the service layer so the policy
// is independently testable.
package risk

import (
	"math"
	"time"
)

// The listing horizon bounds which products are risk-zone candidates at all;
// the dashboard horizon only drives the "expiring soon" counter. They differ
// on purpose and must stay distinct named constants.
const (
	ListingHorizonDays   = 5
	DashboardHorizonDays = 3
)

// DaysUntil returns the number of whole days remaining until expiry, rounding
// partial days up. Expiry dates carry no time of day, so a product expiring
// today yields 0 and tomorrow yields 1. A negative result means the product
// is already expired.
func DaysUntil(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// WindowEnd returns the end of the risk window: now plus horizonDays calendar
// days. Callers capture now once per classification pass so every product in
// a batch is judged against the same instant.
func WindowEnd(now time.Time, horizonDays int) time.Time {
	return now.AddDate(0, 0, horizonDays)
}
