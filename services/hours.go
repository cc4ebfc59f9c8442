// Package services provides the valorization calculators and report exporters.
package services

// Overtime weighting factors for equivalent billable hours.
const (
	FactorOT125 = 1.25
	FactorOT135 = 1.35
	FactorOT200 = 2.0
)

// EquivalentHours converts the four hour buckets of a time-tracking line into
// a single overtime-weighted billable quantity. Absent buckets are zero.
func EquivalentHours(std, ot125, ot135, ot200 float64) float64 {
	return std + ot125*FactorOT125 + ot135*FactorOT135 + ot200*FactorOT200
}
