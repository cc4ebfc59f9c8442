package services

import (
	"fmt"
	"sort"
)

// SortTiers returns the tiers sorted ascending by threshold hours, breaking
// ties with the explicit ordering key. The input slice is not modified.
func SortTiers(tiers []ConfigDescuentoHH) []ConfigDescuentoHH {
	sorted := make([]ConfigDescuentoHH, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DesdeHoras != sorted[j].DesdeHoras {
			return sorted[i].DesdeHoras < sorted[j].DesdeHoras
		}
		return sorted[i].Orden < sorted[j].Orden
	})
	return sorted
}

// CumulativeDiscountPct computes the effective stacked discount for a total
// equivalent-hours figure. Discounts are additive: every tier whose threshold
// is met contributes its percentage, crossing a higher threshold never
// deactivates a lower tier.
func CumulativeDiscountPct(totalHoras float64, tiers []ConfigDescuentoHH) float64 {
	var pct float64
	for _, tier := range SortTiers(tiers) {
		if totalHoras >= tier.DesdeHoras {
			pct += tier.DescuentoPct
		}
	}
	return pct
}

// DescribeTiers renders the discount tiers as the human-readable lines shown
// on the Costo HH sheet and in the configuration preview. Tiers after the
// first are labeled as additional, matching the cumulative stacking.
func DescribeTiers(tiers []ConfigDescuentoHH) []string {
	sorted := SortTiers(tiers)
	lines := make([]string, 0, len(sorted))
	for i, tier := range sorted {
		label := "descuento de"
		if i > 0 {
			label = "descuento adicional de"
		}
		lines = append(lines, fmt.Sprintf("> %s HH %s %s%%",
			formatHours(tier.DesdeHoras), label, formatPct(tier.DescuentoPct)))
	}
	return lines
}

// DiscountExamples produces illustrative (hours, effective pct) pairs for the
// configuration surface: one example at each tier threshold.
func DiscountExamples(tiers []ConfigDescuentoHH) []string {
	sorted := SortTiers(tiers)
	examples := make([]string, 0, len(sorted))
	for _, tier := range sorted {
		eff := CumulativeDiscountPct(tier.DesdeHoras, tiers)
		examples = append(examples, fmt.Sprintf("a %s HH aplica %s%%",
			formatHours(tier.DesdeHoras), formatPct(eff)))
	}
	return examples
}
