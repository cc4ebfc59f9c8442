package services

// FinancialRollup holds the invoice-style totals derived from the billing
// groups. The report writes each figure as a formula over the previous one so
// the document stays recomputable under manual edits.
type FinancialRollup struct {
	Subtotal   float64 // sum of hours x rate across groups
	Adelanto   float64 // advance deduction, taken from the invoice header
	Diferencia float64 // Subtotal - Adelanto
	IGV        float64 // Diferencia * IGVPct
	Total      float64 // Diferencia + IGV
}

// GroupCost is the summary figure for one group: equivalent hours priced at
// the group's single effective rate.
func GroupCost(g BillingGroup) float64 {
	return g.Horas * g.TarifaHora
}

// CalcRollup derives the financial totals from the billing groups and the
// invoice header values. The five steps are ordered; none may be reordered.
func CalcRollup(groups []BillingGroup, adelanto, igvPct float64) FinancialRollup {
	var subtotal float64
	for _, g := range groups {
		subtotal += GroupCost(g)
	}

	diferencia := subtotal - adelanto
	igv := diferencia * igvPct

	return FinancialRollup{
		Subtotal:   subtotal,
		Adelanto:   adelanto,
		Diferencia: diferencia,
		IGV:        igv,
		Total:      diferencia + igv,
	}
}
