package services

import (
	"math"
	"testing"
)

func TestCalcRollup(t *testing.T) {
	groups := []BillingGroup{
		{Horas: 16, TarifaHora: 10},
		{Horas: 10, TarifaHora: 12},
	}

	tests := []struct {
		name     string
		adelanto float64
		igvPct   float64
		expect   FinancialRollup
	}{
		{
			name:   "no advance",
			igvPct: 0.18,
			expect: FinancialRollup{Subtotal: 280, Adelanto: 0, Diferencia: 280, IGV: 50.4, Total: 330.4},
		},
		{
			name:     "with advance",
			adelanto: 80,
			igvPct:   0.18,
			expect:   FinancialRollup{Subtotal: 280, Adelanto: 80, Diferencia: 200, IGV: 36, Total: 236},
		},
		{
			name:     "zero vat",
			adelanto: 80,
			expect:   FinancialRollup{Subtotal: 280, Adelanto: 80, Diferencia: 200, IGV: 0, Total: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcRollup(groups, tt.adelanto, tt.igvPct)
			check := func(field string, g, w float64) {
				if math.Abs(g-w) > 0.001 {
					t.Errorf("%s = %v, want %v", field, g, w)
				}
			}
			check("Subtotal", got.Subtotal, tt.expect.Subtotal)
			check("Adelanto", got.Adelanto, tt.expect.Adelanto)
			check("Diferencia", got.Diferencia, tt.expect.Diferencia)
			check("IGV", got.IGV, tt.expect.IGV)
			check("Total", got.Total, tt.expect.Total)
		})
	}
}

func TestCalcRollup_EmptyGroups(t *testing.T) {
	got := CalcRollup(nil, 50, 0.18)
	if got.Subtotal != 0 {
		t.Errorf("Subtotal = %v, want 0", got.Subtotal)
	}
	if math.Abs(got.Total-(-59)) > 0.001 {
		t.Errorf("Total = %v, want -59", got.Total)
	}
}

// total == (subtotal - adelanto) * (1 + igvPct) must hold for any input.
func TestCalcRollup_OrderingInvariant(t *testing.T) {
	groups := []BillingGroup{
		{Horas: 123.45, TarifaHora: 11.3},
		{Horas: 67.8, TarifaHora: 15},
		{Horas: 9.25, TarifaHora: 22.75},
	}

	for _, adelanto := range []float64{0, 100, 1234.56} {
		for _, igv := range []float64{0, 0.18, 0.21} {
			got := CalcRollup(groups, adelanto, igv)
			want := (got.Subtotal - adelanto) * (1 + igv)
			if math.Abs(got.Total-want) > 0.001 {
				t.Errorf("adelanto=%v igv=%v: Total = %v, want %v", adelanto, igv, got.Total, want)
			}
		}
	}
}

func TestGroupCost(t *testing.T) {
	g := BillingGroup{Horas: 16, TarifaHora: 10, CostoLineas: 155}
	if got := GroupCost(g); got != 160 {
		t.Errorf("GroupCost = %v, want 160 (hours x rate, not line-cost sum)", got)
	}
}
