package services

import (
	"fmt"
	"sort"
)

// BillingGroup is the per-(project, resource) aggregate the report is built
// from. Groups live only for the duration of one export run.
type BillingGroup struct {
	ProyectoCodigo string
	RecursoNombre  string
	Modalidad      Modalidad // predominant among the group's lines
	Horas          float64   // summed equivalent hours
	TarifaHora     float64   // single effective rate used by the summary
	Moneda         string
	CostoLineas    float64 // raw sum of per-line costs
	Lineas         []ExportLineaHH
}

// BuildBillingGroups partitions the time-tracking lines into billing groups
// keyed by (project code, resource name). Group order is the order keys are
// first encountered in the input; member lines are sorted by date ascending.
// A line missing its project or resource key cannot be placed into any group
// and aborts the run, since silently dropping it would under-report billed
// hours.
func BuildBillingGroups(lineas []ExportLineaHH, tarifas *TariffTable) ([]BillingGroup, error) {
	type groupKey struct {
		proyecto string
		recurso  string
	}

	index := make(map[groupKey]int)
	var groups []BillingGroup

	for i, l := range lineas {
		if l.ProyectoCodigo == "" || l.RecursoNombre == "" {
			return nil, fmt.Errorf("linea %d (%s): sin proyecto o recurso", i, l.Fecha.Format("2006-01-02"))
		}

		key := groupKey{l.ProyectoCodigo, l.RecursoNombre}
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, BillingGroup{
				ProyectoCodigo: l.ProyectoCodigo,
				RecursoNombre:  l.RecursoNombre,
				Moneda:         l.Moneda,
			})
		}

		g := &groups[gi]
		g.Horas += l.HorasEquivalente
		g.CostoLineas += l.CostoLinea
		g.Lineas = append(g.Lineas, l)
	}

	for i := range groups {
		g := &groups[i]
		g.Modalidad = predominantModalidad(g.Lineas)

		// One effective rate per group, from the tariff for the dominant
		// modality. A group priced mid-period at two rates keeps the first
		// line's rate as fallback; the summary does not reconcile the two.
		if t, ok := tarifas.Resolve(g.RecursoNombre, g.Modalidad); ok {
			g.TarifaHora = t.TarifaHora
			if t.Moneda != "" {
				g.Moneda = t.Moneda
			}
		} else if len(g.Lineas) > 0 {
			g.TarifaHora = g.Lineas[0].TarifaHora
		}

		sort.SliceStable(g.Lineas, func(a, b int) bool {
			return g.Lineas[a].Fecha.Before(g.Lineas[b].Fecha)
		})
	}

	return groups, nil
}

// predominantModalidad picks the modality by majority vote among the lines.
// Ties keep the first line's modality.
func predominantModalidad(lineas []ExportLineaHH) Modalidad {
	if len(lineas) == 0 {
		return ModalidadOficina
	}
	var campo, oficina int
	for _, l := range lineas {
		if l.Modalidad == ModalidadCampo {
			campo++
		} else {
			oficina++
		}
	}
	if campo > oficina {
		return ModalidadCampo
	}
	if oficina > campo {
		return ModalidadOficina
	}
	return lineas[0].Modalidad
}
