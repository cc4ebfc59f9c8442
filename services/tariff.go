package services

import "sort"

// tariffKey identifies a tariff row inside a client's table.
type tariffKey struct {
	recurso   string
	modalidad Modalidad
}

// TariffTable resolves (resource, modality) pairs to configured hourly rates.
// When the source list carries duplicates for a pair, the latest entry wins.
type TariffTable struct {
	entries map[tariffKey]TarifaClienteRecurso
}

// NewTariffTable builds a resolver from a client's tariff rows.
func NewTariffTable(tarifas []TarifaClienteRecurso) *TariffTable {
	entries := make(map[tariffKey]TarifaClienteRecurso, len(tarifas))
	for _, t := range tarifas {
		entries[tariffKey{t.Recurso, t.Modalidad}] = t
	}
	return &TariffTable{entries: entries}
}

// Resolve returns the tariff configured for a resource under a modality.
// A missing tariff is not an error: the report renders a blank cell instead,
// so partially configured clients still get a report.
func (tt *TariffTable) Resolve(recurso string, modalidad Modalidad) (TarifaClienteRecurso, bool) {
	t, ok := tt.entries[tariffKey{recurso, modalidad}]
	return t, ok
}

// Resources returns the distinct resource names to list on the reference
// sheet: first the resources in line order (so the sheet matches the report
// body), then any tariff-only resources sorted by name.
func (tt *TariffTable) Resources(lineas []ExportLineaHH) []string {
	seen := make(map[string]bool)
	var names []string
	for _, l := range lineas {
		if l.RecursoNombre != "" && !seen[l.RecursoNombre] {
			seen[l.RecursoNombre] = true
			names = append(names, l.RecursoNombre)
		}
	}

	var rest []string
	for k := range tt.entries {
		if !seen[k.recurso] {
			seen[k.recurso] = true
			rest = append(rest, k.recurso)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
