package services

import (
	"fmt"
	"strings"
	"time"
)

// maxSheetNameLen is the xlsx sheet-name length ceiling.
const maxSheetNameLen = 31

// DetailSheetName derives the deterministic name of a group's detail sheet:
// project code, compact period-end date and the resource's surname, truncated
// to the platform ceiling. When the candidate collides with an already taken
// name, a numeric suffix is appended and the base re-truncated until unique.
func DetailSheetName(proyectoCodigo string, periodoFin time.Time, recursoNombre string, taken map[string]bool) string {
	base := fmt.Sprintf("%s %s %s", proyectoCodigo, periodoFin.Format("020106"), surname(recursoNombre))
	base = strings.TrimSpace(base)

	name := truncateSheetName(base, maxSheetNameLen)
	for n := 2; taken[name]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		name = truncateSheetName(base, maxSheetNameLen-len(suffix)) + suffix
	}
	return name
}

// surname returns the last whitespace-delimited token of a full name.
func surname(nombre string) string {
	fields := strings.Fields(nombre)
	if len(fields) == 0 {
		return nombre
	}
	return fields[len(fields)-1]
}

func truncateSheetName(s string, max int) string {
	if len(s) > max {
		return strings.TrimSpace(s[:max])
	}
	return s
}
