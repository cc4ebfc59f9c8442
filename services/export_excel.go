package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Fixed sheet names of the valorization workbook. Detail sheets are named
// per group, see DetailSheetName.
const (
	SheetResumen = "Resumen"
	SheetCostoHH = "Costo HH"
)

// Fixed boilerplate shown on the Costo HH sheet.
var costoHHNotas = []string{
	"Jornada estándar: 48 horas semanales.",
	"Sobretiempo legal: 25% las dos primeras horas, 35% las horas siguientes, 100% domingos y feriados.",
}

// valStyles holds the style ids shared by all sheets of one workbook.
type valStyles struct {
	title     int
	subtitle  int
	header    int
	data      int
	dataAlt   int
	hours     int
	hoursAlt  int
	money     int
	moneyAlt  int
	hoursFine int
	total     int
	totalVal  int
	note      int
}

// GenerateValorizationExcel serializes a valorization request into the
// multi-sheet billing workbook consumed by finance: a summary sheet, one
// detail sheet per (project, resource) billing group and the Costo HH
// reference sheet. Missing tariffs and empty discount configuration degrade
// to blank cells; a line without its grouping key aborts the run.
func GenerateValorizationExcel(data ExportValHH) ([]byte, error) {
	tarifas := NewTariffTable(data.Tarifas)

	groups, err := BuildBillingGroups(data.Lineas, tarifas)
	if err != nil {
		return nil, fmt.Errorf("build billing groups: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename default sheet to the summary.
	if err := f.SetSheetName(f.GetSheetName(0), SheetResumen); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	styles, err := newValStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeResumenSheet(f, styles, data, groups); err != nil {
		return nil, fmt.Errorf("resumen sheet: %w", err)
	}

	// Detail sheets, one per group, collision-safe names.
	taken := map[string]bool{SheetResumen: true, SheetCostoHH: true}
	for _, g := range groups {
		name := DetailSheetName(g.ProyectoCodigo, data.PeriodoFin, g.RecursoNombre, taken)
		taken[name] = true
		if err := writeDetailSheet(f, styles, name, g); err != nil {
			return nil, fmt.Errorf("detail sheet %q: %w", name, err)
		}
	}

	if err := writeCostoHHSheet(f, styles, data, tarifas); err != nil {
		return nil, fmt.Errorf("costo hh sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func newValStyles(f *excelize.File) (valStyles, error) {
	var s valStyles
	var err error

	altFill := excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1}
	hoursFmt := "0.00"
	moneyFmt := "#,##0.00"
	fineFmt := "0.0000"

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	}); err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	if s.data, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create data style: %w", err)
	}

	if s.dataAlt, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Fill:   altFill,
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create alt data style: %w", err)
	}

	if s.hours, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &hoursFmt,
	}); err != nil {
		return s, fmt.Errorf("create hours style: %w", err)
	}

	if s.hoursAlt, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Fill:         altFill,
		Border:       thinBorders(),
		CustomNumFmt: &hoursFmt,
	}); err != nil {
		return s, fmt.Errorf("create alt hours style: %w", err)
	}

	if s.money, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &moneyFmt,
	}); err != nil {
		return s, fmt.Errorf("create money style: %w", err)
	}

	if s.moneyAlt, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Fill:         altFill,
		Border:       thinBorders(),
		CustomNumFmt: &moneyFmt,
	}); err != nil {
		return s, fmt.Errorf("create alt money style: %w", err)
	}

	if s.hoursFine, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &fineFmt,
	}); err != nil {
		return s, fmt.Errorf("create fine hours style: %w", err)
	}

	if s.total, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create total style: %w", err)
	}

	if s.totalVal, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 10},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Border:       thinBorders(),
		CustomNumFmt: &moneyFmt,
	}); err != nil {
		return s, fmt.Errorf("create total value style: %w", err)
	}

	if s.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 9, Italic: true},
	}); err != nil {
		return s, fmt.Errorf("create note style: %w", err)
	}

	return s, nil
}

// writeResumenSheet lays out the summary: title block, one row per billing
// group and the chained rollup footer. Costo and Total are formulas so the
// workbook recomputes when finance edits an upstream cell.
func writeResumenSheet(f *excelize.File, styles valStyles, data ExportValHH, groups []BillingGroup) error {
	sheet := SheetResumen
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}
	lastCol := "K"

	widths := []float64{6, 14, 28, 12, 10, 10, 14, 9, 9, 9, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Title block (rows 1-3) ──────────────────────────────────────────

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "VALORIZACIÓN HH - "+sanitizeExcelCell(data.Cliente))
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return fmt.Errorf("merge period: %w", err)
	}
	f.SetCellValue(sheet, "A2", "Periodo: "+FormatPeriodo(data.PeriodoInicio, data.PeriodoFin))
	f.SetCellStyle(sheet, "A2", lastCol+"2", styles.subtitle)

	if data.Factura.Codigo != "" {
		if err := f.MergeCell(sheet, "A3", lastCol+"3"); err != nil {
			return fmt.Errorf("merge factura: %w", err)
		}
		f.SetCellValue(sheet, "A3", "Factura: "+sanitizeExcelCell(data.Factura.Codigo))
		f.SetCellStyle(sheet, "A3", lastCol+"3", styles.subtitle)
	}

	// ── Row 5: headers ──────────────────────────────────────────────────

	headers := []string{"Item", "Proyecto", "Recurso", "Fecha", "HH", "Tarifa", "Costo", "Dscto 1", "Dscto 2", "Dscto 3", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheet, "A5", lastCol+"5", styles.header)

	// ── Data rows (from row 6), one per group in insertion order ────────

	row := 6
	for i, g := range groups {
		r := fmt.Sprintf("%d", row)

		f.SetCellValue(sheet, "A"+r, i+1)
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(g.ProyectoCodigo))
		f.SetCellValue(sheet, "C"+r, sanitizeExcelCell(g.RecursoNombre))
		f.SetCellValue(sheet, "D"+r, data.PeriodoFin.Format("02/01/2006"))
		f.SetCellValue(sheet, "E"+r, g.Horas)
		f.SetCellValue(sheet, "F"+r, g.TarifaHora)
		if err := f.SetCellFormula(sheet, "G"+r, fmt.Sprintf("E%d*F%d", row, row)); err != nil {
			return fmt.Errorf("costo formula row %d: %w", row, err)
		}

		// Discount columns are reserved but not wired to the cumulative
		// discount resolver; finance fills them by hand when negotiated.
		f.SetCellValue(sheet, "H"+r, 0)
		f.SetCellValue(sheet, "I"+r, 0)
		f.SetCellValue(sheet, "J"+r, 0)

		if err := f.SetCellFormula(sheet, "K"+r, fmt.Sprintf("G%d-H%d-I%d-J%d", row, row, row, row)); err != nil {
			return fmt.Errorf("total formula row %d: %w", row, err)
		}

		dataStyle, hoursStyle, moneyStyle := styles.data, styles.hours, styles.money
		if i%2 == 1 {
			dataStyle, hoursStyle, moneyStyle = styles.dataAlt, styles.hoursAlt, styles.moneyAlt
		}
		f.SetCellStyle(sheet, "A"+r, "D"+r, dataStyle)
		f.SetCellStyle(sheet, "E"+r, "E"+r, hoursStyle)
		f.SetCellStyle(sheet, "F"+r, lastCol+r, moneyStyle)

		row++
	}

	firstDataRow, lastDataRow := 6, row-1

	// ── Rollup footer: each step a formula over the previous one ────────

	writeFooter := func(label string, set func(cell string) error) error {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "F"+r, label)
		f.SetCellStyle(sheet, "F"+r, "J"+r, styles.total)
		if err := set("K" + r); err != nil {
			return err
		}
		f.SetCellStyle(sheet, "K"+r, "K"+r, styles.totalVal)
		row++
		return nil
	}

	subtotalRow := row
	if err := writeFooter("SUBTOTAL", func(cell string) error {
		if lastDataRow < firstDataRow {
			f.SetCellValue(sheet, cell, 0)
			return nil
		}
		return f.SetCellFormula(sheet, cell, fmt.Sprintf("SUM(K%d:K%d)", firstDataRow, lastDataRow))
	}); err != nil {
		return fmt.Errorf("subtotal: %w", err)
	}

	adelantoRow := row
	if err := writeFooter("ADELANTO", func(cell string) error {
		f.SetCellValue(sheet, cell, data.Factura.AdelantoMonto)
		return nil
	}); err != nil {
		return fmt.Errorf("adelanto: %w", err)
	}

	diferenciaRow := row
	if err := writeFooter("DIFERENCIA", func(cell string) error {
		return f.SetCellFormula(sheet, cell, fmt.Sprintf("K%d-K%d", subtotalRow, adelantoRow))
	}); err != nil {
		return fmt.Errorf("diferencia: %w", err)
	}

	igvRow := row
	igvLabel := fmt.Sprintf("IGV (%s%%)", formatPct(data.Factura.IGVPct))
	if err := writeFooter(igvLabel, func(cell string) error {
		return f.SetCellFormula(sheet, cell, fmt.Sprintf("K%d*%v", diferenciaRow, data.Factura.IGVPct))
	}); err != nil {
		return fmt.Errorf("igv: %w", err)
	}

	if err := writeFooter("TOTAL", func(cell string) error {
		return f.SetCellFormula(sheet, cell, fmt.Sprintf("K%d+K%d", diferenciaRow, igvRow))
	}); err != nil {
		return fmt.Errorf("total: %w", err)
	}

	return nil
}

// writeDetailSheet lays out one billing group: a row per time-tracking line
// with a live equivalent-hours formula and a TOTAL HH footer.
func writeDetailSheet(f *excelize.File, styles valStyles, sheet string, g BillingGroup) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	lastCol := "H"
	widths := []float64{12, 40, 11, 9, 9, 9, 9, 11}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// Sheet title states the group's predominant modality.
	title := "HORAS OFICINA"
	if g.Modalidad == ModalidadCampo {
		title = "HORAS CAMPO"
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", title)
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return fmt.Errorf("merge subtitle: %w", err)
	}
	f.SetCellValue(sheet, "A2", sanitizeExcelCell(g.ProyectoCodigo)+" - "+sanitizeExcelCell(g.RecursoNombre))
	f.SetCellStyle(sheet, "A2", lastCol+"2", styles.subtitle)

	headers := []string{"Fecha", "Detalle", "HH Report.", "HH Std", "HH 25%", "HH 35%", "HH 100%", "HH Equiv"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s4", columns[i]), h)
	}
	f.SetCellStyle(sheet, "A4", lastCol+"4", styles.header)

	row := 5
	for i, l := range g.Lineas {
		r := fmt.Sprintf("%d", row)

		f.SetCellValue(sheet, "A"+r, l.Fecha.Format("02/01/2006"))
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(l.Detalle))
		f.SetCellValue(sheet, "C"+r, l.HorasReportadas)
		f.SetCellValue(sheet, "D"+r, l.HorasStd)
		f.SetCellValue(sheet, "E"+r, l.HorasOT125)
		f.SetCellValue(sheet, "F"+r, l.HorasOT135)
		f.SetCellValue(sheet, "G"+r, l.HorasOT200)

		// Live recomputation so manual edits stay internally consistent.
		formula := fmt.Sprintf("D%d+E%d*1.25+F%d*1.35+G%d*2", row, row, row, row)
		if err := f.SetCellFormula(sheet, "H"+r, formula); err != nil {
			return fmt.Errorf("equiv formula row %d: %w", row, err)
		}

		dataStyle, hoursStyle := styles.data, styles.hours
		if i%2 == 1 {
			dataStyle, hoursStyle = styles.dataAlt, styles.hoursAlt
		}
		f.SetCellStyle(sheet, "A"+r, "B"+r, dataStyle)
		f.SetCellStyle(sheet, "C"+r, "G"+r, hoursStyle)
		f.SetCellStyle(sheet, "H"+r, "H"+r, styles.hoursFine)

		row++
	}

	// TOTAL HH footer summing the equivalent-hours column.
	r := fmt.Sprintf("%d", row)
	f.SetCellValue(sheet, "G"+r, "TOTAL HH")
	f.SetCellStyle(sheet, "G"+r, "G"+r, styles.total)
	if row > 5 {
		if err := f.SetCellFormula(sheet, "H"+r, fmt.Sprintf("SUM(H5:H%d)", row-1)); err != nil {
			return fmt.Errorf("total hh formula: %w", err)
		}
	} else {
		f.SetCellValue(sheet, "H"+r, 0)
	}
	f.SetCellStyle(sheet, "H"+r, "H"+r, styles.totalVal)

	return nil
}

// writeCostoHHSheet lays out the reference sheet: per-resource office and
// field rates side by side, the fixed labor-policy notes and the discount
// tiers rendered as text. Unresolved tariffs stay blank; an empty tier list
// omits the discount section.
func writeCostoHHSheet(f *excelize.File, styles valStyles, data ExportValHH, tarifas *TariffTable) error {
	sheet := SheetCostoHH
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	widths := []float64{30, 12, 12}
	for i, col := range []string{"A", "B", "C"} {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	if err := f.MergeCell(sheet, "A1", "C1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Costo HH - "+sanitizeExcelCell(data.Cliente))
	f.SetCellStyle(sheet, "A1", "C1", styles.title)

	headers := []string{"Recurso", "Oficina", "Campo"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s3", string(rune('A'+i))), h)
	}
	f.SetCellStyle(sheet, "A3", "C3", styles.header)

	row := 4
	for _, recurso := range tarifas.Resources(data.Lineas) {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(recurso))
		if t, ok := tarifas.Resolve(recurso, ModalidadOficina); ok {
			f.SetCellValue(sheet, "B"+r, t.TarifaHora)
		}
		if t, ok := tarifas.Resolve(recurso, ModalidadCampo); ok {
			f.SetCellValue(sheet, "C"+r, t.TarifaHora)
		}
		f.SetCellStyle(sheet, "A"+r, "A"+r, styles.data)
		f.SetCellStyle(sheet, "B"+r, "C"+r, styles.money)
		row++
	}

	row++
	for _, nota := range costoHHNotas {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), nota)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.note)
		row++
	}

	if len(data.Descuentos) > 0 {
		row++
		for _, desc := range DescribeTiers(data.Descuentos) {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), desc)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.note)
			row++
		}
	}

	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
