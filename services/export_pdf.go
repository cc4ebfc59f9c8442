package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateValorizationPDF creates the one-page valorization summary PDF using
// maroto/v2: the billing groups table plus the financial rollup. The xlsx
// report remains the document of record; the PDF is the review copy.
func GenerateValorizationPDF(data ExportValHH) ([]byte, error) {
	tarifas := NewTariffTable(data.Tarifas)
	groups, err := BuildBillingGroups(data.Lineas, tarifas)
	if err != nil {
		return nil, fmt.Errorf("build billing groups: %w", err)
	}
	rollup := CalcRollup(groups, data.Factura.AdelantoMonto, data.Factura.IGVPct)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, data)
	addPDFTableHeader(m)
	for i, g := range groups {
		addPDFGroupRow(m, i+1, g, data)
	}
	addPDFRollup(m, rollup, data.Factura.Moneda)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, data ExportValHH) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("VALORIZACIÓN HH - "+data.Cliente, props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New("Periodo: "+FormatPeriodo(data.PeriodoInicio, data.PeriodoFin), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New("Factura: "+data.Factura.Codigo, props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addPDFTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Proyecto", headerTextLeft)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Recurso", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("HH", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Tarifa", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Costo", headerText)).WithStyle(&headerCell),
		),
	)
}

func addPDFGroupRow(m core.Maroto, item int, g BillingGroup, data ExportValHH) {
	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	var cellStyle *props.Cell
	if item%2 == 0 {
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	colItem := col.New(1).Add(text.New(fmt.Sprintf("%d", item), baseText))
	colProyecto := col.New(2).Add(text.New(g.ProyectoCodigo, leftText))
	colRecurso := col.New(4).Add(text.New(g.RecursoNombre, leftText))
	colHoras := col.New(1).Add(text.New(formatHours(g.Horas), rightText))
	colTarifa := col.New(2).Add(text.New(FormatMoney(g.TarifaHora, g.Moneda), rightText))
	colCosto := col.New(2).Add(text.New(FormatMoney(GroupCost(g), g.Moneda), rightText))

	if cellStyle != nil {
		colItem = colItem.WithStyle(cellStyle)
		colProyecto = colProyecto.WithStyle(cellStyle)
		colRecurso = colRecurso.WithStyle(cellStyle)
		colHoras = colHoras.WithStyle(cellStyle)
		colTarifa = colTarifa.WithStyle(cellStyle)
		colCosto = colCosto.WithStyle(cellStyle)
	}

	m.AddRows(row.New(7).Add(colItem, colProyecto, colRecurso, colHoras, colTarifa, colCosto))
}

func addPDFRollup(m core.Maroto, rollup FinancialRollup, moneda string) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := labelStyle

	addLine := func(label string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatMoney(amount, moneda), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	addLine("Subtotal", rollup.Subtotal)
	addLine("Adelanto", rollup.Adelanto)
	addLine("Diferencia", rollup.Diferencia)
	addLine("IGV", rollup.IGV)
	addLine("Total", rollup.Total)
}
