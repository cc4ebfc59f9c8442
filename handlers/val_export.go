package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"valorizaciones/services"
)

// buildExportValHH fetches a valorization header plus the client tariffs,
// discount tiers and time entries of its period, returning an ExportValHH
// ready for the exporters.
func buildExportValHH(app *pocketbase.PocketBase, valID string) (services.ExportValHH, error) {
	valRecord, err := app.FindRecordById("valorizaciones", valID)
	if err != nil {
		return services.ExportValHH{}, fmt.Errorf("valorizacion not found: %w", err)
	}

	clienteID := valRecord.GetString("cliente")
	clienteRecord, err := app.FindRecordById("clientes", clienteID)
	if err != nil {
		return services.ExportValHH{}, fmt.Errorf("cliente not found: %w", err)
	}

	periodoInicio := valRecord.GetDateTime("periodo_inicio").Time()
	periodoFin := valRecord.GetDateTime("periodo_fin").Time()

	recursoNames := make(map[string]string)
	recursos, err := app.FindRecordsByFilter("recursos", "1=1", "nombre", 0, 0, nil)
	if err == nil {
		for _, r := range recursos {
			recursoNames[r.Id] = r.GetString("nombre")
		}
	}

	var tarifas []services.TarifaClienteRecurso
	tarifaRecords, err := app.FindRecordsByFilter("tarifas_cliente_recurso",
		"cliente = {:cliente}", "updated", 0, 0, map[string]any{"cliente": clienteID})
	if err == nil {
		for _, tr := range tarifaRecords {
			tarifas = append(tarifas, services.TarifaClienteRecurso{
				Cliente:    clienteRecord.GetString("nombre"),
				Recurso:    recursoNames[tr.GetString("recurso")],
				Modalidad:  services.Modalidad(tr.GetString("modalidad")),
				TarifaHora: tr.GetFloat("tarifa_hora"),
				Moneda:     tr.GetString("moneda"),
			})
		}
	}
	tabla := services.NewTariffTable(tarifas)

	var descuentos []services.ConfigDescuentoHH
	descuentoRecords, err := app.FindRecordsByFilter("config_descuento_hh",
		"cliente = {:cliente}", "orden", 0, 0, map[string]any{"cliente": clienteID})
	if err == nil {
		for _, dr := range descuentoRecords {
			descuentos = append(descuentos, services.ConfigDescuentoHH{
				DesdeHoras:   dr.GetFloat("desde_horas"),
				DescuentoPct: dr.GetFloat("descuento_pct"),
				Orden:        int(dr.GetFloat("orden")),
			})
		}
	}

	proyectos, err := app.FindRecordsByFilter("proyectos",
		"cliente = {:cliente}", "codigo", 0, 0, map[string]any{"cliente": clienteID})
	if err != nil {
		proyectos = nil
	}

	var lineas []services.ExportLineaHH
	var totalReportadas, totalEquivalentes, subtotal float64

	for _, proyecto := range proyectos {
		partes, err := app.FindRecordsByFilter("partes_horas",
			"proyecto = {:proyecto} && fecha >= {:inicio} && fecha <= {:fin}", "fecha", 0, 0,
			map[string]any{
				"proyecto": proyecto.Id,
				"inicio":   valRecord.GetString("periodo_inicio"),
				"fin":      valRecord.GetString("periodo_fin"),
			})
		if err != nil {
			partes = nil
		}

		for _, parte := range partes {
			std := parte.GetFloat("horas_std")
			ot125 := parte.GetFloat("horas_ot125")
			ot135 := parte.GetFloat("horas_ot135")
			ot200 := parte.GetFloat("horas_ot200")

			linea := services.ExportLineaHH{
				ProyectoCodigo:   proyecto.GetString("codigo"),
				RecursoNombre:    recursoNames[parte.GetString("recurso")],
				Fecha:            parte.GetDateTime("fecha").Time(),
				Detalle:          parte.GetString("detalle"),
				Modalidad:        services.Modalidad(parte.GetString("modalidad")),
				HorasReportadas:  parte.GetFloat("horas_reportadas"),
				HorasStd:         std,
				HorasOT125:       ot125,
				HorasOT135:       ot135,
				HorasOT200:       ot200,
				HorasEquivalente: services.EquivalentHours(std, ot125, ot135, ot200),
			}

			if tarifa, ok := tabla.Resolve(linea.RecursoNombre, linea.Modalidad); ok {
				linea.TarifaHora = tarifa.TarifaHora
				linea.Moneda = tarifa.Moneda
				linea.CostoLinea = linea.HorasEquivalente * tarifa.TarifaHora
			}

			totalReportadas += linea.HorasReportadas
			totalEquivalentes += linea.HorasEquivalente
			subtotal += linea.CostoLinea
			lineas = append(lineas, linea)
		}
	}

	descuentoPct := services.CumulativeDiscountPct(totalEquivalentes, descuentos)

	return services.ExportValHH{
		Cliente:                clienteRecord.GetString("nombre"),
		PeriodoInicio:          periodoInicio,
		PeriodoFin:             periodoFin,
		TotalHorasReportadas:   totalReportadas,
		TotalHorasEquivalentes: totalEquivalentes,
		Subtotal:               subtotal,
		DescuentoPct:           descuentoPct,
		DescuentoMonto:         subtotal * descuentoPct,
		Factura: services.CabeceraFactura{
			Codigo:             valRecord.GetString("codigo"),
			Moneda:             valRecord.GetString("moneda"),
			IGVPct:             valRecord.GetFloat("igv_pct"),
			AdelantoPct:        valRecord.GetFloat("adelanto_pct"),
			AdelantoMonto:      valRecord.GetFloat("adelanto_monto"),
			FondoGarantiaPct:   valRecord.GetFloat("fondo_garantia_pct"),
			FondoGarantiaMonto: valRecord.GetFloat("fondo_garantia_monto"),
			NetoRecibir:        valRecord.GetFloat("neto_recibir"),
			Periodo:            services.FormatPeriodo(periodoInicio, periodoFin),
		},
		Lineas:     lineas,
		Tarifas:    tarifas,
		Descuentos: descuentos,
	}, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleValorizationExportExcel returns a handler that generates and downloads
// the Excel report for a valorization.
func HandleValorizationExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		valID := e.Request.PathValue("id")
		if valID == "" {
			return e.String(http.StatusBadRequest, "Missing valorization ID")
		}

		data, err := buildExportValHH(app, valID)
		if err != nil {
			log.Printf("val_export_excel: %v", err)
			return e.String(http.StatusNotFound, "Valorization not found")
		}

		xlsxBytes, err := services.GenerateValorizationExcel(data)
		if err != nil {
			log.Printf("val_export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("VAL_%s_%s.xlsx", sanitizeFilename(data.Factura.Codigo), data.PeriodoFin.Format("200601"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleValorizationExportPDF returns a handler that generates and downloads
// the PDF summary for a valorization.
func HandleValorizationExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		valID := e.Request.PathValue("id")
		if valID == "" {
			return e.String(http.StatusBadRequest, "Missing valorization ID")
		}

		data, err := buildExportValHH(app, valID)
		if err != nil {
			log.Printf("val_export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Valorization not found")
		}

		pdfBytes, err := services.GenerateValorizationPDF(data)
		if err != nil {
			log.Printf("val_export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("VAL_%s_%s.pdf", sanitizeFilename(data.Factura.Codigo), data.PeriodoFin.Format("200601"))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
