package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// tarifaResponse is the JSON shape returned by the tariff endpoints.
type tarifaResponse struct {
	ID         string  `json:"id"`
	Cliente    string  `json:"cliente"`
	Recurso    string  `json:"recurso"`
	Modalidad  string  `json:"modalidad"`
	TarifaHora float64 `json:"tarifa_hora"`
	Moneda     string  `json:"moneda"`
}

// HandleTarifaList returns the tariffs configured for a client as JSON.
func HandleTarifaList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clienteID := e.Request.PathValue("clienteId")
		if clienteID == "" {
			return e.String(http.StatusBadRequest, "Missing client ID")
		}

		if _, err := app.FindRecordById("clientes", clienteID); err != nil {
			return e.String(http.StatusNotFound, "Client not found")
		}

		records, err := app.FindRecordsByFilter("tarifas_cliente_recurso",
			"cliente = {:cliente}", "updated", 0, 0, map[string]any{"cliente": clienteID})
		if err != nil {
			records = nil
		}

		resp := make([]tarifaResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, tarifaResponse{
				ID:         r.Id,
				Cliente:    r.GetString("cliente"),
				Recurso:    r.GetString("recurso"),
				Modalidad:  r.GetString("modalidad"),
				TarifaHora: r.GetFloat("tarifa_hora"),
				Moneda:     r.GetString("moneda"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"tarifas": resp})
	}
}

// HandleTarifaSave creates or updates a tariff for a client/resource/modality.
// When an "id" form value is present the existing record is updated.
func HandleTarifaSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		clienteID := e.Request.PathValue("clienteId")
		recursoID := strings.TrimSpace(e.Request.FormValue("recurso"))
		modalidad := strings.TrimSpace(e.Request.FormValue("modalidad"))
		moneda := strings.TrimSpace(e.Request.FormValue("moneda"))
		tarifaRaw := strings.TrimSpace(e.Request.FormValue("tarifa_hora"))

		if clienteID == "" || recursoID == "" {
			return e.String(http.StatusBadRequest, "Client and resource are required")
		}
		if modalidad != "oficina" && modalidad != "campo" {
			return e.String(http.StatusBadRequest, "Modality must be oficina or campo")
		}

		tarifaHora, err := strconv.ParseFloat(tarifaRaw, 64)
		if err != nil || tarifaHora < 0 {
			return e.String(http.StatusBadRequest, "Invalid hourly rate")
		}
		if moneda == "" {
			moneda = "PEN"
		}

		var record *core.Record
		if id := strings.TrimSpace(e.Request.FormValue("id")); id != "" {
			record, err = app.FindRecordById("tarifas_cliente_recurso", id)
			if err != nil {
				return e.String(http.StatusNotFound, "Tariff not found")
			}
		} else {
			col, err := app.FindCollectionByNameOrId("tarifas_cliente_recurso")
			if err != nil {
				log.Printf("tarifa_save: could not find tarifas collection: %v", err)
				return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record = core.NewRecord(col)
		}

		record.Set("cliente", clienteID)
		record.Set("recurso", recursoID)
		record.Set("modalidad", modalidad)
		record.Set("tarifa_hora", tarifaHora)
		record.Set("moneda", moneda)

		if err := app.Save(record); err != nil {
			log.Printf("tarifa_save: could not save tariff: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, tarifaResponse{
			ID:         record.Id,
			Cliente:    record.GetString("cliente"),
			Recurso:    record.GetString("recurso"),
			Modalidad:  record.GetString("modalidad"),
			TarifaHora: record.GetFloat("tarifa_hora"),
			Moneda:     record.GetString("moneda"),
		})
	}
}

// HandleTarifaDelete removes a tariff record.
func HandleTarifaDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tarifaID := e.Request.PathValue("id")
		if tarifaID == "" {
			return e.String(http.StatusBadRequest, "Missing tariff ID")
		}

		record, err := app.FindRecordById("tarifas_cliente_recurso", tarifaID)
		if err != nil {
			return e.String(http.StatusNotFound, "Tariff not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("tarifa_delete: could not delete tariff: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": tarifaID})
	}
}
