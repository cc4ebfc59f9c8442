package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"valorizaciones/services"
)

// descuentoResponse is the JSON shape returned by the discount endpoints.
type descuentoResponse struct {
	ID           string  `json:"id"`
	DesdeHoras   float64 `json:"desde_horas"`
	DescuentoPct float64 `json:"descuento_pct"`
	Orden        int     `json:"orden"`
}

func loadClientTiers(app *pocketbase.PocketBase, clienteID string) ([]*core.Record, []services.ConfigDescuentoHH) {
	records, err := app.FindRecordsByFilter("config_descuento_hh",
		"cliente = {:cliente}", "orden", 0, 0, map[string]any{"cliente": clienteID})
	if err != nil {
		records = nil
	}

	tiers := make([]services.ConfigDescuentoHH, 0, len(records))
	for _, r := range records {
		tiers = append(tiers, services.ConfigDescuentoHH{
			DesdeHoras:   r.GetFloat("desde_horas"),
			DescuentoPct: r.GetFloat("descuento_pct"),
			Orden:        int(r.GetFloat("orden")),
		})
	}
	return records, tiers
}

// HandleDescuentoConfig returns the discount tiers of a client together with a
// human readable description and worked examples of the cumulative scheme.
func HandleDescuentoConfig(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clienteID := e.Request.PathValue("clienteId")
		if clienteID == "" {
			return e.String(http.StatusBadRequest, "Missing client ID")
		}

		if _, err := app.FindRecordById("clientes", clienteID); err != nil {
			return e.String(http.StatusNotFound, "Client not found")
		}

		records, tiers := loadClientTiers(app, clienteID)

		resp := make([]descuentoResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, descuentoResponse{
				ID:           r.Id,
				DesdeHoras:   r.GetFloat("desde_horas"),
				DescuentoPct: r.GetFloat("descuento_pct"),
				Orden:        int(r.GetFloat("orden")),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"tramos":      resp,
			"descripcion": services.DescribeTiers(tiers),
			"ejemplos":    services.DiscountExamples(tiers),
		})
	}
}

// HandleDescuentoSave replaces the full discount tier set of a client. The
// form carries parallel desde_horas and descuento_pct values; tier order
// follows their position in the form.
func HandleDescuentoSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		clienteID := e.Request.PathValue("clienteId")
		if clienteID == "" {
			return e.String(http.StatusBadRequest, "Missing client ID")
		}
		if _, err := app.FindRecordById("clientes", clienteID); err != nil {
			return e.String(http.StatusNotFound, "Client not found")
		}

		horasVals := e.Request.PostForm["desde_horas"]
		pctVals := e.Request.PostForm["descuento_pct"]
		if len(horasVals) != len(pctVals) {
			return e.String(http.StatusBadRequest, "Mismatched tier values")
		}

		type tierInput struct {
			desdeHoras   float64
			descuentoPct float64
		}
		inputs := make([]tierInput, 0, len(horasVals))
		for i := range horasVals {
			desde, err := strconv.ParseFloat(strings.TrimSpace(horasVals[i]), 64)
			if err != nil || desde < 0 {
				return e.String(http.StatusBadRequest, "Invalid hours threshold")
			}
			pct, err := strconv.ParseFloat(strings.TrimSpace(pctVals[i]), 64)
			if err != nil || pct < 0 || pct > 1 {
				return e.String(http.StatusBadRequest, "Discount must be between 0 and 1")
			}
			inputs = append(inputs, tierInput{desdeHoras: desde, descuentoPct: pct})
		}

		existing, _ := loadClientTiers(app, clienteID)
		for _, r := range existing {
			if err := app.Delete(r); err != nil {
				log.Printf("descuento_save: could not delete tier %s: %v", r.Id, err)
				return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		col, err := app.FindCollectionByNameOrId("config_descuento_hh")
		if err != nil {
			log.Printf("descuento_save: could not find config_descuento_hh collection: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		tiers := make([]services.ConfigDescuentoHH, 0, len(inputs))
		for i, in := range inputs {
			record := core.NewRecord(col)
			record.Set("cliente", clienteID)
			record.Set("desde_horas", in.desdeHoras)
			record.Set("descuento_pct", in.descuentoPct)
			record.Set("orden", i+1)
			if err := app.Save(record); err != nil {
				log.Printf("descuento_save: could not save tier: %v", err)
				return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			tiers = append(tiers, services.ConfigDescuentoHH{
				DesdeHoras:   in.desdeHoras,
				DescuentoPct: in.descuentoPct,
				Orden:        i + 1,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"tramos":      len(tiers),
			"descripcion": services.DescribeTiers(tiers),
			"ejemplos":    services.DiscountExamples(tiers),
		})
	}
}
