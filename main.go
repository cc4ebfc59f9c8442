package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"valorizaciones/collections"
	"valorizaciones/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Client tariffs ───────────────────────────────────────
		se.Router.GET("/clientes/{clienteId}/tarifas", handlers.HandleTarifaList(app))
		se.Router.POST("/clientes/{clienteId}/tarifas", handlers.HandleTarifaSave(app))
		se.Router.DELETE("/tarifas/{id}", handlers.HandleTarifaDelete(app))

		// ── Cumulative discount configuration ────────────────────
		se.Router.GET("/clientes/{clienteId}/descuentos", handlers.HandleDescuentoConfig(app))
		se.Router.POST("/clientes/{clienteId}/descuentos", handlers.HandleDescuentoSave(app))

		// ── Valorization export ──────────────────────────────────
		se.Router.GET("/valorizaciones/{id}/export/excel", handlers.HandleValorizationExportExcel(app))
		se.Router.GET("/valorizaciones/{id}/export/pdf", handlers.HandleValorizationExportPDF(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
