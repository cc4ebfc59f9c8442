// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"valorizaciones/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCliente creates a client record with the given name and returns it.
func CreateTestCliente(t *testing.T, app *pocketbase.PocketBase, nombre string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("clientes")
	if err != nil {
		t.Fatalf("failed to find clientes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("nombre", nombre)
	record.Set("ruc", "20481123456")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test cliente: %v", err)
	}

	return record
}

// CreateTestProyecto creates a project record linked to a client and returns it.
func CreateTestProyecto(t *testing.T, app *pocketbase.PocketBase, clienteID, codigo, nombre string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("proyectos")
	if err != nil {
		t.Fatalf("failed to find proyectos collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("cliente", clienteID)
	record.Set("codigo", codigo)
	record.Set("nombre", nombre)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test proyecto: %v", err)
	}

	return record
}

// CreateTestRecurso creates a resource record with the given name and returns it.
func CreateTestRecurso(t *testing.T, app *pocketbase.PocketBase, nombre string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("recursos")
	if err != nil {
		t.Fatalf("failed to find recursos collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("nombre", nombre)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test recurso: %v", err)
	}

	return record
}

// CreateTestTarifa creates a tariff record for a client/resource/modality.
func CreateTestTarifa(t *testing.T, app *pocketbase.PocketBase, clienteID, recursoID, modalidad string, tarifaHora float64, moneda string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tarifas_cliente_recurso")
	if err != nil {
		t.Fatalf("failed to find tarifas collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("cliente", clienteID)
	record.Set("recurso", recursoID)
	record.Set("modalidad", modalidad)
	record.Set("tarifa_hora", tarifaHora)
	record.Set("moneda", moneda)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tarifa: %v", err)
	}

	return record
}

// CreateTestDescuento creates a cumulative discount tier record for a client.
func CreateTestDescuento(t *testing.T, app *pocketbase.PocketBase, clienteID string, desdeHoras, descuentoPct float64, orden int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("config_descuento_hh")
	if err != nil {
		t.Fatalf("failed to find config_descuento_hh collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("cliente", clienteID)
	record.Set("desde_horas", desdeHoras)
	record.Set("descuento_pct", descuentoPct)
	record.Set("orden", orden)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test descuento: %v", err)
	}

	return record
}

// CreateTestParte creates a time entry record for a project/resource.
func CreateTestParte(t *testing.T, app *pocketbase.PocketBase, proyectoID, recursoID, fecha, modalidad string, horasStd, ot125, ot135, ot200 float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("partes_horas")
	if err != nil {
		t.Fatalf("failed to find partes_horas collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("proyecto", proyectoID)
	record.Set("recurso", recursoID)
	record.Set("fecha", fecha)
	record.Set("detalle", "Trabajo de prueba")
	record.Set("modalidad", modalidad)
	record.Set("horas_reportadas", horasStd+ot125+ot135+ot200)
	record.Set("horas_std", horasStd)
	record.Set("horas_ot125", ot125)
	record.Set("horas_ot135", ot135)
	record.Set("horas_ot200", ot200)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test parte: %v", err)
	}

	return record
}

// CreateTestValorizacion creates a valorization header record for a client.
func CreateTestValorizacion(t *testing.T, app *pocketbase.PocketBase, clienteID, codigo, periodoInicio, periodoFin string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("valorizaciones")
	if err != nil {
		t.Fatalf("failed to find valorizaciones collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("cliente", clienteID)
	record.Set("codigo", codigo)
	record.Set("periodo_inicio", periodoInicio)
	record.Set("periodo_fin", periodoFin)
	record.Set("moneda", "USD")
	record.Set("igv_pct", 0.18)
	record.Set("adelanto_pct", 0)
	record.Set("adelanto_monto", 0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test valorizacion: %v", err)
	}

	return record
}
