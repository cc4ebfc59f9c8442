package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type tarifaDef struct {
	recurso    string
	modalidad  string
	tarifaHora float64
	moneda     string
}

type descuentoDef struct {
	desdeHoras   float64
	descuentoPct float64
	orden        int
}

type parteDef struct {
	proyecto   string
	recurso    string
	fecha      string
	detalle    string
	modalidad  string
	horasStd   float64
	horasOT125 float64
	horasOT135 float64
	horasOT200 float64
}

var seedTarifas = []tarifaDef{
	{"Ana Ruiz", "oficina", 10, "USD"},
	{"Ana Ruiz", "campo", 14, "USD"},
	{"Luis Paredes", "campo", 12, "USD"},
	{"Carla Vega", "oficina", 9, "USD"},
}

var seedDescuentos = []descuentoDef{
	{100, 0.10, 1},
	{200, 0.05, 2},
	{500, 0.025, 3},
}

var seedPartes = []parteDef{
	{"P1", "Ana Ruiz", "2024-01-02", "Supervisión de obra", "oficina", 8, 0, 0, 0},
	{"P1", "Ana Ruiz", "2024-01-03", "Revisión de planos", "oficina", 8, 2, 0, 0},
	{"P1", "Luis Paredes", "2024-01-03", "Montaje en planta", "campo", 8, 0, 2, 0},
	{"P2", "Luis Paredes", "2024-01-07", "Inspección domingo", "campo", 0, 0, 0, 6},
	{"P2", "Carla Vega", "2024-01-08", "Informe semanal", "oficina", 8, 0, 0, 0},
}

// Seed inserts a demo client with projects, resources, tariffs, discount
// tiers, time entries and one valorization. It is a no-op when the clientes
// collection already has records.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.FindRecordsByFilter("clientes", "1=1", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	clientesCol, err := app.FindCollectionByNameOrId("clientes")
	if err != nil {
		return fmt.Errorf("clientes collection not found: %w", err)
	}
	cliente := core.NewRecord(clientesCol)
	cliente.Set("nombre", "Minera Andina")
	cliente.Set("ruc", "20481123456")
	if err := app.Save(cliente); err != nil {
		return fmt.Errorf("seed cliente: %w", err)
	}

	proyectosCol, err := app.FindCollectionByNameOrId("proyectos")
	if err != nil {
		return fmt.Errorf("proyectos collection not found: %w", err)
	}
	proyectoIDs := make(map[string]string)
	for _, p := range []struct{ codigo, nombre string }{
		{"P1", "Ampliación planta concentradora"},
		{"P2", "Mantenimiento línea norte"},
	} {
		rec := core.NewRecord(proyectosCol)
		rec.Set("cliente", cliente.Id)
		rec.Set("codigo", p.codigo)
		rec.Set("nombre", p.nombre)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed proyecto %s: %w", p.codigo, err)
		}
		proyectoIDs[p.codigo] = rec.Id
	}

	recursosCol, err := app.FindCollectionByNameOrId("recursos")
	if err != nil {
		return fmt.Errorf("recursos collection not found: %w", err)
	}
	recursoIDs := make(map[string]string)
	for _, nombre := range []string{"Ana Ruiz", "Luis Paredes", "Carla Vega"} {
		rec := core.NewRecord(recursosCol)
		rec.Set("nombre", nombre)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed recurso %s: %w", nombre, err)
		}
		recursoIDs[nombre] = rec.Id
	}

	tarifasCol, err := app.FindCollectionByNameOrId("tarifas_cliente_recurso")
	if err != nil {
		return fmt.Errorf("tarifas collection not found: %w", err)
	}
	for _, t := range seedTarifas {
		rec := core.NewRecord(tarifasCol)
		rec.Set("cliente", cliente.Id)
		rec.Set("recurso", recursoIDs[t.recurso])
		rec.Set("modalidad", t.modalidad)
		rec.Set("tarifa_hora", t.tarifaHora)
		rec.Set("moneda", t.moneda)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed tarifa %s/%s: %w", t.recurso, t.modalidad, err)
		}
	}

	descuentosCol, err := app.FindCollectionByNameOrId("config_descuento_hh")
	if err != nil {
		return fmt.Errorf("descuentos collection not found: %w", err)
	}
	for _, d := range seedDescuentos {
		rec := core.NewRecord(descuentosCol)
		rec.Set("cliente", cliente.Id)
		rec.Set("desde_horas", d.desdeHoras)
		rec.Set("descuento_pct", d.descuentoPct)
		rec.Set("orden", d.orden)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed descuento %v: %w", d.desdeHoras, err)
		}
	}

	partesCol, err := app.FindCollectionByNameOrId("partes_horas")
	if err != nil {
		return fmt.Errorf("partes collection not found: %w", err)
	}
	for i, p := range seedPartes {
		rec := core.NewRecord(partesCol)
		rec.Set("proyecto", proyectoIDs[p.proyecto])
		rec.Set("recurso", recursoIDs[p.recurso])
		rec.Set("fecha", p.fecha+" 00:00:00.000Z")
		rec.Set("detalle", p.detalle)
		rec.Set("modalidad", p.modalidad)
		rec.Set("horas_reportadas", p.horasStd+p.horasOT125+p.horasOT135+p.horasOT200)
		rec.Set("horas_std", p.horasStd)
		rec.Set("horas_ot125", p.horasOT125)
		rec.Set("horas_ot135", p.horasOT135)
		rec.Set("horas_ot200", p.horasOT200)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed parte %d: %w", i, err)
		}
	}

	valCol, err := app.FindCollectionByNameOrId("valorizaciones")
	if err != nil {
		return fmt.Errorf("valorizaciones collection not found: %w", err)
	}
	val := core.NewRecord(valCol)
	val.Set("cliente", cliente.Id)
	val.Set("codigo", "VAL-2024-001")
	val.Set("periodo_inicio", "2024-01-01 00:00:00.000Z")
	val.Set("periodo_fin", "2024-01-31 00:00:00.000Z")
	val.Set("moneda", "USD")
	val.Set("igv_pct", 0.18)
	val.Set("adelanto_pct", 0)
	val.Set("adelanto_monto", 0)
	if err := app.Save(val); err != nil {
		return fmt.Errorf("seed valorizacion: %w", err)
	}

	fmt.Println("Seeded demo client, projects, resources, tariffs and time entries")
	return nil
}
