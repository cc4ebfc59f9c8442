package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the clientes, proyectos, recursos,
// tarifas_cliente_recurso, config_descuento_hh, partes_horas and
// valorizaciones collections exist.
func Setup(app *pocketbase.PocketBase) {
	clientes := ensureCollection(app, "clientes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "nombre", Required: true})
		c.Fields.Add(&core.TextField{Name: "ruc", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	proyectos := ensureCollection(app, "proyectos", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "cliente",
			Required:      true,
			CollectionId:  clientes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "codigo", Required: true})
		c.Fields.Add(&core.TextField{Name: "nombre", Required: false})
	})

	recursos := ensureCollection(app, "recursos", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "nombre", Required: true})
		c.Fields.Add(&core.TextField{Name: "puesto", Required: false})
	})

	ensureCollection(app, "tarifas_cliente_recurso", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "cliente",
			Required:      true,
			CollectionId:  clientes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "recurso",
			Required:      true,
			CollectionId:  recursos.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "modalidad",
			Required:  true,
			Values:    []string{"oficina", "campo"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "tarifa_hora", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "moneda",
			Required:  true,
			Values:    []string{"PEN", "USD"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "config_descuento_hh", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "cliente",
			Required:      true,
			CollectionId:  clientes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "desde_horas", Required: true})
		c.Fields.Add(&core.NumberField{Name: "descuento_pct", Required: true})
		c.Fields.Add(&core.NumberField{Name: "orden", Required: true})
	})

	ensureCollection(app, "partes_horas", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proyecto",
			Required:      true,
			CollectionId:  proyectos.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "recurso",
			Required:      true,
			CollectionId:  recursos.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.DateField{Name: "fecha", Required: true})
		c.Fields.Add(&core.TextField{Name: "detalle", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "modalidad",
			Required:  true,
			Values:    []string{"oficina", "campo"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "horas_reportadas", Required: false})
		c.Fields.Add(&core.NumberField{Name: "horas_std", Required: false})
		c.Fields.Add(&core.NumberField{Name: "horas_ot125", Required: false})
		c.Fields.Add(&core.NumberField{Name: "horas_ot135", Required: false})
		c.Fields.Add(&core.NumberField{Name: "horas_ot200", Required: false})
	})

	ensureCollection(app, "valorizaciones", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "cliente",
			Required:      true,
			CollectionId:  clientes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "codigo", Required: true})
		c.Fields.Add(&core.DateField{Name: "periodo_inicio", Required: true})
		c.Fields.Add(&core.DateField{Name: "periodo_fin", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "moneda",
			Required:  true,
			Values:    []string{"PEN", "USD"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "igv_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "adelanto_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "adelanto_monto", Required: false})
		c.Fields.Add(&core.NumberField{Name: "fondo_garantia_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "fondo_garantia_monto", Required: false})
		c.Fields.Add(&core.NumberField{Name: "neto_recibir", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
