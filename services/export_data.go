package services

import "time"

// Modalidad is the billing context of a resource. Each modality carries its
// own hourly tariff.
type Modalidad string

const (
	ModalidadOficina Modalidad = "oficina"
	ModalidadCampo   Modalidad = "campo"
)

// TarifaClienteRecurso is one row of a client's tariff table: the hourly rate
// billed for a resource under a given modality.
type TarifaClienteRecurso struct {
	Cliente    string
	Recurso    string // resource full name
	Modalidad  Modalidad
	TarifaHora float64
	Moneda     string
}

// ConfigDescuentoHH is one cumulative volume-discount tier. Tiers are
// meaningful sorted ascending by DesdeHoras; every tier whose threshold is
// met contributes its percentage.
type ConfigDescuentoHH struct {
	DesdeHoras   float64
	DescuentoPct float64 // fraction, 0-1
	Orden        int
}

// ExportLineaHH is one time-tracking record for contracted labor, already
// split into standard/overtime buckets by the capture side.
type ExportLineaHH struct {
	ProyectoCodigo string
	RecursoNombre  string
	Fecha          time.Time
	Detalle        string
	Modalidad      Modalidad

	HorasReportadas float64
	HorasStd        float64
	HorasOT125      float64
	HorasOT135      float64
	HorasOT200      float64

	HorasEquivalente float64
	TarifaHora       float64
	Moneda           string
	CostoLinea       float64
}

// CabeceraFactura is the invoice header embedded in a valorization request.
type CabeceraFactura struct {
	Codigo             string
	Moneda             string
	IGVPct             float64 // fraction, e.g. 0.18
	AdelantoPct        float64
	AdelantoMonto      float64
	FondoGarantiaPct   float64
	FondoGarantiaMonto float64
	NetoRecibir        float64
	Periodo            string
}

// ExportValHH is the full valorization request handed to the report engine.
// All referential data is already resolved; the engine performs no lookups
// beyond the embedded tariff and discount tables.
type ExportValHH struct {
	Cliente       string
	PeriodoInicio time.Time
	PeriodoFin    time.Time

	TotalHorasReportadas   float64
	TotalHorasEquivalentes float64
	Subtotal               float64
	DescuentoPct           float64
	DescuentoMonto         float64

	Factura CabeceraFactura

	Lineas     []ExportLineaHH
	Tarifas    []TarifaClienteRecurso
	Descuentos []ConfigDescuentoHH
}
