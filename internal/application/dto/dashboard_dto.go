package dto

import "github.com/shopspring/decimal"

// InventarioEspecieDTO inventario neto de una especie (ya con clamp a cero).
type InventarioEspecieDTO struct {
	EspecieID string          `json:"especie_id"`
	Nombre    string          `json:"nombre"`
	Cantidad  decimal.Decimal `json:"cantidad"`
	Unidad    string          `json:"unidad"` // siempre "kg"
}

// ChartProyeccionDTO payload listo para el gráfico de 12 meses:
// tres series paralelas de largo 12 más las etiquetas de mes.
type ChartProyeccionDTO struct {
	Labels      []string  `json:"labels"`
	Contractual []float64 `json:"contractual"`
	Real        []float64 `json:"real"`
	Proyectado  []float64 `json:"proyectado"`
}

// ChartInventarioDTO payload del gráfico de torta de inventario:
// porcentajes por especie, omitiendo especies en cero.
type ChartInventarioDTO struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// AlertaDTO alerta temprana del dashboard. El orden de la lista es el
// orden de evaluación de las reglas, no por severidad.
type AlertaDTO struct {
	Nivel   string `json:"nivel"` // alto | medio | bajo
	Titulo  string `json:"titulo"`
	Detalle string `json:"detalle"`
}

// DashboardResumenDTO vista ejecutiva completa: KPIs con variación
// período a período, gráficos y alertas.
type DashboardResumenDTO struct {
	CumplimientoContractual float64 `json:"cumplimiento_contractual"` // %
	ProduccionMensual       float64 `json:"produccion_mensual"`       // kg del mes en curso
	InventarioTotal         float64 `json:"inventario_total"`         // kg
	IngresosProyectados     float64 `json:"ingresos_proyectados"`     // CLP

	CumplimientoVar float64 `json:"cumplimiento_var"`
	ProduccionVar   float64 `json:"produccion_var"`
	InventarioVar   float64 `json:"inventario_var"`
	IngresosVar     float64 `json:"ingresos_var"`

	ChartProyeccion ChartProyeccionDTO     `json:"chart_proyeccion"`
	ChartInventario ChartInventarioDTO     `json:"chart_inventario"`
	Inventario      []InventarioEspecieDTO `json:"inventario_especies"`
	Alertas         []AlertaDTO            `json:"alertas"`
}
