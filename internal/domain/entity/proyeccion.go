package entity

// Proyeccion es un punto proyectado de producción mensual, calculado por el
// microservicio externo y almacenado en la colección documental con clave
// natural (especie, anio, mes). Escritura solo por upsert: no hay historial.
type Proyeccion struct {
	Especie       string  `bson:"especie"`
	Anio          int     `bson:"anio"`
	Mes           int     `bson:"mes"`
	ProyeccionTon float64 `bson:"proyeccion_ton"`
}

// HistoricoMes es un punto del histórico de producción (solo entradas,
// agrupadas por año/mes) que se envía al microservicio de proyecciones.
type HistoricoMes struct {
	Anio      int     `json:"anio"`
	Mes       int     `json:"mes"`
	Toneladas float64 `json:"toneladas"`
}
