package repository

import (
	"context"

	"github.com/algasur/algas-api/internal/domain/entity"
)

// ProyeccionRepository puerto del almacén documental de proyecciones.
// Escrituras solo por upsert con clave natural (especie, anio, mes);
// la última escritura gana y no se conserva historial.
type ProyeccionRepository interface {
	// Upsert crea o reemplaza el punto proyectado de (especie, anio, mes).
	Upsert(ctx context.Context, p entity.Proyeccion) error

	// TotalesPorMes devuelve la suma de proyeccion_ton de todas las especies
	// para el año dado, como mapa mes -> total. Los meses sin documentos
	// simplemente no aparecen en el mapa.
	TotalesPorMes(ctx context.Context, anio int) (map[int]float64, error)
}
