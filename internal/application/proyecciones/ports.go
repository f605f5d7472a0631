package proyecciones

import (
	"context"

	"github.com/algasur/algas-api/internal/domain/entity"
)

// PuntoProyectado un mes proyectado devuelto por el microservicio.
type PuntoProyectado struct {
	Anio          int
	Mes           int
	ProyeccionTon float64
}

// Cliente puerto hacia el microservicio externo de proyecciones. Es un
// adaptador puro de forma de datos + transporte; no interpreta el algoritmo.
//
// Contrato: los puntos devueltos continúan estrictamente desde el último
// (anio, mes) del histórico, avanzando mes a mes con rollover de calendario.
// Un fallo de red o una respuesta no-2xx se devuelve envolviendo
// domain.ErrServicioProyecciones.
type Cliente interface {
	Proyectar(ctx context.Context, especie string, historico []entity.HistoricoMes, mesesAProyectar int) ([]PuntoProyectado, error)
}
