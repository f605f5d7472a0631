// Package proyecciones orquesta la generación batch de proyecciones: para
// cada especie construye su histórico de entradas desde el ledger de stock,
// llama al microservicio externo y hace upsert de cada punto devuelto en el
// almacén documental. Es el único lugar que escribe en ese almacén.
package proyecciones

import (
	"context"

	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
	"github.com/algasur/algas-api/pkg/logger"
)

// GenerarUseCase batch de actualización de proyecciones.
type GenerarUseCase struct {
	especies  repository.EspecieRepository
	reportes  repository.ReporteRepository
	store     repository.ProyeccionRepository
	cliente   Cliente
	horizonte int // meses a proyectar por especie
	log       *logger.Logger
}

// NewGenerarUseCase construye el orquestador del batch.
func NewGenerarUseCase(
	especies repository.EspecieRepository,
	reportes repository.ReporteRepository,
	store repository.ProyeccionRepository,
	cliente Cliente,
	horizonte int,
	log *logger.Logger,
) *GenerarUseCase {
	if horizonte <= 0 {
		horizonte = 12
	}
	return &GenerarUseCase{
		especies:  especies,
		reportes:  reportes,
		store:     store,
		cliente:   cliente,
		horizonte: horizonte,
		log:       log,
	}
}

// Resultado resumen de una corrida del batch.
type Resultado struct {
	EspeciesProcesadas int
	EspeciesOmitidas   int // sin histórico o con fallo aislado
	PuntosGuardados    int
}

// Generar recorre todas las especies secuencialmente. Por especie:
//
//  1. Histórico de entradas agrupado por año/mes, excluyendo meses sin
//     producción. Especie sin histórico → se omite (no hay proyección útil).
//  2. Llamada al microservicio. Un fallo se registra y se continúa con la
//     siguiente especie; nunca aborta el batch.
//  3. Upsert de cada punto con clave (especie, anio, mes). Corridas
//     concurrentes son seguras: el upsert posterior simplemente sobreescribe.
func (uc *GenerarUseCase) Generar(ctx context.Context) (*Resultado, error) {
	especies, err := uc.especies.List()
	if err != nil {
		return nil, err
	}

	res := &Resultado{}
	for _, esp := range especies {
		historico, err := uc.reportes.HistoricoEntradasEspecie(ctx, esp.ID)
		if err != nil {
			uc.log.Warn().Err(err).Str("especie", esp.Nombre).
				Msg("no se pudo leer el histórico; especie omitida")
			res.EspeciesOmitidas++
			continue
		}
		historico = soloMesesConProduccion(historico)
		if len(historico) == 0 {
			res.EspeciesOmitidas++
			continue
		}

		puntos, err := uc.cliente.Proyectar(ctx, esp.Nombre, historico, uc.horizonte)
		if err != nil {
			uc.log.Warn().Err(err).Str("especie", esp.Nombre).
				Msg("microservicio de proyecciones falló; especie omitida")
			res.EspeciesOmitidas++
			continue
		}

		guardados := 0
		for _, p := range puntos {
			err := uc.store.Upsert(ctx, entity.Proyeccion{
				Especie:       esp.Nombre,
				Anio:          p.Anio,
				Mes:           p.Mes,
				ProyeccionTon: p.ProyeccionTon,
			})
			if err != nil {
				uc.log.Warn().Err(err).Str("especie", esp.Nombre).
					Int("anio", p.Anio).Int("mes", p.Mes).
					Msg("no se pudo guardar el punto proyectado")
				continue
			}
			guardados++
		}
		res.PuntosGuardados += guardados
		res.EspeciesProcesadas++
	}

	uc.log.Info().
		Int("procesadas", res.EspeciesProcesadas).
		Int("omitidas", res.EspeciesOmitidas).
		Int("puntos", res.PuntosGuardados).
		Msg("proyecciones actualizadas desde el microservicio")
	return res, nil
}

// soloMesesConProduccion descarta los meses con cero toneladas; un mes
// compuesto solo por movimientos de peso cero no aporta señal al modelo.
func soloMesesConProduccion(historico []entity.HistoricoMes) []entity.HistoricoMes {
	filtrado := historico[:0]
	for _, h := range historico {
		if h.Toneladas > 0 {
			filtrado = append(filtrado, h)
		}
	}
	return filtrado
}
