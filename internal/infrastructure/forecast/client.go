package forecast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/algasur/algas-api/internal/application/proyecciones"
	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/pkg/config"
)

var _ proyecciones.Cliente = (*Client)(nil)

// Client adaptador resty del microservicio de proyecciones. Traduce el
// histórico mensual al contrato JSON del servicio y devuelve los puntos
// proyectados tal cual; no interpreta ni corrige el algoritmo remoto.
type Client struct {
	httpClient *resty.Client
}

// NewClient construye el cliente con base URL y timeout de configuración.
func NewClient(cfg config.ProyeccionesConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.URL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &Client{httpClient: restyClient}
}

type proyectarRequest struct {
	Especie         string                `json:"especie"`
	Historico       []entity.HistoricoMes `json:"historico"`
	MesesAProyectar int                   `json:"meses_a_proyectar"`
}

type proyectarResponse struct {
	Especie      string `json:"especie"`
	Proyecciones []struct {
		Anio          int     `json:"anio"`
		Mes           int     `json:"mes"`
		ProyeccionTon float64 `json:"proyeccion_ton"`
	} `json:"proyecciones"`
}

// Proyectar envía el histórico de una especie y devuelve los meses
// proyectados. Errores de red y respuestas no-2xx se envuelven en
// domain.ErrServicioProyecciones para que el llamador degrade sin caerse.
func (c *Client) Proyectar(ctx context.Context, especie string, historico []entity.HistoricoMes, mesesAProyectar int) ([]proyecciones.PuntoProyectado, error) {
	payload := proyectarRequest{
		Especie:         especie,
		Historico:       historico,
		MesesAProyectar: mesesAProyectar,
	}

	result := new(proyectarResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		Post("/proyectar")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServicioProyecciones, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrServicioProyecciones, resp.StatusCode())
	}

	puntos := make([]proyecciones.PuntoProyectado, 0, len(result.Proyecciones))
	for _, p := range result.Proyecciones {
		puntos = append(puntos, proyecciones.PuntoProyectado{
			Anio:          p.Anio,
			Mes:           p.Mes,
			ProyeccionTon: p.ProyeccionTon,
		})
	}
	return puntos, nil
}
