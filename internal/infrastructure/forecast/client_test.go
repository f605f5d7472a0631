package forecast_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/infrastructure/forecast"
	"github.com/algasur/algas-api/pkg/config"
)

func clientePara(url string) *forecast.Client {
	return forecast.NewClient(config.ProyeccionesConfig{URL: url, TimeoutSeconds: 2})
}

func TestProyectar_EnviaHistoricoYDevuelvePuntos(t *testing.T) {
	var recibido map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/proyectar", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"especie": "Luga Roja",
			"proyecciones": []map[string]any{
				{"anio": 2026, "mes": 9, "proyeccion_ton": 14.2},
				{"anio": 2026, "mes": 10, "proyeccion_ton": 15.1},
			},
		})
	}))
	defer srv.Close()

	historico := []entity.HistoricoMes{
		{Anio: 2026, Mes: 7, Toneladas: 12.0},
		{Anio: 2026, Mes: 8, Toneladas: 13.5},
	}
	puntos, err := clientePara(srv.URL).Proyectar(context.Background(), "Luga Roja", historico, 2)
	require.NoError(t, err)

	require.Len(t, puntos, 2)
	assert.Equal(t, 2026, puntos[0].Anio)
	assert.Equal(t, 9, puntos[0].Mes)
	assert.Equal(t, 14.2, puntos[0].ProyeccionTon)

	// El payload debe seguir el contrato del microservicio.
	assert.Equal(t, "Luga Roja", recibido["especie"])
	assert.Equal(t, float64(2), recibido["meses_a_proyectar"])
	hist, ok := recibido["historico"].([]any)
	require.True(t, ok)
	assert.Len(t, hist, 2)
}

func TestProyectar_RespuestaNo2xxEnvuelveErrorDeServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := clientePara(srv.URL).Proyectar(context.Background(), "Pelillo", []entity.HistoricoMes{{Anio: 2026, Mes: 1, Toneladas: 1}}, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServicioProyecciones)
}

func TestProyectar_ServidorInalcanzableEnvuelveErrorDeServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // cerrado a propósito

	_, err := clientePara(srv.URL).Proyectar(context.Background(), "Pelillo", nil, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServicioProyecciones)
}
