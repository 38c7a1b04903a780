package services

import (
	"context"
	"testing"
	"time"

	"github.com/adrifdez/club-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPartidoServiceParaTest(partidoRepo *fakePartidoRepo, hub EventBroadcaster) PartidoService {
	return NewPartidoService(partidoRepo, nil, hub)
}

func TestCrearPartido(t *testing.T) {
	partidoRepo := newFakePartidoRepo()
	svc := newPartidoServiceParaTest(partidoRepo, newFakeBroadcaster())

	partido, err := svc.Crear(context.Background(), CrearPartidoInput{
		Fecha:     "2026-09-12",
		Hora:      "18:30",
		Rival:     "CD Rival",
		Lugar:     "Pabellón municipal",
		Tipo:      models.PartidoLiga,
		EsLocal:   true,
		CreadoPor: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PartidoProgramado, partido.Estado)
	assert.Equal(t, models.PartidoLiga, partido.Tipo)
	assert.Equal(t, 12, partido.FechaHora.Day())
	assert.Equal(t, 18, partido.FechaHora.Hour())
	assert.Nil(t, partido.Resultado)
}

func TestCrearPartidoTipoPorDefecto(t *testing.T) {
	svc := newPartidoServiceParaTest(newFakePartidoRepo(), newFakeBroadcaster())

	partido, err := svc.Crear(context.Background(), CrearPartidoInput{
		Fecha: "2026-09-12",
		Hora:  "18:30",
		Rival: "CD Rival",
		Lugar: "Pabellón municipal",
	})

	require.NoError(t, err)
	assert.Equal(t, models.PartidoAmistoso, partido.Tipo)
}

func TestCrearPartidoValidaciones(t *testing.T) {
	svc := newPartidoServiceParaTest(newFakePartidoRepo(), newFakeBroadcaster())

	tests := []struct {
		name    string
		input   CrearPartidoInput
		wantErr error
	}{
		{
			name:    "sin fecha",
			input:   CrearPartidoInput{Hora: "18:30", Rival: "CD Rival", Lugar: "Pabellón"},
			wantErr: ErrFechaRequerida,
		},
		{
			name:    "sin rival",
			input:   CrearPartidoInput{Fecha: "2026-09-12", Hora: "18:30", Lugar: "Pabellón"},
			wantErr: ErrRivalRequerido,
		},
		{
			name:    "sin lugar",
			input:   CrearPartidoInput{Fecha: "2026-09-12", Hora: "18:30", Rival: "CD Rival"},
			wantErr: ErrLugarRequerido,
		},
		{
			name:    "tipo desconocido",
			input:   CrearPartidoInput{Fecha: "2026-09-12", Hora: "18:30", Rival: "CD Rival", Lugar: "Pabellón", Tipo: "exhibicion"},
			wantErr: ErrTipoPartidoInvalido,
		},
		{
			name:    "fecha mal formada",
			input:   CrearPartidoInput{Fecha: "12/09/2026", Hora: "18:30", Rival: "CD Rival", Lugar: "Pabellón"},
			wantErr: ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Crear(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestActualizarPartidoParcial(t *testing.T) {
	partidoRepo := newFakePartidoRepo()
	svc := newPartidoServiceParaTest(partidoRepo, newFakeBroadcaster())

	partido, err := svc.Crear(context.Background(), CrearPartidoInput{
		Fecha: "2026-09-12",
		Hora:  "18:30",
		Rival: "CD Rival",
		Lugar: "Pabellón municipal",
	})
	require.NoError(t, err)

	nuevaHora := "20:00"
	actualizado, err := svc.Actualizar(context.Background(), partido.ID, ActualizarPartidoInput{
		Hora: &nuevaHora,
	})

	require.NoError(t, err)
	// Cambiar la hora conserva la fecha y el resto de campos.
	assert.Equal(t, 20, actualizado.FechaHora.Hour())
	assert.Equal(t, partido.FechaHora.Day(), actualizado.FechaHora.Day())
	assert.Equal(t, "CD Rival", actualizado.Rival)
}

func TestActualizarPartidoInexistente(t *testing.T) {
	svc := newPartidoServiceParaTest(newFakePartidoRepo(), newFakeBroadcaster())

	rival := "Otro"
	_, err := svc.Actualizar(context.Background(), 42, ActualizarPartidoInput{Rival: &rival})

	assert.ErrorIs(t, err, ErrPartidoNotFound)
}

func TestActualizarResultadoEmiteALaSala(t *testing.T) {
	partidoRepo := newFakePartidoRepo()
	hub := newFakeBroadcaster()
	svc := newPartidoServiceParaTest(partidoRepo, hub)

	partido, err := svc.Crear(context.Background(), CrearPartidoInput{
		Fecha: "2026-09-12",
		Hora:  "18:30",
		Rival: "CD Rival",
		Lugar: "Pabellón municipal",
	})
	require.NoError(t, err)

	actualizado, err := svc.ActualizarResultado(context.Background(), partido.ID, "4-2")

	require.NoError(t, err)
	require.NotNil(t, actualizado.Resultado)
	assert.Equal(t, "4-2", *actualizado.Resultado)
	assert.Len(t, hub.enviados(RoomPartido(partido.ID)), 1)
}

func TestProximosRespetaElLimite(t *testing.T) {
	partidoRepo := newFakePartidoRepo()
	svc := newPartidoServiceParaTest(partidoRepo, newFakeBroadcaster())

	for i := 0; i < 8; i++ {
		require.NoError(t, partidoRepo.Create(context.Background(), &models.Partido{
			FechaHora: time.Now().Add(time.Duration(i+1) * 24 * time.Hour),
			Rival:     "CD Rival",
			Lugar:     "Pabellón",
		}))
	}

	partidos, err := svc.Proximos(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, partidos, 5)
}
