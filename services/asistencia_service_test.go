package services

import (
	"context"
	"testing"
	"time"

	"github.com/adrifdez/club-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAsistenciaServiceParaTest(entRepo, parRepo *fakeAsistenciaRepo, entrenamientoRepo *fakeEntrenamientoRepo, partidoRepo *fakePartidoRepo) AsistenciaService {
	return NewAsistenciaService(entRepo, parRepo, entrenamientoRepo, partidoRepo, newFakeMotivoRepo(1, 2))
}

func TestRegistrarConfirmacion(t *testing.T) {
	entRepo := newFakeAsistenciaRepo()
	svc := newAsistenciaServiceParaTest(entRepo, newFakeAsistenciaRepo(), newFakeEntrenamientoRepo(), newFakePartidoRepo())

	asistencia, err := svc.Registrar(context.Background(), RegistrarAsistenciaInput{
		JugadorID: 7,
		EventoID:  3,
		Tipo:      models.EventoEntrenamiento,
		Estado:    models.AsistenciaConfirmada,
	})

	require.NoError(t, err)
	assert.Equal(t, models.AsistenciaConfirmada, asistencia.Estado)
	assert.NotNil(t, asistencia.FechaRespuesta)
	assert.Equal(t, 1, entRepo.total())
}

func TestRegistrarSobrescribeRespuestaAnterior(t *testing.T) {
	entRepo := newFakeAsistenciaRepo()
	svc := newAsistenciaServiceParaTest(entRepo, newFakeAsistenciaRepo(), newFakeEntrenamientoRepo(), newFakePartidoRepo())

	primera, err := svc.Registrar(context.Background(), RegistrarAsistenciaInput{
		JugadorID: 7,
		EventoID:  3,
		Tipo:      models.EventoEntrenamiento,
		Estado:    models.AsistenciaConfirmada,
	})
	require.NoError(t, err)

	motivoID := 1
	segunda, err := svc.Registrar(context.Background(), RegistrarAsistenciaInput{
		JugadorID:        7,
		EventoID:         3,
		Tipo:             models.EventoEntrenamiento,
		Estado:           models.AsistenciaNoAsiste,
		MotivoAusenciaID: &motivoID,
	})
	require.NoError(t, err)

	// Misma fila: cambiar de opinión no duplica la respuesta.
	assert.Equal(t, primera.ID, segunda.ID)
	assert.Equal(t, 1, entRepo.total())

	guardada, err := entRepo.GetByEventoAndJugador(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Equal(t, models.AsistenciaNoAsiste, guardada.Estado)
	require.NotNil(t, guardada.MotivoAusenciaID)
	assert.Equal(t, motivoID, *guardada.MotivoAusenciaID)
}

func TestRegistrarValidaciones(t *testing.T) {
	svc := newAsistenciaServiceParaTest(newFakeAsistenciaRepo(), newFakeAsistenciaRepo(), newFakeEntrenamientoRepo(), newFakePartidoRepo())

	motivoValido := 1
	motivoInexistente := 99

	tests := []struct {
		name    string
		input   RegistrarAsistenciaInput
		wantErr error
	}{
		{
			name: "estado desconocido",
			input: RegistrarAsistenciaInput{
				JugadorID: 1, EventoID: 1, Tipo: models.EventoEntrenamiento,
				Estado: "quizas",
			},
			wantErr: ErrEstadoAsistenciaInvalido,
		},
		{
			name: "no_asiste sin motivo",
			input: RegistrarAsistenciaInput{
				JugadorID: 1, EventoID: 1, Tipo: models.EventoEntrenamiento,
				Estado: models.AsistenciaNoAsiste,
			},
			wantErr: ErrMotivoRequerido,
		},
		{
			name: "pendiente con motivo",
			input: RegistrarAsistenciaInput{
				JugadorID: 1, EventoID: 1, Tipo: models.EventoEntrenamiento,
				Estado: models.AsistenciaPendiente, MotivoAusenciaID: &motivoValido,
			},
			wantErr: ErrMotivoNoPermitido,
		},
		{
			name: "motivo inexistente",
			input: RegistrarAsistenciaInput{
				JugadorID: 1, EventoID: 1, Tipo: models.EventoEntrenamiento,
				Estado: models.AsistenciaNoAsiste, MotivoAusenciaID: &motivoInexistente,
			},
			wantErr: ErrMotivoNotFound,
		},
		{
			name: "tipo de evento desconocido",
			input: RegistrarAsistenciaInput{
				JugadorID: 1, EventoID: 1, Tipo: "torneo",
				Estado: models.AsistenciaConfirmada,
			},
			wantErr: ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Registrar(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistrarGestorPuedeAusenciaSinMotivo(t *testing.T) {
	svc := newAsistenciaServiceParaTest(newFakeAsistenciaRepo(), newFakeAsistenciaRepo(), newFakeEntrenamientoRepo(), newFakePartidoRepo())

	asistencia, err := svc.Registrar(context.Background(), RegistrarAsistenciaInput{
		JugadorID:                 4,
		EventoID:                  2,
		Tipo:                      models.EventoPartido,
		Estado:                    models.AsistenciaNoAsiste,
		PermitirAusenciaSinMotivo: true,
	})

	require.NoError(t, err)
	assert.Equal(t, models.AsistenciaNoAsiste, asistencia.Estado)
	assert.Nil(t, asistencia.MotivoAusenciaID)
}

func TestMisEntrenamientosSiembraPendientes(t *testing.T) {
	entRepo := newFakeAsistenciaRepo()
	entrenamientoRepo := newFakeEntrenamientoRepo()
	svc := newAsistenciaServiceParaTest(entRepo, newFakeAsistenciaRepo(), entrenamientoRepo, newFakePartidoRepo())

	manana := time.Now().Add(24 * time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, entrenamientoRepo.Create(context.Background(), &models.Entrenamiento{
			FechaHora: manana.Add(time.Duration(i) * time.Hour),
			Lugar:     "Pabellón municipal",
		}))
	}
	// Un entrenamiento pasado no debe aparecer ni sembrarse.
	require.NoError(t, entrenamientoRepo.Create(context.Background(), &models.Entrenamiento{
		FechaHora: time.Now().Add(-24 * time.Hour),
		Lugar:     "Pabellón municipal",
	}))

	eventos, err := svc.MisEntrenamientos(context.Background(), 9)

	require.NoError(t, err)
	assert.Len(t, eventos, 3)
	assert.Equal(t, 3, entRepo.total())
	for _, evento := range eventos {
		require.NotNil(t, evento.Entrenamiento)
		assert.Equal(t, models.AsistenciaPendiente, evento.Asistencia.Estado)
	}
}

func TestMisEntrenamientosConservaRespuestaExistente(t *testing.T) {
	entRepo := newFakeAsistenciaRepo()
	entrenamientoRepo := newFakeEntrenamientoRepo()
	svc := newAsistenciaServiceParaTest(entRepo, newFakeAsistenciaRepo(), entrenamientoRepo, newFakePartidoRepo())

	entrenamiento := &models.Entrenamiento{
		FechaHora: time.Now().Add(48 * time.Hour),
		Lugar:     "Pabellón municipal",
	}
	require.NoError(t, entrenamientoRepo.Create(context.Background(), entrenamiento))

	_, err := svc.Registrar(context.Background(), RegistrarAsistenciaInput{
		JugadorID: 9,
		EventoID:  entrenamiento.ID,
		Tipo:      models.EventoEntrenamiento,
		Estado:    models.AsistenciaConfirmada,
	})
	require.NoError(t, err)

	eventos, err := svc.MisEntrenamientos(context.Background(), 9)

	require.NoError(t, err)
	require.Len(t, eventos, 1)
	// El sembrado es insert-if-absent: no pisa la confirmación previa.
	assert.Equal(t, models.AsistenciaConfirmada, eventos[0].Asistencia.Estado)
}

func TestMisPartidos(t *testing.T) {
	parRepo := newFakeAsistenciaRepo()
	partidoRepo := newFakePartidoRepo()
	svc := newAsistenciaServiceParaTest(newFakeAsistenciaRepo(), parRepo, newFakeEntrenamientoRepo(), partidoRepo)

	require.NoError(t, partidoRepo.Create(context.Background(), &models.Partido{
		FechaHora: time.Now().Add(72 * time.Hour),
		Rival:     "CD Rival",
		Lugar:     "Pabellón municipal",
		Tipo:      models.PartidoLiga,
		Estado:    models.PartidoProgramado,
	}))

	eventos, err := svc.MisPartidos(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, eventos, 1)
	require.NotNil(t, eventos[0].Partido)
	assert.Equal(t, "CD Rival", eventos[0].Partido.Rival)
	assert.Equal(t, models.AsistenciaPendiente, eventos[0].Asistencia.Estado)
}
