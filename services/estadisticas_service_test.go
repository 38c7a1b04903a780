package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEstadisticasRepo struct {
	mu        sync.Mutex
	resumen   map[int]models.EstadisticasPartido
	jugadores map[int][]models.EstadisticaJugadorPartido
	acciones  map[int][]models.AccionPartido
	tiempos   map[int][]models.TiempoJuego
	staff     map[int][]models.CuerpoTecnicoPartido
}

func newFakeEstadisticasRepo() *fakeEstadisticasRepo {
	return &fakeEstadisticasRepo{
		resumen:   make(map[int]models.EstadisticasPartido),
		jugadores: make(map[int][]models.EstadisticaJugadorPartido),
		acciones:  make(map[int][]models.AccionPartido),
		tiempos:   make(map[int][]models.TiempoJuego),
		staff:     make(map[int][]models.CuerpoTecnicoPartido),
	}
}

func (f *fakeEstadisticasRepo) CreateResumen(ctx context.Context, exec repositories.SQLExecutor, resumen *models.EstadisticasPartido) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	resumen.ID = len(f.resumen) + 1
	f.resumen[resumen.PartidoID] = *resumen
	return nil
}

func (f *fakeEstadisticasRepo) BatchCreateJugadores(ctx context.Context, exec repositories.SQLExecutor, stats []models.EstadisticaJugadorPartido) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range stats {
		f.jugadores[s.PartidoID] = append(f.jugadores[s.PartidoID], s)
	}
	return nil
}

func (f *fakeEstadisticasRepo) BatchCreateAcciones(ctx context.Context, exec repositories.SQLExecutor, acciones []models.AccionPartido) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range acciones {
		f.acciones[a.PartidoID] = append(f.acciones[a.PartidoID], a)
	}
	return nil
}

func (f *fakeEstadisticasRepo) BatchCreateTiempos(ctx context.Context, exec repositories.SQLExecutor, tiempos []models.TiempoJuego) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range tiempos {
		f.tiempos[t.PartidoID] = append(f.tiempos[t.PartidoID], t)
	}
	return nil
}

func (f *fakeEstadisticasRepo) BatchCreateCuerpoTecnico(ctx context.Context, exec repositories.SQLExecutor, staff []models.CuerpoTecnicoPartido) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range staff {
		f.staff[c.PartidoID] = append(f.staff[c.PartidoID], c)
	}
	return nil
}

func (f *fakeEstadisticasRepo) GetResumenByPartido(ctx context.Context, partidoID int) (*models.EstadisticasPartido, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.resumen[partidoID]; ok {
		return &r, nil
	}
	return nil, repositories.ErrEstadisticasNotFound
}

func (f *fakeEstadisticasRepo) ListJugadoresByPartido(ctx context.Context, partidoID int) ([]models.EstadisticaJugadorPartido, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jugadores[partidoID], nil
}

func (f *fakeEstadisticasRepo) ListAccionesByPartido(ctx context.Context, partidoID int) ([]models.AccionPartido, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acciones[partidoID], nil
}

func (f *fakeEstadisticasRepo) ListTiemposByPartido(ctx context.Context, partidoID int) ([]models.TiempoJuego, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tiempos[partidoID], nil
}

func (f *fakeEstadisticasRepo) ListCuerpoTecnicoByPartido(ctx context.Context, partidoID int) ([]models.CuerpoTecnicoPartido, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staff[partidoID], nil
}

func crearPartidoProgramado(t *testing.T, repo *fakePartidoRepo) *models.Partido {
	t.Helper()
	partido := &models.Partido{
		FechaHora: time.Now().Add(-2 * time.Hour),
		Rival:     "CD Rival",
		Lugar:     "Pabellón municipal",
		Tipo:      models.PartidoLiga,
		Estado:    models.PartidoProgramado,
	}
	require.NoError(t, repo.Create(context.Background(), partido))
	return partido
}

func inputFinalizarMinimo() FinalizarPartidoInput {
	jugadorID := 3
	return FinalizarPartidoInput{
		Resultado: "5-3",
		Resumen: ResumenInput{
			GolesLocal:  5,
			GolesRival:  3,
			FaltasLocal: 4,
			FaltasRival: 6,
		},
		Jugadores: []EstadisticaJugadorInput{
			{JugadorID: 3, Minutos: 40, Goles: 2, Titular: true},
		},
		Acciones: []AccionInput{
			{Tipo: models.AccionGol, Minuto: 4, Parte: 1, EquipoLocal: true, JugadorID: &jugadorID},
			{Tipo: models.AccionFalta, Minuto: 11, Parte: 1, EquipoLocal: true},
			{Tipo: models.AccionFalta, Minuto: 27, Parte: 2, EquipoLocal: false},
		},
		Tiempos: []TiempoJuegoInput{
			{JugadorID: 3, MinutoEntrada: 0},
		},
		CuerpoTecnico: []CuerpoTecnicoInput{
			{Nombre: "Carlos Ortega", RolTecnico: "entrenador"},
		},
	}
}

func TestFinalizarPartido(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	partidoRepo := newFakePartidoRepo()
	estadisticasRepo := newFakeEstadisticasRepo()
	hub := newFakeBroadcaster()
	svc := NewEstadisticasService(db, partidoRepo, estadisticasRepo, hub)

	partido := crearPartidoProgramado(t, partidoRepo)

	acta, err := svc.Finalizar(context.Background(), partido.ID, inputFinalizarMinimo())

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, models.PartidoFinalizado, acta.Partido.Estado)
	require.NotNil(t, acta.Partido.Resultado)
	assert.Equal(t, "5-3", *acta.Partido.Resultado)
	assert.Equal(t, 5, acta.Resumen.GolesLocal)
	assert.Len(t, acta.Jugadores, 1)
	assert.Len(t, acta.Acciones, 3)
	assert.Len(t, acta.CuerpoTecnico, 1)

	// Faltas por parte derivadas de la cronología, no del resumen.
	assert.Equal(t, 1, acta.FaltasLocalPrimera)
	assert.Equal(t, 0, acta.FaltasLocalSegunda)
	assert.Equal(t, 0, acta.FaltasRivalPrimera)
	assert.Equal(t, 1, acta.FaltasRivalSegunda)

	// El cierre del acta se anuncia en la sala del partido.
	assert.Len(t, hub.enviados(RoomPartido(partido.ID)), 1)
}

func TestFinalizarPartidoYaFinalizado(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	partidoRepo := newFakePartidoRepo()
	svc := NewEstadisticasService(db, partidoRepo, newFakeEstadisticasRepo(), newFakeBroadcaster())

	partido := crearPartidoProgramado(t, partidoRepo)

	_, err = svc.Finalizar(context.Background(), partido.ID, inputFinalizarMinimo())
	require.NoError(t, err)

	_, err = svc.Finalizar(context.Background(), partido.ID, inputFinalizarMinimo())
	assert.ErrorIs(t, err, ErrPartidoYaFinalizado)
}

func TestFinalizarPartidoInexistente(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewEstadisticasService(db, newFakePartidoRepo(), newFakeEstadisticasRepo(), newFakeBroadcaster())

	_, err = svc.Finalizar(context.Background(), 99, inputFinalizarMinimo())

	assert.ErrorIs(t, err, ErrPartidoNotFound)
}

func TestFinalizarValidaAcciones(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	partidoRepo := newFakePartidoRepo()
	svc := NewEstadisticasService(db, partidoRepo, newFakeEstadisticasRepo(), newFakeBroadcaster())
	partido := crearPartidoProgramado(t, partidoRepo)

	tests := []struct {
		name    string
		mutar   func(*FinalizarPartidoInput)
		wantErr error
	}{
		{
			name: "tipo de acción desconocido",
			mutar: func(in *FinalizarPartidoInput) {
				in.Acciones[0].Tipo = "penalti"
			},
			wantErr: ErrAccionInvalida,
		},
		{
			name: "parte fuera de rango",
			mutar: func(in *FinalizarPartidoInput) {
				in.Acciones[0].Parte = 3
			},
			wantErr: ErrAccionInvalida,
		},
		{
			name: "minuto negativo",
			mutar: func(in *FinalizarPartidoInput) {
				in.Acciones[0].Minuto = -1
			},
			wantErr: ErrAccionInvalida,
		},
		{
			name: "técnico sin nombre",
			mutar: func(in *FinalizarPartidoInput) {
				in.CuerpoTecnico[0].Nombre = ""
			},
			wantErr: ErrNombreRequerido,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := inputFinalizarMinimo()
			tt.mutar(&input)

			_, err := svc.Finalizar(context.Background(), partido.ID, input)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestObtenerActaSinFinalizar(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	partidoRepo := newFakePartidoRepo()
	svc := NewEstadisticasService(db, partidoRepo, newFakeEstadisticasRepo(), newFakeBroadcaster())
	partido := crearPartidoProgramado(t, partidoRepo)

	_, err = svc.ObtenerActa(context.Background(), partido.ID)

	assert.ErrorIs(t, err, ErrActaNotFound)
}
