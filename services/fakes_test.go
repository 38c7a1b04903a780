package services

import (
	"context"
	"sync"
	"time"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
)

// Dobles en memoria de los repositorios, suficientes para ejercitar la
// lógica de los servicios sin base de datos.

type claveAsistencia struct {
	eventoID  int
	jugadorID int
}

type fakeAsistenciaRepo struct {
	mu        sync.Mutex
	filas     map[claveAsistencia]models.Asistencia
	nextID    int
	upsertErr error
	seedErr   error
}

func newFakeAsistenciaRepo() *fakeAsistenciaRepo {
	return &fakeAsistenciaRepo{filas: make(map[claveAsistencia]models.Asistencia)}
}

func (f *fakeAsistenciaRepo) Upsert(ctx context.Context, a *models.Asistencia) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	clave := claveAsistencia{a.EventoID, a.JugadorID}
	ahora := time.Now()
	if existente, ok := f.filas[clave]; ok {
		a.ID = existente.ID
	} else {
		f.nextID++
		a.ID = f.nextID
	}
	a.FechaRespuesta = &ahora
	f.filas[clave] = *a
	return nil
}

func (f *fakeAsistenciaRepo) SeedPendiente(ctx context.Context, eventoID, jugadorID int) error {
	if f.seedErr != nil {
		return f.seedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	clave := claveAsistencia{eventoID, jugadorID}
	if _, ok := f.filas[clave]; ok {
		return nil
	}
	f.nextID++
	f.filas[clave] = models.Asistencia{
		ID:        f.nextID,
		EventoID:  eventoID,
		JugadorID: jugadorID,
		Estado:    models.AsistenciaPendiente,
	}
	return nil
}

func (f *fakeAsistenciaRepo) GetByEventoAndJugador(ctx context.Context, eventoID, jugadorID int) (*models.Asistencia, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if a, ok := f.filas[claveAsistencia{eventoID, jugadorID}]; ok {
		return &a, nil
	}
	return nil, repositories.ErrAsistenciaNotFound
}

func (f *fakeAsistenciaRepo) ListByEvento(ctx context.Context, eventoID int) ([]models.Asistencia, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var resultado []models.Asistencia
	for clave, a := range f.filas {
		if clave.eventoID == eventoID {
			resultado = append(resultado, a)
		}
	}
	return resultado, nil
}

func (f *fakeAsistenciaRepo) ListByJugador(ctx context.Context, jugadorID int, eventoIDs []int) (map[int]models.Asistencia, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	resultado := make(map[int]models.Asistencia)
	for _, eventoID := range eventoIDs {
		if a, ok := f.filas[claveAsistencia{eventoID, jugadorID}]; ok {
			resultado[eventoID] = a
		}
	}
	return resultado, nil
}

func (f *fakeAsistenciaRepo) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filas)
}

type fakeMotivoRepo struct {
	motivos map[int]models.MotivoAusencia
}

func newFakeMotivoRepo(ids ...int) *fakeMotivoRepo {
	motivos := make(map[int]models.MotivoAusencia, len(ids))
	for _, id := range ids {
		motivos[id] = models.MotivoAusencia{ID: id, Nombre: "Motivo"}
	}
	return &fakeMotivoRepo{motivos: motivos}
}

func (f *fakeMotivoRepo) List(ctx context.Context) ([]models.MotivoAusencia, error) {
	var resultado []models.MotivoAusencia
	for _, m := range f.motivos {
		resultado = append(resultado, m)
	}
	return resultado, nil
}

func (f *fakeMotivoRepo) GetByID(ctx context.Context, id int) (*models.MotivoAusencia, error) {
	if m, ok := f.motivos[id]; ok {
		return &m, nil
	}
	return nil, repositories.ErrMotivoNotFound
}

type fakePosicionRepo struct {
	posiciones map[int]models.Posicion
}

func newFakePosicionRepo(ids ...int) *fakePosicionRepo {
	posiciones := make(map[int]models.Posicion, len(ids))
	for _, id := range ids {
		posiciones[id] = models.Posicion{ID: id, Nombre: "Posición", Orden: id}
	}
	return &fakePosicionRepo{posiciones: posiciones}
}

func (f *fakePosicionRepo) List(ctx context.Context) ([]models.Posicion, error) {
	var resultado []models.Posicion
	for _, p := range f.posiciones {
		resultado = append(resultado, p)
	}
	return resultado, nil
}

func (f *fakePosicionRepo) GetByID(ctx context.Context, id int) (*models.Posicion, error) {
	if p, ok := f.posiciones[id]; ok {
		return &p, nil
	}
	return nil, repositories.ErrPosicionNotFound
}

type fakeEntrenamientoRepo struct {
	mu             sync.Mutex
	entrenamientos map[int]models.Entrenamiento
	nextID         int
}

func newFakeEntrenamientoRepo() *fakeEntrenamientoRepo {
	return &fakeEntrenamientoRepo{entrenamientos: make(map[int]models.Entrenamiento)}
}

func (f *fakeEntrenamientoRepo) Create(ctx context.Context, e *models.Entrenamiento) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	f.entrenamientos[e.ID] = *e
	return nil
}

func (f *fakeEntrenamientoRepo) GetByID(ctx context.Context, id int) (*models.Entrenamiento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entrenamientos[id]; ok {
		return &e, nil
	}
	return nil, repositories.ErrEntrenamientoNotFound
}

func (f *fakeEntrenamientoRepo) List(ctx context.Context, filtro repositories.EventoFiltro) ([]models.Entrenamiento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var resultado []models.Entrenamiento
	for _, e := range f.entrenamientos {
		resultado = append(resultado, e)
	}
	return resultado, nil
}

func (f *fakeEntrenamientoRepo) ListDesde(ctx context.Context, desde time.Time) ([]models.Entrenamiento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var resultado []models.Entrenamiento
	for _, e := range f.entrenamientos {
		if !e.FechaHora.Before(desde) {
			resultado = append(resultado, e)
		}
	}
	return resultado, nil
}

func (f *fakeEntrenamientoRepo) Update(ctx context.Context, e *models.Entrenamiento) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entrenamientos[e.ID]; !ok {
		return repositories.ErrEntrenamientoNotFound
	}
	f.entrenamientos[e.ID] = *e
	return nil
}

func (f *fakeEntrenamientoRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entrenamientos[id]; !ok {
		return repositories.ErrEntrenamientoNotFound
	}
	delete(f.entrenamientos, id)
	return nil
}

type fakePartidoRepo struct {
	mu       sync.Mutex
	partidos map[int]models.Partido
	nextID   int
}

func newFakePartidoRepo() *fakePartidoRepo {
	return &fakePartidoRepo{partidos: make(map[int]models.Partido)}
}

func (f *fakePartidoRepo) Create(ctx context.Context, p *models.Partido) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.partidos[p.ID] = *p
	return nil
}

func (f *fakePartidoRepo) GetByID(ctx context.Context, id int) (*models.Partido, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.partidos[id]; ok {
		return &p, nil
	}
	return nil, repositories.ErrPartidoNotFound
}

func (f *fakePartidoRepo) List(ctx context.Context, filtro repositories.EventoFiltro) ([]models.Partido, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var resultado []models.Partido
	for _, p := range f.partidos {
		resultado = append(resultado, p)
	}
	return resultado, nil
}

func (f *fakePartidoRepo) ListDesde(ctx context.Context, desde time.Time) ([]models.Partido, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var resultado []models.Partido
	for _, p := range f.partidos {
		if !p.FechaHora.Before(desde) {
			resultado = append(resultado, p)
		}
	}
	return resultado, nil
}

func (f *fakePartidoRepo) ListProximos(ctx context.Context, limit int) ([]models.Partido, error) {
	resultado, err := f.ListDesde(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if len(resultado) > limit {
		resultado = resultado[:limit]
	}
	return resultado, nil
}

func (f *fakePartidoRepo) Update(ctx context.Context, p *models.Partido) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.partidos[p.ID]; !ok {
		return repositories.ErrPartidoNotFound
	}
	f.partidos[p.ID] = *p
	return nil
}

func (f *fakePartidoRepo) UpdateResultado(ctx context.Context, id int, resultado string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.partidos[id]
	if !ok {
		return repositories.ErrPartidoNotFound
	}
	p.Resultado = &resultado
	f.partidos[id] = p
	return nil
}

func (f *fakePartidoRepo) UpdateEstado(ctx context.Context, exec repositories.SQLExecutor, id int, estado models.EstadoPartido, resultado *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.partidos[id]
	if !ok {
		return repositories.ErrPartidoNotFound
	}
	p.Estado = estado
	if resultado != nil {
		p.Resultado = resultado
	}
	f.partidos[id] = p
	return nil
}

func (f *fakePartidoRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.partidos[id]; !ok {
		return repositories.ErrPartidoNotFound
	}
	delete(f.partidos, id)
	return nil
}

type fakeJugadorRepo struct {
	mu        sync.Mutex
	jugadores map[int]models.Jugador
	activos   []int
	nextID    int
}

func newFakeJugadorRepo(activosIDs ...int) *fakeJugadorRepo {
	jugadores := make(map[int]models.Jugador, len(activosIDs))
	for _, id := range activosIDs {
		jugadores[id] = models.Jugador{ID: id, UsuarioID: id}
	}
	return &fakeJugadorRepo{jugadores: jugadores, activos: activosIDs, nextID: len(activosIDs)}
}

func (f *fakeJugadorRepo) Create(ctx context.Context, exec repositories.SQLExecutor, j *models.Jugador) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	j.ID = f.nextID
	f.jugadores[j.ID] = *j
	return nil
}

func (f *fakeJugadorRepo) GetByID(ctx context.Context, id int) (*models.Jugador, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j, ok := f.jugadores[id]; ok {
		return &j, nil
	}
	return nil, repositories.ErrJugadorNotFound
}

func (f *fakeJugadorRepo) GetByUsuarioID(ctx context.Context, usuarioID int) (*models.Jugador, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jugadores {
		if j.UsuarioID == usuarioID {
			return &j, nil
		}
	}
	return nil, repositories.ErrJugadorNotFound
}

func (f *fakeJugadorRepo) List(ctx context.Context, soloActivos bool) ([]models.Jugador, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var resultado []models.Jugador
	for _, j := range f.jugadores {
		resultado = append(resultado, j)
	}
	return resultado, nil
}

func (f *fakeJugadorRepo) ListActivosIDs(ctx context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.activos...), nil
}

func (f *fakeJugadorRepo) Update(ctx context.Context, j *models.Jugador) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jugadores[j.ID]; !ok {
		return repositories.ErrJugadorNotFound
	}
	f.jugadores[j.ID] = *j
	return nil
}

func (f *fakeJugadorRepo) UpdateFotoKey(ctx context.Context, id int, fotoKey *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jugadores[id]
	if !ok {
		return repositories.ErrJugadorNotFound
	}
	j.FotoKey = fotoKey
	f.jugadores[id] = j
	return nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	mensajes map[string][]interface{}
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{mensajes: make(map[string][]interface{})}
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mensajes[roomID] = append(f.mensajes[roomID], message)
}

func (f *fakeBroadcaster) enviados(roomID string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mensajes[roomID]
}
