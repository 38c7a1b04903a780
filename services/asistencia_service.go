package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
)

type AsistenciaService interface {
	Registrar(ctx context.Context, input RegistrarAsistenciaInput) (*models.Asistencia, error)
	ListarPorEvento(ctx context.Context, tipo models.TipoEvento, eventoID int) ([]models.Asistencia, error)
	MisEntrenamientos(ctx context.Context, jugadorID int) ([]EventoConAsistencia, error)
	MisPartidos(ctx context.Context, jugadorID int) ([]EventoConAsistencia, error)
}

type RegistrarAsistenciaInput struct {
	JugadorID        int
	EventoID         int
	Tipo             models.TipoEvento
	Estado           models.EstadoAsistencia
	MotivoAusenciaID *int
	Comentario       *string

	// PermitirAusenciaSinMotivo relaja la regla no_asiste→motivo para el
	// registro hecho por un gestor, que puede anotar la ausencia antes de
	// conocer la razón.
	PermitirAusenciaSinMotivo bool
}

// EventoConAsistencia es la vista "mis eventos": el evento más el estado de
// respuesta del jugador.
type EventoConAsistencia struct {
	Entrenamiento *models.Entrenamiento `json:"entrenamiento,omitempty"`
	Partido       *models.Partido       `json:"partido,omitempty"`
	Asistencia    models.Asistencia     `json:"asistencia"`
}

type asistenciaService struct {
	asistenciaEnt     repositories.AsistenciaRepository
	asistenciaPar     repositories.AsistenciaRepository
	entrenamientoRepo repositories.EntrenamientoRepository
	partidoRepo       repositories.PartidoRepository
	motivoRepo        repositories.MotivoAusenciaRepository
}

func NewAsistenciaService(
	asistenciaEnt repositories.AsistenciaRepository,
	asistenciaPar repositories.AsistenciaRepository,
	entrenamientoRepo repositories.EntrenamientoRepository,
	partidoRepo repositories.PartidoRepository,
	motivoRepo repositories.MotivoAusenciaRepository,
) AsistenciaService {
	return &asistenciaService{
		asistenciaEnt:     asistenciaEnt,
		asistenciaPar:     asistenciaPar,
		entrenamientoRepo: entrenamientoRepo,
		partidoRepo:       partidoRepo,
		motivoRepo:        motivoRepo,
	}
}

// Registrar valida la respuesta y hace upsert sobre (evento, jugador).
// Idempotente: repetir la llamada con los mismos argumentos deja la misma
// fila (sólo se refresca fecha_respuesta).
func (s *asistenciaService) Registrar(ctx context.Context, input RegistrarAsistenciaInput) (*models.Asistencia, error) {
	if !input.Estado.EsValido() {
		return nil, fmt.Errorf("%w: %q", ErrEstadoAsistenciaInvalido, input.Estado)
	}
	if input.Estado.EsAusencia() && input.MotivoAusenciaID == nil && !input.PermitirAusenciaSinMotivo {
		return nil, ErrMotivoRequerido
	}
	if input.Estado.EsPendiente() && input.MotivoAusenciaID != nil {
		return nil, ErrMotivoNoPermitido
	}
	if input.MotivoAusenciaID != nil {
		if _, err := s.motivoRepo.GetByID(ctx, *input.MotivoAusenciaID); err != nil {
			if errors.Is(err, repositories.ErrMotivoNotFound) {
				return nil, ErrMotivoNotFound
			}
			return nil, err
		}
	}

	repo, err := s.repoFor(input.Tipo)
	if err != nil {
		return nil, err
	}

	asistencia := &models.Asistencia{
		EventoID:         input.EventoID,
		JugadorID:        input.JugadorID,
		Estado:           input.Estado,
		MotivoAusenciaID: input.MotivoAusenciaID,
		Comentario:       input.Comentario,
	}
	if err := repo.Upsert(ctx, asistencia); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAsistenciaEventoInvalid):
			return nil, s.eventoNotFound(input.Tipo)
		case errors.Is(err, repositories.ErrAsistenciaJugadorInvalid):
			return nil, ErrJugadorNotFound
		case errors.Is(err, repositories.ErrAsistenciaMotivoInvalid):
			return nil, ErrMotivoNotFound
		}
		return nil, err
	}
	return asistencia, nil
}

func (s *asistenciaService) ListarPorEvento(ctx context.Context, tipo models.TipoEvento, eventoID int) ([]models.Asistencia, error) {
	repo, err := s.repoFor(tipo)
	if err != nil {
		return nil, err
	}
	return repo.ListByEvento(ctx, eventoID)
}

// MisEntrenamientos lista los entrenamientos futuros del jugador con su
// respuesta. Siembra la fila pendiente si no existe todavía (respaldo
// perezoso del fan-out, insert-if-absent).
func (s *asistenciaService) MisEntrenamientos(ctx context.Context, jugadorID int) ([]EventoConAsistencia, error) {
	entrenamientos, err := s.entrenamientoRepo.ListDesde(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	eventoIDs := make([]int, 0, len(entrenamientos))
	for _, e := range entrenamientos {
		if err := s.asistenciaEnt.SeedPendiente(ctx, e.ID, jugadorID); err != nil {
			return nil, err
		}
		eventoIDs = append(eventoIDs, e.ID)
	}

	respuestas, err := s.asistenciaEnt.ListByJugador(ctx, jugadorID, eventoIDs)
	if err != nil {
		return nil, err
	}

	resultado := make([]EventoConAsistencia, 0, len(entrenamientos))
	for i := range entrenamientos {
		e := entrenamientos[i]
		resultado = append(resultado, EventoConAsistencia{
			Entrenamiento: &e,
			Asistencia:    respuestas[e.ID],
		})
	}
	return resultado, nil
}

func (s *asistenciaService) MisPartidos(ctx context.Context, jugadorID int) ([]EventoConAsistencia, error) {
	partidos, err := s.partidoRepo.ListDesde(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	eventoIDs := make([]int, 0, len(partidos))
	for _, p := range partidos {
		if err := s.asistenciaPar.SeedPendiente(ctx, p.ID, jugadorID); err != nil {
			return nil, err
		}
		eventoIDs = append(eventoIDs, p.ID)
	}

	respuestas, err := s.asistenciaPar.ListByJugador(ctx, jugadorID, eventoIDs)
	if err != nil {
		return nil, err
	}

	resultado := make([]EventoConAsistencia, 0, len(partidos))
	for i := range partidos {
		p := partidos[i]
		resultado = append(resultado, EventoConAsistencia{
			Partido:    &p,
			Asistencia: respuestas[p.ID],
		})
	}
	return resultado, nil
}

func (s *asistenciaService) repoFor(tipo models.TipoEvento) (repositories.AsistenciaRepository, error) {
	switch tipo {
	case models.EventoEntrenamiento:
		return s.asistenciaEnt, nil
	case models.EventoPartido:
		return s.asistenciaPar, nil
	}
	return nil, fmt.Errorf("%w: tipo de evento %q", ErrValidationFailed, tipo)
}

func (s *asistenciaService) eventoNotFound(tipo models.TipoEvento) error {
	if tipo == models.EventoPartido {
		return ErrPartidoNotFound
	}
	return ErrEntrenamientoNotFound
}
