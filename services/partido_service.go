package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
)

// EventBroadcaster es lo que los servicios necesitan del hub websocket.
type EventBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type PartidoService interface {
	Crear(ctx context.Context, input CrearPartidoInput) (*models.Partido, error)
	Obtener(ctx context.Context, id int) (*models.Partido, error)
	Listar(ctx context.Context, filtro repositories.EventoFiltro) ([]models.Partido, error)
	Proximos(ctx context.Context, limit int) ([]models.Partido, error)
	Actualizar(ctx context.Context, id int, input ActualizarPartidoInput) (*models.Partido, error)
	ActualizarResultado(ctx context.Context, id int, resultado string) (*models.Partido, error)
	Eliminar(ctx context.Context, id int) error
}

type CrearPartidoInput struct {
	Fecha         string             `json:"fecha"`
	Hora          string             `json:"hora"`
	Rival         string             `json:"rival"`
	Lugar         string             `json:"lugar"`
	Tipo          models.TipoPartido `json:"tipo"`
	EsLocal       bool               `json:"es_local"`
	Observaciones *string            `json:"observaciones,omitempty"`
	CreadoPor     int                `json:"-"`
}

type ActualizarPartidoInput struct {
	Fecha         *string             `json:"fecha,omitempty"`
	Hora          *string             `json:"hora,omitempty"`
	Rival         *string             `json:"rival,omitempty"`
	Lugar         *string             `json:"lugar,omitempty"`
	Tipo          *models.TipoPartido `json:"tipo,omitempty"`
	EsLocal       *bool               `json:"es_local,omitempty"`
	Observaciones *string             `json:"observaciones,omitempty"`
}

type partidoService struct {
	partidoRepo repositories.PartidoRepository
	fanout      *RosterFanout
	hub         EventBroadcaster
}

func NewPartidoService(partidoRepo repositories.PartidoRepository, fanout *RosterFanout, hub EventBroadcaster) PartidoService {
	return &partidoService{
		partidoRepo: partidoRepo,
		fanout:      fanout,
		hub:         hub,
	}
}

func (s *partidoService) Crear(ctx context.Context, input CrearPartidoInput) (*models.Partido, error) {
	if input.Fecha == "" || input.Hora == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrFechaRequerida)
	}
	if input.Lugar == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrLugarRequerido)
	}
	if input.Rival == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrRivalRequerido)
	}
	if input.Tipo == "" {
		input.Tipo = models.PartidoAmistoso
	}
	if !input.Tipo.EsValido() {
		return nil, fmt.Errorf("%w: %q", ErrTipoPartidoInvalido, input.Tipo)
	}
	fechaHora, err := models.ParseFechaHora(input.Fecha, input.Hora)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	partido := &models.Partido{
		FechaHora:     fechaHora.Time(),
		Rival:         input.Rival,
		Lugar:         input.Lugar,
		Tipo:          input.Tipo,
		EsLocal:       input.EsLocal,
		Observaciones: input.Observaciones,
		Estado:        models.PartidoProgramado,
		CreadoPor:     input.CreadoPor,
	}
	if err := s.partidoRepo.Create(ctx, partido); err != nil {
		return nil, err
	}

	if s.fanout != nil {
		go s.fanout.SeedEvento(context.Background(), models.EventoPartido, partido.ID)
	}
	return partido, nil
}

func (s *partidoService) Obtener(ctx context.Context, id int) (*models.Partido, error) {
	partido, err := s.partidoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPartidoNotFound) {
			return nil, ErrPartidoNotFound
		}
		return nil, err
	}
	return partido, nil
}

func (s *partidoService) Listar(ctx context.Context, filtro repositories.EventoFiltro) ([]models.Partido, error) {
	return s.partidoRepo.List(ctx, filtro)
}

func (s *partidoService) Proximos(ctx context.Context, limit int) ([]models.Partido, error) {
	return s.partidoRepo.ListProximos(ctx, limit)
}

func (s *partidoService) Actualizar(ctx context.Context, id int, input ActualizarPartidoInput) (*models.Partido, error) {
	partido, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Fecha != nil || input.Hora != nil {
		fecha := partido.FechaHora.Format("2006-01-02")
		hora := partido.FechaHora.Format("15:04")
		if input.Fecha != nil {
			fecha = *input.Fecha
		}
		if input.Hora != nil {
			hora = *input.Hora
		}
		fechaHora, parseErr := models.ParseFechaHora(fecha, hora)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, parseErr)
		}
		partido.FechaHora = fechaHora.Time()
	}
	if input.Rival != nil {
		if *input.Rival == "" {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrRivalRequerido)
		}
		partido.Rival = *input.Rival
	}
	if input.Lugar != nil {
		if *input.Lugar == "" {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrLugarRequerido)
		}
		partido.Lugar = *input.Lugar
	}
	if input.Tipo != nil {
		if !input.Tipo.EsValido() {
			return nil, fmt.Errorf("%w: %q", ErrTipoPartidoInvalido, *input.Tipo)
		}
		partido.Tipo = *input.Tipo
	}
	if input.EsLocal != nil {
		partido.EsLocal = *input.EsLocal
	}
	if input.Observaciones != nil {
		partido.Observaciones = input.Observaciones
	}

	if err := s.partidoRepo.Update(ctx, partido); err != nil {
		if errors.Is(err, repositories.ErrPartidoNotFound) {
			return nil, ErrPartidoNotFound
		}
		return nil, err
	}
	return partido, nil
}

func (s *partidoService) ActualizarResultado(ctx context.Context, id int, resultado string) (*models.Partido, error) {
	if resultado == "" {
		return nil, fmt.Errorf("%w: resultado vacío", ErrValidationFailed)
	}
	if err := s.partidoRepo.UpdateResultado(ctx, id, resultado); err != nil {
		if errors.Is(err, repositories.ErrPartidoNotFound) {
			return nil, ErrPartidoNotFound
		}
		return nil, err
	}
	partido, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(RoomPartido(id), map[string]interface{}{
			"type":    "RESULTADO_ACTUALIZADO",
			"payload": partido,
		})
	}
	return partido, nil
}

func (s *partidoService) Eliminar(ctx context.Context, id int) error {
	err := s.partidoRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrPartidoNotFound) {
		return ErrPartidoNotFound
	}
	return err
}

// RoomPartido es el nombre de la sala websocket de un partido.
func RoomPartido(partidoID int) string {
	return fmt.Sprintf("partido_%d", partidoID)
}
