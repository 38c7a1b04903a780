package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
)

type EntrenamientoService interface {
	Crear(ctx context.Context, input CrearEntrenamientoInput) (*models.Entrenamiento, error)
	Obtener(ctx context.Context, id int) (*models.Entrenamiento, error)
	Listar(ctx context.Context, filtro repositories.EventoFiltro) ([]models.Entrenamiento, error)
	Actualizar(ctx context.Context, id int, input ActualizarEntrenamientoInput) (*models.Entrenamiento, error)
	Eliminar(ctx context.Context, id int) error
}

type CrearEntrenamientoInput struct {
	Fecha           string  `json:"fecha"` // 2006-01-02
	Hora            string  `json:"hora"`  // 15:04
	Lugar           string  `json:"lugar"`
	Descripcion     *string `json:"descripcion,omitempty"`
	DuracionMinutos *int    `json:"duracion_minutos,omitempty"`
	CreadoPor       int     `json:"-"`
}

// ActualizarEntrenamientoInput admite conjuntos parciales de campos;
// los punteros a nil dejan el valor actual.
type ActualizarEntrenamientoInput struct {
	Fecha           *string `json:"fecha,omitempty"`
	Hora            *string `json:"hora,omitempty"`
	Lugar           *string `json:"lugar,omitempty"`
	Descripcion     *string `json:"descripcion,omitempty"`
	DuracionMinutos *int    `json:"duracion_minutos,omitempty"`
}

type entrenamientoService struct {
	entrenamientoRepo repositories.EntrenamientoRepository
	fanout            *RosterFanout
}

func NewEntrenamientoService(entrenamientoRepo repositories.EntrenamientoRepository, fanout *RosterFanout) EntrenamientoService {
	return &entrenamientoService{
		entrenamientoRepo: entrenamientoRepo,
		fanout:            fanout,
	}
}

func (s *entrenamientoService) Crear(ctx context.Context, input CrearEntrenamientoInput) (*models.Entrenamiento, error) {
	if input.Fecha == "" || input.Hora == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrFechaRequerida)
	}
	if input.Lugar == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrLugarRequerido)
	}
	fechaHora, err := models.ParseFechaHora(input.Fecha, input.Hora)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	entrenamiento := &models.Entrenamiento{
		FechaHora:       fechaHora.Time(),
		Lugar:           input.Lugar,
		Descripcion:     input.Descripcion,
		DuracionMinutos: input.DuracionMinutos,
		CreadoPor:       input.CreadoPor,
	}
	if err := s.entrenamientoRepo.Create(ctx, entrenamiento); err != nil {
		return nil, err
	}

	// El sembrado es colateral: su fallo no deshace la creación.
	if s.fanout != nil {
		go s.fanout.SeedEvento(context.Background(), models.EventoEntrenamiento, entrenamiento.ID)
	}
	return entrenamiento, nil
}

func (s *entrenamientoService) Obtener(ctx context.Context, id int) (*models.Entrenamiento, error) {
	entrenamiento, err := s.entrenamientoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEntrenamientoNotFound) {
			return nil, ErrEntrenamientoNotFound
		}
		return nil, err
	}
	return entrenamiento, nil
}

func (s *entrenamientoService) Listar(ctx context.Context, filtro repositories.EventoFiltro) ([]models.Entrenamiento, error) {
	return s.entrenamientoRepo.List(ctx, filtro)
}

func (s *entrenamientoService) Actualizar(ctx context.Context, id int, input ActualizarEntrenamientoInput) (*models.Entrenamiento, error) {
	entrenamiento, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Fecha != nil || input.Hora != nil {
		fecha := entrenamiento.FechaHora.Format("2006-01-02")
		hora := entrenamiento.FechaHora.Format("15:04")
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
		entrenamiento.FechaHora = fechaHora.Time()
	}
	if input.Lugar != nil {
		if *input.Lugar == "" {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrLugarRequerido)
		}
		entrenamiento.Lugar = *input.Lugar
	}
	if input.Descripcion != nil {
		entrenamiento.Descripcion = input.Descripcion
	}
	if input.DuracionMinutos != nil {
		entrenamiento.DuracionMinutos = input.DuracionMinutos
	}

	if err := s.entrenamientoRepo.Update(ctx, entrenamiento); err != nil {
		if errors.Is(err, repositories.ErrEntrenamientoNotFound) {
			return nil, ErrEntrenamientoNotFound
		}
		return nil, err
	}
	return entrenamiento, nil
}

func (s *entrenamientoService) Eliminar(ctx context.Context, id int) error {
	err := s.entrenamientoRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrEntrenamientoNotFound) {
		return ErrEntrenamientoNotFound
	}
	return err
}
