package services

import (
	"context"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
)

// CatalogoService expone los catálogos estáticos (posiciones y motivos de
// ausencia) que consumen los formularios del cliente.
type CatalogoService interface {
	ListarPosiciones(ctx context.Context) ([]models.Posicion, error)
	ListarMotivos(ctx context.Context) ([]models.MotivoAusencia, error)
}

type catalogoService struct {
	posicionRepo repositories.PosicionRepository
	motivoRepo   repositories.MotivoAusenciaRepository
}

func NewCatalogoService(posicionRepo repositories.PosicionRepository, motivoRepo repositories.MotivoAusenciaRepository) CatalogoService {
	return &catalogoService{posicionRepo: posicionRepo, motivoRepo: motivoRepo}
}

func (s *catalogoService) ListarPosiciones(ctx context.Context) ([]models.Posicion, error) {
	return s.posicionRepo.List(ctx)
}

func (s *catalogoService) ListarMotivos(ctx context.Context) ([]models.MotivoAusencia, error) {
	return s.motivoRepo.List(ctx)
}
