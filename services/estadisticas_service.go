package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
)

type EstadisticasService interface {
	Finalizar(ctx context.Context, partidoID int, input FinalizarPartidoInput) (*models.ActaPartido, error)
	ObtenerActa(ctx context.Context, partidoID int) (*models.ActaPartido, error)
}

// FinalizarPartidoInput es el volcado del acta calculada por el cliente.
// Se persiste tal cual: no se cruzan los contadores agregados con la
// cronología.
type FinalizarPartidoInput struct {
	Resultado     string                    `json:"resultado"`
	Resumen       ResumenInput              `json:"resumen"`
	Jugadores     []EstadisticaJugadorInput `json:"jugadores"`
	Acciones      []AccionInput             `json:"acciones"`
	Tiempos       []TiempoJuegoInput        `json:"tiempos"`
	CuerpoTecnico []CuerpoTecnicoInput      `json:"cuerpo_tecnico"`
}

type ResumenInput struct {
	GolesLocal             int  `json:"goles_local"`
	GolesRival             int  `json:"goles_rival"`
	FaltasLocal            int  `json:"faltas_local"`
	FaltasRival            int  `json:"faltas_rival"`
	TarjetasAmarillasLocal int  `json:"tarjetas_amarillas_local"`
	TarjetasAmarillasRival int  `json:"tarjetas_amarillas_rival"`
	TarjetasRojasLocal     int  `json:"tarjetas_rojas_local"`
	TarjetasRojasRival     int  `json:"tarjetas_rojas_rival"`
	PosesionLocal          *int `json:"posesion_local,omitempty"`
	TirosLocal             *int `json:"tiros_local,omitempty"`
	TirosRival             *int `json:"tiros_rival,omitempty"`
}

type EstadisticaJugadorInput struct {
	JugadorID         int  `json:"jugador_id"`
	Minutos           int  `json:"minutos"`
	Goles             int  `json:"goles"`
	Asistencias       int  `json:"asistencias"`
	TarjetasAmarillas int  `json:"tarjetas_amarillas"`
	TarjetasRojas     int  `json:"tarjetas_rojas"`
	Titular           bool `json:"titular"`
}

type AccionInput struct {
	Tipo        models.TipoAccion `json:"tipo"`
	Minuto      int               `json:"minuto"`
	Parte       int               `json:"parte"`
	EquipoLocal bool              `json:"equipo_local"`
	JugadorID   *int              `json:"jugador_id,omitempty"`
	Descripcion *string           `json:"descripcion,omitempty"`
}

type TiempoJuegoInput struct {
	JugadorID     int  `json:"jugador_id"`
	MinutoEntrada int  `json:"minuto_entrada"`
	MinutoSalida  *int `json:"minuto_salida,omitempty"`
}

type CuerpoTecnicoInput struct {
	Nombre            string `json:"nombre"`
	RolTecnico        string `json:"rol_tecnico"`
	TarjetasAmarillas int    `json:"tarjetas_amarillas"`
	TarjetasRojas     int    `json:"tarjetas_rojas"`
}

type estadisticasService struct {
	db               *sql.DB
	partidoRepo      repositories.PartidoRepository
	estadisticasRepo repositories.EstadisticasRepository
	hub              EventBroadcaster
}

func NewEstadisticasService(
	db *sql.DB,
	partidoRepo repositories.PartidoRepository,
	estadisticasRepo repositories.EstadisticasRepository,
	hub EventBroadcaster,
) EstadisticasService {
	return &estadisticasService{
		db:               db,
		partidoRepo:      partidoRepo,
		estadisticasRepo: estadisticasRepo,
		hub:              hub,
	}
}

// Finalizar pasa el partido a finalizado y escribe las cinco tablas del
// acta en una única transacción.
func (s *estadisticasService) Finalizar(ctx context.Context, partidoID int, input FinalizarPartidoInput) (*models.ActaPartido, error) {
	if err := s.validar(input); err != nil {
		return nil, err
	}

	partido, err := s.partidoRepo.GetByID(ctx, partidoID)
	if err != nil {
		if errors.Is(err, repositories.ErrPartidoNotFound) {
			return nil, ErrPartidoNotFound
		}
		return nil, err
	}
	if partido.Estado == models.PartidoFinalizado {
		return nil, ErrPartidoYaFinalizado
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin finalización transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var resultado *string
	if input.Resultado != "" {
		resultado = &input.Resultado
	}
	if err = s.partidoRepo.UpdateEstado(ctx, tx, partidoID, models.PartidoFinalizado, resultado); err != nil {
		return nil, err
	}

	resumen := &models.EstadisticasPartido{
		PartidoID:              partidoID,
		GolesLocal:             input.Resumen.GolesLocal,
		GolesRival:             input.Resumen.GolesRival,
		FaltasLocal:            input.Resumen.FaltasLocal,
		FaltasRival:            input.Resumen.FaltasRival,
		TarjetasAmarillasLocal: input.Resumen.TarjetasAmarillasLocal,
		TarjetasAmarillasRival: input.Resumen.TarjetasAmarillasRival,
		TarjetasRojasLocal:     input.Resumen.TarjetasRojasLocal,
		TarjetasRojasRival:     input.Resumen.TarjetasRojasRival,
		PosesionLocal:          input.Resumen.PosesionLocal,
		TirosLocal:             input.Resumen.TirosLocal,
		TirosRival:             input.Resumen.TirosRival,
	}
	if err = s.estadisticasRepo.CreateResumen(ctx, tx, resumen); err != nil {
		return nil, err
	}

	jugadores := make([]models.EstadisticaJugadorPartido, 0, len(input.Jugadores))
	for _, j := range input.Jugadores {
		jugadores = append(jugadores, models.EstadisticaJugadorPartido{
			PartidoID:         partidoID,
			JugadorID:         j.JugadorID,
			Minutos:           j.Minutos,
			Goles:             j.Goles,
			Asistencias:       j.Asistencias,
			TarjetasAmarillas: j.TarjetasAmarillas,
			TarjetasRojas:     j.TarjetasRojas,
			Titular:           j.Titular,
		})
	}
	if err = s.estadisticasRepo.BatchCreateJugadores(ctx, tx, jugadores); err != nil {
		return nil, err
	}

	acciones := make([]models.AccionPartido, 0, len(input.Acciones))
	for _, a := range input.Acciones {
		acciones = append(acciones, models.AccionPartido{
			PartidoID:   partidoID,
			Tipo:        a.Tipo,
			Minuto:      a.Minuto,
			Parte:       a.Parte,
			EquipoLocal: a.EquipoLocal,
			JugadorID:   a.JugadorID,
			Descripcion: a.Descripcion,
		})
	}
	if err = s.estadisticasRepo.BatchCreateAcciones(ctx, tx, acciones); err != nil {
		return nil, err
	}

	tiempos := make([]models.TiempoJuego, 0, len(input.Tiempos))
	for _, t := range input.Tiempos {
		tiempos = append(tiempos, models.TiempoJuego{
			PartidoID:     partidoID,
			JugadorID:     t.JugadorID,
			MinutoEntrada: t.MinutoEntrada,
			MinutoSalida:  t.MinutoSalida,
		})
	}
	if err = s.estadisticasRepo.BatchCreateTiempos(ctx, tx, tiempos); err != nil {
		return nil, err
	}

	staff := make([]models.CuerpoTecnicoPartido, 0, len(input.CuerpoTecnico))
	for _, c := range input.CuerpoTecnico {
		staff = append(staff, models.CuerpoTecnicoPartido{
			PartidoID:         partidoID,
			Nombre:            c.Nombre,
			RolTecnico:        c.RolTecnico,
			TarjetasAmarillas: c.TarjetasAmarillas,
			TarjetasRojas:     c.TarjetasRojas,
		})
	}
	if err = s.estadisticasRepo.BatchCreateCuerpoTecnico(ctx, tx, staff); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit finalización: %w", err)
	}

	acta, err := s.ObtenerActa(ctx, partidoID)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(RoomPartido(partidoID), map[string]interface{}{
			"type":    "ACTA_FINALIZADA",
			"payload": acta,
		})
	}
	return acta, nil
}

// ObtenerActa reconstruye el informe del partido. Para un partido no
// finalizado no hay acta: es un not-found, no un error.
func (s *estadisticasService) ObtenerActa(ctx context.Context, partidoID int) (*models.ActaPartido, error) {
	partido, err := s.partidoRepo.GetByID(ctx, partidoID)
	if err != nil {
		if errors.Is(err, repositories.ErrPartidoNotFound) {
			return nil, ErrPartidoNotFound
		}
		return nil, err
	}

	resumen, err := s.estadisticasRepo.GetResumenByPartido(ctx, partidoID)
	if err != nil {
		if errors.Is(err, repositories.ErrEstadisticasNotFound) {
			return nil, ErrActaNotFound
		}
		return nil, err
	}

	jugadores, err := s.estadisticasRepo.ListJugadoresByPartido(ctx, partidoID)
	if err != nil {
		return nil, err
	}
	acciones, err := s.estadisticasRepo.ListAccionesByPartido(ctx, partidoID)
	if err != nil {
		return nil, err
	}
	tiempos, err := s.estadisticasRepo.ListTiemposByPartido(ctx, partidoID)
	if err != nil {
		return nil, err
	}
	staff, err := s.estadisticasRepo.ListCuerpoTecnicoByPartido(ctx, partidoID)
	if err != nil {
		return nil, err
	}

	acta := &models.ActaPartido{
		Partido:       partido,
		Resumen:       resumen,
		Jugadores:     jugadores,
		Acciones:      acciones,
		Tiempos:       tiempos,
		CuerpoTecnico: staff,
	}
	acta.CalcularFaltasPorParte()
	return acta, nil
}

func (s *estadisticasService) validar(input FinalizarPartidoInput) error {
	for _, a := range input.Acciones {
		if !a.Tipo.EsValido() {
			return fmt.Errorf("%w: tipo %q", ErrAccionInvalida, a.Tipo)
		}
		if a.Parte != 1 && a.Parte != 2 {
			return fmt.Errorf("%w: parte %d", ErrAccionInvalida, a.Parte)
		}
		if a.Minuto < 0 {
			return fmt.Errorf("%w: minuto %d", ErrAccionInvalida, a.Minuto)
		}
	}
	for _, c := range input.CuerpoTecnico {
		if c.Nombre == "" {
			return fmt.Errorf("%w: %w", ErrValidationFailed, ErrNombreRequerido)
		}
	}
	return nil
}
