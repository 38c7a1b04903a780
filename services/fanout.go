package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
	"golang.org/x/sync/errgroup"
)

// seedConcurrency acota las inserciones concurrentes del sembrado.
// Plantillas y calendarios son de decenas de filas, no hace falta más.
const seedConcurrency = 4

// RosterFanout siembra filas de asistencia "pendiente": para todos los
// jugadores activos cuando se crea un evento, y para todos los eventos
// futuros cuando se da de alta un jugador.
//
// Es best-effort por contrato: los fallos se registran y se tragan, nunca
// se propagan a la operación de creación que lo disparó. Una fila que no
// llegó a sembrarse se crea perezosamente al consultar "mis eventos".
type RosterFanout struct {
	jugadorRepo       repositories.JugadorRepository
	entrenamientoRepo repositories.EntrenamientoRepository
	partidoRepo       repositories.PartidoRepository
	asistenciaEnt     repositories.AsistenciaRepository
	asistenciaPar     repositories.AsistenciaRepository
	logger            *slog.Logger
}

func NewRosterFanout(
	jugadorRepo repositories.JugadorRepository,
	entrenamientoRepo repositories.EntrenamientoRepository,
	partidoRepo repositories.PartidoRepository,
	asistenciaEnt repositories.AsistenciaRepository,
	asistenciaPar repositories.AsistenciaRepository,
	logger *slog.Logger,
) *RosterFanout {
	return &RosterFanout{
		jugadorRepo:       jugadorRepo,
		entrenamientoRepo: entrenamientoRepo,
		partidoRepo:       partidoRepo,
		asistenciaEnt:     asistenciaEnt,
		asistenciaPar:     asistenciaPar,
		logger:            logger,
	}
}

// SeedEvento crea una asistencia pendiente por cada jugador activo.
func (f *RosterFanout) SeedEvento(ctx context.Context, tipo models.TipoEvento, eventoID int) {
	repo := f.repoFor(tipo)
	if repo == nil {
		f.logger.Error("fanout: tipo de evento desconocido", slog.String("tipo", string(tipo)))
		return
	}

	jugadorIDs, err := f.jugadorRepo.ListActivosIDs(ctx)
	if err != nil {
		f.logger.Error("fanout: failed to list active jugadores",
			slog.String("tipo", string(tipo)),
			slog.Int("evento_id", eventoID),
			slog.Any("error", err))
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, jugadorID := range jugadorIDs {
		jugadorID := jugadorID
		g.Go(func() error {
			if err := repo.SeedPendiente(gctx, eventoID, jugadorID); err != nil {
				// Se registra y se sigue: el resto del sembrado no depende
				// de esta fila.
				f.logger.Warn("fanout: failed to seed asistencia",
					slog.String("tipo", string(tipo)),
					slog.Int("evento_id", eventoID),
					slog.Int("jugador_id", jugadorID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()

	f.logger.Info("fanout: evento sembrado",
		slog.String("tipo", string(tipo)),
		slog.Int("evento_id", eventoID),
		slog.Int("jugadores", len(jugadorIDs)))
}

// SeedJugador crea una asistencia pendiente por cada evento futuro.
func (f *RosterFanout) SeedJugador(ctx context.Context, jugadorID int) {
	ahora := time.Now()

	entrenamientos, err := f.entrenamientoRepo.ListDesde(ctx, ahora)
	if err != nil {
		f.logger.Error("fanout: failed to list future entrenamientos",
			slog.Int("jugador_id", jugadorID), slog.Any("error", err))
	} else {
		for _, e := range entrenamientos {
			if err := f.asistenciaEnt.SeedPendiente(ctx, e.ID, jugadorID); err != nil {
				f.logger.Warn("fanout: failed to seed asistencia de entrenamiento",
					slog.Int("entrenamiento_id", e.ID),
					slog.Int("jugador_id", jugadorID),
					slog.Any("error", err))
			}
		}
	}

	partidos, err := f.partidoRepo.ListDesde(ctx, ahora)
	if err != nil {
		f.logger.Error("fanout: failed to list future partidos",
			slog.Int("jugador_id", jugadorID), slog.Any("error", err))
		return
	}
	for _, p := range partidos {
		if err := f.asistenciaPar.SeedPendiente(ctx, p.ID, jugadorID); err != nil {
			f.logger.Warn("fanout: failed to seed asistencia de partido",
				slog.Int("partido_id", p.ID),
				slog.Int("jugador_id", jugadorID),
				slog.Any("error", err))
		}
	}
}

func (f *RosterFanout) repoFor(tipo models.TipoEvento) repositories.AsistenciaRepository {
	switch tipo {
	case models.EventoEntrenamiento:
		return f.asistenciaEnt
	case models.EventoPartido:
		return f.asistenciaPar
	}
	return nil
}
