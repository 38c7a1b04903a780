package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adrifdez/club-manager/models"
	"github.com/lib/pq"
)

var (
	ErrAsistenciaNotFound       = errors.New("asistencia not found")
	ErrAsistenciaEventoInvalid  = errors.New("asistencia evento conflict or invalid")
	ErrAsistenciaJugadorInvalid = errors.New("asistencia jugador conflict or invalid")
	ErrAsistenciaMotivoInvalid  = errors.New("asistencia motivo conflict or invalid")
)

// AsistenciaRepository está implementado dos veces sobre la misma forma de
// tabla: asistencias_entrenamiento y asistencias_partido.
type AsistenciaRepository interface {
	// Upsert inserta la fila o, si ya existe el par (evento, jugador),
	// sobrescribe estado/motivo/comentario y refresca fecha_respuesta.
	Upsert(ctx context.Context, asistencia *models.Asistencia) error
	// SeedPendiente inserta una fila pendiente si no existe ya
	// (ON CONFLICT DO NOTHING). Idempotente por diseño.
	SeedPendiente(ctx context.Context, eventoID, jugadorID int) error
	GetByEventoAndJugador(ctx context.Context, eventoID, jugadorID int) (*models.Asistencia, error)
	ListByEvento(ctx context.Context, eventoID int) ([]models.Asistencia, error)
	ListByJugador(ctx context.Context, jugadorID int, eventoIDs []int) (map[int]models.Asistencia, error)
}

type postgresAsistenciaRepository struct {
	db    *sql.DB
	tabla string
	fkCol string // entrenamiento_id o partido_id
}

func NewPostgresAsistenciaEntrenamientoRepository(db *sql.DB) AsistenciaRepository {
	return &postgresAsistenciaRepository{db: db, tabla: "asistencias_entrenamiento", fkCol: "entrenamiento_id"}
}

func NewPostgresAsistenciaPartidoRepository(db *sql.DB) AsistenciaRepository {
	return &postgresAsistenciaRepository{db: db, tabla: "asistencias_partido", fkCol: "partido_id"}
}

func (r *postgresAsistenciaRepository) Upsert(ctx context.Context, asistencia *models.Asistencia) error {
	// ON CONFLICT resuelve las escrituras concurrentes al mismo par
	// (evento, jugador) con semántica last-write-wins; no hay bloqueos
	// ni versionado aparte de la restricción UNIQUE.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, jugador_id, estado, motivo_ausencia_id, comentario, fecha_respuesta)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (%s, jugador_id) DO UPDATE SET
			estado = EXCLUDED.estado,
			motivo_ausencia_id = EXCLUDED.motivo_ausencia_id,
			comentario = EXCLUDED.comentario,
			fecha_respuesta = NOW()
		RETURNING id, fecha_respuesta`, r.tabla, r.fkCol, r.fkCol)

	err := r.db.QueryRowContext(ctx, query,
		asistencia.EventoID,
		asistencia.JugadorID,
		asistencia.Estado,
		asistencia.MotivoAusenciaID,
		asistencia.Comentario,
	).Scan(&asistencia.ID, &asistencia.FechaRespuesta)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case r.tabla + "_" + r.fkCol + "_fkey":
				return ErrAsistenciaEventoInvalid
			case r.tabla + "_jugador_id_fkey":
				return ErrAsistenciaJugadorInvalid
			case r.tabla + "_motivo_ausencia_id_fkey":
				return ErrAsistenciaMotivoInvalid
			}
		}
		return fmt.Errorf("failed to upsert asistencia in %s: %w", r.tabla, err)
	}
	return nil
}

func (r *postgresAsistenciaRepository) SeedPendiente(ctx context.Context, eventoID, jugadorID int) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, jugador_id, estado)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, jugador_id) DO NOTHING`, r.tabla, r.fkCol, r.fkCol)

	_, err := r.db.ExecContext(ctx, query, eventoID, jugadorID, models.AsistenciaPendiente)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case r.tabla + "_" + r.fkCol + "_fkey":
				return ErrAsistenciaEventoInvalid
			case r.tabla + "_jugador_id_fkey":
				return ErrAsistenciaJugadorInvalid
			}
		}
		return fmt.Errorf("failed to seed asistencia in %s: %w", r.tabla, err)
	}
	return nil
}

func (r *postgresAsistenciaRepository) GetByEventoAndJugador(ctx context.Context, eventoID, jugadorID int) (*models.Asistencia, error) {
	query := fmt.Sprintf(`
		SELECT id, %s, jugador_id, estado, motivo_ausencia_id, comentario, fecha_respuesta
		FROM %s
		WHERE %s = $1 AND jugador_id = $2`, r.fkCol, r.tabla, r.fkCol)

	a := &models.Asistencia{}
	err := r.db.QueryRowContext(ctx, query, eventoID, jugadorID).Scan(
		&a.ID, &a.EventoID, &a.JugadorID, &a.Estado, &a.MotivoAusenciaID, &a.Comentario, &a.FechaRespuesta,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAsistenciaNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListByEvento devuelve las asistencias de un evento con el jugador anidado,
// ordenadas por dorsal para la vista de convocatoria.
func (r *postgresAsistenciaRepository) ListByEvento(ctx context.Context, eventoID int) ([]models.Asistencia, error) {
	query := fmt.Sprintf(`
		SELECT
			a.id, a.%s, a.jugador_id, a.estado, a.motivo_ausencia_id, a.comentario, a.fecha_respuesta,
			j.numero_dorsal, j.alias, u.nombre,
			m.id, m.nombre
		FROM %s a
		JOIN jugadores j ON a.jugador_id = j.id
		JOIN usuarios u ON j.usuario_id = u.id
		LEFT JOIN motivos_ausencia m ON a.motivo_ausencia_id = m.id
		WHERE a.%s = $1
		ORDER BY j.numero_dorsal NULLS LAST, u.nombre ASC`, r.fkCol, r.tabla, r.fkCol)

	rows, err := r.db.QueryContext(ctx, query, eventoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	asistencias := make([]models.Asistencia, 0)
	for rows.Next() {
		var a models.Asistencia
		var jugador models.Jugador
		var usuario models.Usuario
		var motivoID sql.NullInt64
		var motivoNombre sql.NullString

		err := rows.Scan(
			&a.ID, &a.EventoID, &a.JugadorID, &a.Estado, &a.MotivoAusenciaID, &a.Comentario, &a.FechaRespuesta,
			&jugador.NumeroDorsal, &jugador.Alias, &usuario.Nombre,
			&motivoID, &motivoNombre,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asistencia from %s: %w", r.tabla, err)
		}

		jugador.ID = a.JugadorID
		jugador.Usuario = &usuario
		a.Jugador = &jugador
		if motivoID.Valid {
			a.Motivo = &models.MotivoAusencia{ID: int(motivoID.Int64), Nombre: motivoNombre.String}
		}
		asistencias = append(asistencias, a)
	}
	return asistencias, rows.Err()
}

// ListByJugador devuelve las respuestas de un jugador a un conjunto de
// eventos, indexadas por evento.
func (r *postgresAsistenciaRepository) ListByJugador(ctx context.Context, jugadorID int, eventoIDs []int) (map[int]models.Asistencia, error) {
	result := make(map[int]models.Asistencia, len(eventoIDs))
	if len(eventoIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT id, %s, jugador_id, estado, motivo_ausencia_id, comentario, fecha_respuesta
		FROM %s
		WHERE jugador_id = $1 AND %s = ANY($2)`, r.fkCol, r.tabla, r.fkCol)

	rows, err := r.db.QueryContext(ctx, query, jugadorID, pq.Array(eventoIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Asistencia
		if err := rows.Scan(&a.ID, &a.EventoID, &a.JugadorID, &a.Estado, &a.MotivoAusenciaID, &a.Comentario, &a.FechaRespuesta); err != nil {
			return nil, err
		}
		result[a.EventoID] = a
	}
	return result, rows.Err()
}
