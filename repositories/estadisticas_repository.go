package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/adrifdez/club-manager/models"
	"github.com/lib/pq"
)

var (
	ErrEstadisticasNotFound       = errors.New("estadisticas not found for partido")
	ErrEstadisticasJugadorInvalid = errors.New("estadisticas jugador conflict or invalid")
	ErrEstadisticasPartidoInvalid = errors.New("estadisticas partido conflict or invalid")
)

// EstadisticasRepository persiste las cinco tablas del acta. Los métodos de
// escritura aceptan SQLExecutor porque la finalización corre en una única
// transacción gestionada por el servicio.
type EstadisticasRepository interface {
	CreateResumen(ctx context.Context, exec SQLExecutor, resumen *models.EstadisticasPartido) error
	BatchCreateJugadores(ctx context.Context, exec SQLExecutor, stats []models.EstadisticaJugadorPartido) error
	BatchCreateAcciones(ctx context.Context, exec SQLExecutor, acciones []models.AccionPartido) error
	BatchCreateTiempos(ctx context.Context, exec SQLExecutor, tiempos []models.TiempoJuego) error
	BatchCreateCuerpoTecnico(ctx context.Context, exec SQLExecutor, staff []models.CuerpoTecnicoPartido) error

	GetResumenByPartido(ctx context.Context, partidoID int) (*models.EstadisticasPartido, error)
	ListJugadoresByPartido(ctx context.Context, partidoID int) ([]models.EstadisticaJugadorPartido, error)
	ListAccionesByPartido(ctx context.Context, partidoID int) ([]models.AccionPartido, error)
	ListTiemposByPartido(ctx context.Context, partidoID int) ([]models.TiempoJuego, error)
	ListCuerpoTecnicoByPartido(ctx context.Context, partidoID int) ([]models.CuerpoTecnicoPartido, error)
}

type postgresEstadisticasRepository struct {
	db *sql.DB
}

func NewPostgresEstadisticasRepository(db *sql.DB) EstadisticasRepository {
	return &postgresEstadisticasRepository{db: db}
}

func (r *postgresEstadisticasRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func mapEstadisticasFK(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		switch {
		case strings.HasSuffix(pqErr.Constraint, "jugador_id_fkey"):
			return ErrEstadisticasJugadorInvalid
		case strings.HasSuffix(pqErr.Constraint, "partido_id_fkey"):
			return ErrEstadisticasPartidoInvalid
		}
	}
	return err
}

func (r *postgresEstadisticasRepository) CreateResumen(ctx context.Context, exec SQLExecutor, resumen *models.EstadisticasPartido) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO estadisticas_partido
			(partido_id, goles_local, goles_rival, faltas_local, faltas_rival,
			 tarjetas_amarillas_local, tarjetas_amarillas_rival,
			 tarjetas_rojas_local, tarjetas_rojas_rival,
			 posesion_local, tiros_local, tiros_rival)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		resumen.PartidoID, resumen.GolesLocal, resumen.GolesRival,
		resumen.FaltasLocal, resumen.FaltasRival,
		resumen.TarjetasAmarillasLocal, resumen.TarjetasAmarillasRival,
		resumen.TarjetasRojasLocal, resumen.TarjetasRojasRival,
		resumen.PosesionLocal, resumen.TirosLocal, resumen.TirosRival,
	).Scan(&resumen.ID)
	if err != nil {
		return fmt.Errorf("failed to create resumen: %w", mapEstadisticasFK(err))
	}
	return nil
}

func (r *postgresEstadisticasRepository) BatchCreateJugadores(ctx context.Context, exec SQLExecutor, stats []models.EstadisticaJugadorPartido) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO estadisticas_jugador_partido
			(partido_id, jugador_id, minutos, goles, asistencias, tarjetas_amarillas, tarjetas_rojas, titular)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range stats {
		s := &stats[i]
		_, err := executor.ExecContext(ctx, query,
			s.PartidoID, s.JugadorID, s.Minutos, s.Goles, s.Asistencias,
			s.TarjetasAmarillas, s.TarjetasRojas, s.Titular,
		)
		if err != nil {
			return fmt.Errorf("failed to create estadistica for jugador %d: %w", s.JugadorID, mapEstadisticasFK(err))
		}
	}
	return nil
}

func (r *postgresEstadisticasRepository) BatchCreateAcciones(ctx context.Context, exec SQLExecutor, acciones []models.AccionPartido) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO acciones_partido
			(partido_id, tipo, minuto, parte, equipo_local, jugador_id, descripcion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i := range acciones {
		a := &acciones[i]
		_, err := executor.ExecContext(ctx, query,
			a.PartidoID, a.Tipo, a.Minuto, a.Parte, a.EquipoLocal, a.JugadorID, a.Descripcion,
		)
		if err != nil {
			return fmt.Errorf("failed to create accion (%s, minuto %d): %w", a.Tipo, a.Minuto, mapEstadisticasFK(err))
		}
	}
	return nil
}

func (r *postgresEstadisticasRepository) BatchCreateTiempos(ctx context.Context, exec SQLExecutor, tiempos []models.TiempoJuego) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tiempos_juego (partido_id, jugador_id, minuto_entrada, minuto_salida)
		VALUES ($1, $2, $3, $4)`

	for i := range tiempos {
		t := &tiempos[i]
		_, err := executor.ExecContext(ctx, query, t.PartidoID, t.JugadorID, t.MinutoEntrada, t.MinutoSalida)
		if err != nil {
			return fmt.Errorf("failed to create tiempo de juego for jugador %d: %w", t.JugadorID, mapEstadisticasFK(err))
		}
	}
	return nil
}

func (r *postgresEstadisticasRepository) BatchCreateCuerpoTecnico(ctx context.Context, exec SQLExecutor, staff []models.CuerpoTecnicoPartido) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO cuerpo_tecnico_partido (partido_id, nombre, rol_tecnico, tarjetas_amarillas, tarjetas_rojas)
		VALUES ($1, $2, $3, $4, $5)`

	for i := range staff {
		s := &staff[i]
		_, err := executor.ExecContext(ctx, query, s.PartidoID, s.Nombre, s.RolTecnico, s.TarjetasAmarillas, s.TarjetasRojas)
		if err != nil {
			return fmt.Errorf("failed to create cuerpo tecnico %q: %w", s.Nombre, mapEstadisticasFK(err))
		}
	}
	return nil
}

func (r *postgresEstadisticasRepository) GetResumenByPartido(ctx context.Context, partidoID int) (*models.EstadisticasPartido, error) {
	query := `
		SELECT id, partido_id, goles_local, goles_rival, faltas_local, faltas_rival,
		       tarjetas_amarillas_local, tarjetas_amarillas_rival,
		       tarjetas_rojas_local, tarjetas_rojas_rival,
		       posesion_local, tiros_local, tiros_rival
		FROM estadisticas_partido
		WHERE partido_id = $1`

	e := &models.EstadisticasPartido{}
	err := r.db.QueryRowContext(ctx, query, partidoID).Scan(
		&e.ID, &e.PartidoID, &e.GolesLocal, &e.GolesRival, &e.FaltasLocal, &e.FaltasRival,
		&e.TarjetasAmarillasLocal, &e.TarjetasAmarillasRival,
		&e.TarjetasRojasLocal, &e.TarjetasRojasRival,
		&e.PosesionLocal, &e.TirosLocal, &e.TirosRival,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEstadisticasNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *postgresEstadisticasRepository) ListJugadoresByPartido(ctx context.Context, partidoID int) ([]models.EstadisticaJugadorPartido, error) {
	query := `
		SELECT e.id, e.partido_id, e.jugador_id, e.minutos, e.goles, e.asistencias,
		       e.tarjetas_amarillas, e.tarjetas_rojas, e.titular,
		       j.numero_dorsal, j.alias, u.nombre
		FROM estadisticas_jugador_partido e
		JOIN jugadores j ON e.jugador_id = j.id
		JOIN usuarios u ON j.usuario_id = u.id
		WHERE e.partido_id = $1
		ORDER BY e.titular DESC, j.numero_dorsal NULLS LAST`

	rows, err := r.db.QueryContext(ctx, query, partidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.EstadisticaJugadorPartido, 0)
	for rows.Next() {
		var s models.EstadisticaJugadorPartido
		var jugador models.Jugador
		var usuario models.Usuario
		err := rows.Scan(
			&s.ID, &s.PartidoID, &s.JugadorID, &s.Minutos, &s.Goles, &s.Asistencias,
			&s.TarjetasAmarillas, &s.TarjetasRojas, &s.Titular,
			&jugador.NumeroDorsal, &jugador.Alias, &usuario.Nombre,
		)
		if err != nil {
			return nil, err
		}
		jugador.ID = s.JugadorID
		jugador.Usuario = &usuario
		s.Jugador = &jugador
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ListAccionesByPartido devuelve la cronología ordenada por parte y minuto.
func (r *postgresEstadisticasRepository) ListAccionesByPartido(ctx context.Context, partidoID int) ([]models.AccionPartido, error) {
	query := `
		SELECT id, partido_id, tipo, minuto, parte, equipo_local, jugador_id, descripcion
		FROM acciones_partido
		WHERE partido_id = $1
		ORDER BY parte ASC, minuto ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, partidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	acciones := make([]models.AccionPartido, 0)
	for rows.Next() {
		var a models.AccionPartido
		if err := rows.Scan(&a.ID, &a.PartidoID, &a.Tipo, &a.Minuto, &a.Parte, &a.EquipoLocal, &a.JugadorID, &a.Descripcion); err != nil {
			return nil, err
		}
		acciones = append(acciones, a)
	}
	return acciones, rows.Err()
}

func (r *postgresEstadisticasRepository) ListTiemposByPartido(ctx context.Context, partidoID int) ([]models.TiempoJuego, error) {
	query := `
		SELECT id, partido_id, jugador_id, minuto_entrada, minuto_salida
		FROM tiempos_juego
		WHERE partido_id = $1
		ORDER BY jugador_id ASC, minuto_entrada ASC`

	rows, err := r.db.QueryContext(ctx, query, partidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiempos := make([]models.TiempoJuego, 0)
	for rows.Next() {
		var t models.TiempoJuego
		if err := rows.Scan(&t.ID, &t.PartidoID, &t.JugadorID, &t.MinutoEntrada, &t.MinutoSalida); err != nil {
			return nil, err
		}
		tiempos = append(tiempos, t)
	}
	return tiempos, rows.Err()
}

func (r *postgresEstadisticasRepository) ListCuerpoTecnicoByPartido(ctx context.Context, partidoID int) ([]models.CuerpoTecnicoPartido, error) {
	query := `
		SELECT id, partido_id, nombre, rol_tecnico, tarjetas_amarillas, tarjetas_rojas
		FROM cuerpo_tecnico_partido
		WHERE partido_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, partidoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]models.CuerpoTecnicoPartido, 0)
	for rows.Next() {
		var s models.CuerpoTecnicoPartido
		if err := rows.Scan(&s.ID, &s.PartidoID, &s.Nombre, &s.RolTecnico, &s.TarjetasAmarillas, &s.TarjetasRojas); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}
