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
	ErrJugadorNotFound        = errors.New("jugador not found")
	ErrJugadorUsuarioConflict = errors.New("usuario already has a jugador row")
	ErrJugadorPosicionInvalid = errors.New("jugador posicion conflict or invalid")
)

type JugadorRepository interface {
	Create(ctx context.Context, exec SQLExecutor, jugador *models.Jugador) error
	GetByID(ctx context.Context, id int) (*models.Jugador, error)
	GetByUsuarioID(ctx context.Context, usuarioID int) (*models.Jugador, error)
	List(ctx context.Context, soloActivos bool) ([]models.Jugador, error)
	ListActivosIDs(ctx context.Context) ([]int, error)
	Update(ctx context.Context, jugador *models.Jugador) error
	UpdateFotoKey(ctx context.Context, id int, fotoKey *string) error
}

type postgresJugadorRepository struct {
	db *sql.DB
}

func NewPostgresJugadorRepository(db *sql.DB) JugadorRepository {
	return &postgresJugadorRepository{db: db}
}

func (r *postgresJugadorRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresJugadorRepository) Create(ctx context.Context, exec SQLExecutor, jugador *models.Jugador) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO jugadores (usuario_id, numero_dorsal, posicion_id, telefono, fecha_nacimiento, alias)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		jugador.UsuarioID,
		jugador.NumeroDorsal,
		jugador.PosicionID,
		jugador.Telefono,
		jugador.FechaNacimiento,
		jugador.Alias,
	).Scan(&jugador.ID, &jugador.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "jugadores_usuario_id_key" {
					return ErrJugadorUsuarioConflict
				}
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "jugadores_posicion_id_fkey" {
					return ErrJugadorPosicionInvalid
				}
			}
		}
		return fmt.Errorf("failed to create jugador: %w", err)
	}
	return nil
}

const jugadorSelect = `
	SELECT
		j.id, j.usuario_id, j.numero_dorsal, j.posicion_id, j.telefono,
		j.fecha_nacimiento, j.alias, j.foto_key, j.created_at,
		u.id, u.email, u.nombre, u.rol, u.activo,
		p.id, p.nombre, p.abreviatura, p.color, p.orden
	FROM jugadores j
	JOIN usuarios u ON j.usuario_id = u.id
	LEFT JOIN posiciones p ON j.posicion_id = p.id`

func (r *postgresJugadorRepository) GetByID(ctx context.Context, id int) (*models.Jugador, error) {
	row := r.db.QueryRowContext(ctx, jugadorSelect+` WHERE j.id = $1`, id)
	return scanJugadorRow(row)
}

func (r *postgresJugadorRepository) GetByUsuarioID(ctx context.Context, usuarioID int) (*models.Jugador, error) {
	row := r.db.QueryRowContext(ctx, jugadorSelect+` WHERE j.usuario_id = $1`, usuarioID)
	return scanJugadorRow(row)
}

func (r *postgresJugadorRepository) List(ctx context.Context, soloActivos bool) ([]models.Jugador, error) {
	query := jugadorSelect
	if soloActivos {
		query += ` WHERE u.activo = TRUE`
	}
	query += ` ORDER BY j.numero_dorsal NULLS LAST, u.nombre ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jugadores := make([]models.Jugador, 0)
	for rows.Next() {
		jugador, scanErr := scanJugadorRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		jugadores = append(jugadores, *jugador)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return jugadores, nil
}

// ListActivosIDs devuelve sólo los IDs de los jugadores activos.
// Es lo único que necesita el sembrado de asistencias.
func (r *postgresJugadorRepository) ListActivosIDs(ctx context.Context) ([]int, error) {
	query := `
		SELECT j.id
		FROM jugadores j
		JOIN usuarios u ON j.usuario_id = u.id
		WHERE u.activo = TRUE AND u.rol = $1`

	rows, err := r.db.QueryContext(ctx, query, models.RolJugador)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresJugadorRepository) Update(ctx context.Context, jugador *models.Jugador) error {
	query := `
		UPDATE jugadores SET
			numero_dorsal = $1,
			posicion_id = $2,
			telefono = $3,
			fecha_nacimiento = $4,
			alias = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		jugador.NumeroDorsal,
		jugador.PosicionID,
		jugador.Telefono,
		jugador.FechaNacimiento,
		jugador.Alias,
		jugador.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "jugadores_posicion_id_fkey" {
				return ErrJugadorPosicionInvalid
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrJugadorNotFound)
}

func (r *postgresJugadorRepository) UpdateFotoKey(ctx context.Context, id int, fotoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE jugadores SET foto_key = $1 WHERE id = $2`, fotoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update jugador foto_key: %w", err)
	}
	return checkAffectedRows(result, ErrJugadorNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJugadorRow(row rowScanner) (*models.Jugador, error) {
	var jugador models.Jugador
	var usuario models.Usuario

	var posID sql.NullInt64
	var posNombre, posAbreviatura, posColor sql.NullString
	var posOrden sql.NullInt64

	err := row.Scan(
		&jugador.ID,
		&jugador.UsuarioID,
		&jugador.NumeroDorsal,
		&jugador.PosicionID,
		&jugador.Telefono,
		&jugador.FechaNacimiento,
		&jugador.Alias,
		&jugador.FotoKey,
		&jugador.CreatedAt,
		&usuario.ID,
		&usuario.Email,
		&usuario.Nombre,
		&usuario.Rol,
		&usuario.Activo,
		&posID,
		&posNombre,
		&posAbreviatura,
		&posColor,
		&posOrden,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJugadorNotFound
		}
		return nil, fmt.Errorf("failed to scan jugador: %w", err)
	}

	jugador.Usuario = &usuario
	if posID.Valid {
		jugador.Posicion = &models.Posicion{
			ID:          int(posID.Int64),
			Nombre:      posNombre.String,
			Abreviatura: posAbreviatura.String,
			Color:       posColor.String,
			Orden:       int(posOrden.Int64),
		}
	}
	return &jugador, nil
}
