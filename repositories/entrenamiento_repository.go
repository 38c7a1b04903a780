package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrifdez/club-manager/models"
)

var ErrEntrenamientoNotFound = errors.New("entrenamiento not found")

// EventoFiltro acota los listados de eventos. Los punteros a nil no filtran.
type EventoFiltro struct {
	FechaDesde *time.Time
	FechaHasta *time.Time
	Limit      int
	Offset     int
}

type EntrenamientoRepository interface {
	Create(ctx context.Context, entrenamiento *models.Entrenamiento) error
	GetByID(ctx context.Context, id int) (*models.Entrenamiento, error)
	List(ctx context.Context, filtro EventoFiltro) ([]models.Entrenamiento, error)
	ListDesde(ctx context.Context, desde time.Time) ([]models.Entrenamiento, error)
	Update(ctx context.Context, entrenamiento *models.Entrenamiento) error
	Delete(ctx context.Context, id int) error
}

type postgresEntrenamientoRepository struct {
	db *sql.DB
}

func NewPostgresEntrenamientoRepository(db *sql.DB) EntrenamientoRepository {
	return &postgresEntrenamientoRepository{db: db}
}

func (r *postgresEntrenamientoRepository) Create(ctx context.Context, entrenamiento *models.Entrenamiento) error {
	query := `
		INSERT INTO entrenamientos (fecha_hora, lugar, descripcion, duracion_minutos, creado_por)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entrenamiento.FechaHora,
		entrenamiento.Lugar,
		entrenamiento.Descripcion,
		entrenamiento.DuracionMinutos,
		entrenamiento.CreadoPor,
	).Scan(&entrenamiento.ID, &entrenamiento.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entrenamiento: %w", err)
	}
	return nil
}

func (r *postgresEntrenamientoRepository) GetByID(ctx context.Context, id int) (*models.Entrenamiento, error) {
	query := `
		SELECT id, fecha_hora, lugar, descripcion, duracion_minutos, creado_por, created_at
		FROM entrenamientos
		WHERE id = $1`

	e := &models.Entrenamiento{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.FechaHora, &e.Lugar, &e.Descripcion, &e.DuracionMinutos, &e.CreadoPor, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntrenamientoNotFound
		}
		return nil, err
	}
	return e, nil
}

// List devuelve los entrenamientos siempre ordenados por fecha_hora.
func (r *postgresEntrenamientoRepository) List(ctx context.Context, filtro EventoFiltro) ([]models.Entrenamiento, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, fecha_hora, lugar, descripcion, duracion_minutos, creado_por, created_at
		FROM entrenamientos`)

	args := make([]interface{}, 0, 4)
	conditions := make([]string, 0, 2)
	if filtro.FechaDesde != nil {
		args = append(args, *filtro.FechaDesde)
		conditions = append(conditions, fmt.Sprintf("fecha_hora >= $%d", len(args)))
	}
	if filtro.FechaHasta != nil {
		args = append(args, *filtro.FechaHasta)
		conditions = append(conditions, fmt.Sprintf("fecha_hora <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY fecha_hora ASC")
	if filtro.Limit > 0 {
		args = append(args, filtro.Limit)
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if filtro.Offset > 0 {
		args = append(args, filtro.Offset)
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entrenamientos := make([]models.Entrenamiento, 0)
	for rows.Next() {
		var e models.Entrenamiento
		if err := rows.Scan(&e.ID, &e.FechaHora, &e.Lugar, &e.Descripcion, &e.DuracionMinutos, &e.CreadoPor, &e.CreatedAt); err != nil {
			return nil, err
		}
		entrenamientos = append(entrenamientos, e)
	}
	return entrenamientos, rows.Err()
}

// ListDesde es la consulta del sembrado: todos los entrenamientos futuros.
func (r *postgresEntrenamientoRepository) ListDesde(ctx context.Context, desde time.Time) ([]models.Entrenamiento, error) {
	return r.List(ctx, EventoFiltro{FechaDesde: &desde})
}

func (r *postgresEntrenamientoRepository) Update(ctx context.Context, entrenamiento *models.Entrenamiento) error {
	query := `
		UPDATE entrenamientos SET
			fecha_hora = $1,
			lugar = $2,
			descripcion = $3,
			duracion_minutos = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		entrenamiento.FechaHora,
		entrenamiento.Lugar,
		entrenamiento.Descripcion,
		entrenamiento.DuracionMinutos,
		entrenamiento.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEntrenamientoNotFound)
}

// Delete elimina el entrenamiento; las asistencias caen por
// ON DELETE CASCADE, la aplicación no hace limpieza manual.
func (r *postgresEntrenamientoRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entrenamientos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEntrenamientoNotFound)
}
