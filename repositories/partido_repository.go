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

var ErrPartidoNotFound = errors.New("partido not found")

type PartidoRepository interface {
	Create(ctx context.Context, partido *models.Partido) error
	GetByID(ctx context.Context, id int) (*models.Partido, error)
	List(ctx context.Context, filtro EventoFiltro) ([]models.Partido, error)
	ListDesde(ctx context.Context, desde time.Time) ([]models.Partido, error)
	ListProximos(ctx context.Context, limit int) ([]models.Partido, error)
	Update(ctx context.Context, partido *models.Partido) error
	UpdateResultado(ctx context.Context, id int, resultado string) error
	UpdateEstado(ctx context.Context, exec SQLExecutor, id int, estado models.EstadoPartido, resultado *string) error
	Delete(ctx context.Context, id int) error
}

type postgresPartidoRepository struct {
	db *sql.DB
}

func NewPostgresPartidoRepository(db *sql.DB) PartidoRepository {
	return &postgresPartidoRepository{db: db}
}

func (r *postgresPartidoRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const partidoColumns = `id, fecha_hora, rival, lugar, tipo, es_local, resultado, observaciones, estado, creado_por, created_at`

func (r *postgresPartidoRepository) Create(ctx context.Context, partido *models.Partido) error {
	query := `
		INSERT INTO partidos (fecha_hora, rival, lugar, tipo, es_local, observaciones, estado, creado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		partido.FechaHora,
		partido.Rival,
		partido.Lugar,
		partido.Tipo,
		partido.EsLocal,
		partido.Observaciones,
		partido.Estado,
		partido.CreadoPor,
	).Scan(&partido.ID, &partido.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create partido: %w", err)
	}
	return nil
}

func (r *postgresPartidoRepository) GetByID(ctx context.Context, id int) (*models.Partido, error) {
	query := `SELECT ` + partidoColumns + ` FROM partidos WHERE id = $1`
	return scanPartido(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPartidoRepository) List(ctx context.Context, filtro EventoFiltro) ([]models.Partido, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + partidoColumns + ` FROM partidos`)

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

	return r.queryPartidos(ctx, queryBuilder.String(), args...)
}

func (r *postgresPartidoRepository) ListDesde(ctx context.Context, desde time.Time) ([]models.Partido, error) {
	return r.List(ctx, EventoFiltro{FechaDesde: &desde})
}

func (r *postgresPartidoRepository) ListProximos(ctx context.Context, limit int) ([]models.Partido, error) {
	query := `SELECT ` + partidoColumns + ` FROM partidos WHERE fecha_hora >= NOW() ORDER BY fecha_hora ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.queryPartidos(ctx, query, args...)
}

func (r *postgresPartidoRepository) Update(ctx context.Context, partido *models.Partido) error {
	query := `
		UPDATE partidos SET
			fecha_hora = $1,
			rival = $2,
			lugar = $3,
			tipo = $4,
			es_local = $5,
			observaciones = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		partido.FechaHora,
		partido.Rival,
		partido.Lugar,
		partido.Tipo,
		partido.EsLocal,
		partido.Observaciones,
		partido.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPartidoNotFound)
}

func (r *postgresPartidoRepository) UpdateResultado(ctx context.Context, id int, resultado string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE partidos SET resultado = $1 WHERE id = $2`, resultado, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPartidoNotFound)
}

// UpdateEstado participa en la transacción de finalización, de ahí el exec.
func (r *postgresPartidoRepository) UpdateEstado(ctx context.Context, exec SQLExecutor, id int, estado models.EstadoPartido, resultado *string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE partidos SET estado = $1, resultado = COALESCE($2, resultado) WHERE id = $3`,
		estado, resultado, id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPartidoNotFound)
}

// Delete elimina el partido; asistencias y estadísticas caen por
// ON DELETE CASCADE.
func (r *postgresPartidoRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM partidos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPartidoNotFound)
}

func (r *postgresPartidoRepository) queryPartidos(ctx context.Context, query string, args ...interface{}) ([]models.Partido, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partidos := make([]models.Partido, 0)
	for rows.Next() {
		p, scanErr := scanPartido(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		partidos = append(partidos, *p)
	}
	return partidos, rows.Err()
}

func scanPartido(row rowScanner) (*models.Partido, error) {
	p := &models.Partido{}
	err := row.Scan(
		&p.ID, &p.FechaHora, &p.Rival, &p.Lugar, &p.Tipo, &p.EsLocal,
		&p.Resultado, &p.Observaciones, &p.Estado, &p.CreadoPor, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartidoNotFound
		}
		return nil, err
	}
	return p, nil
}
