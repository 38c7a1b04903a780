package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adrifdez/club-manager/models"
)

var (
	ErrPosicionNotFound = errors.New("posicion not found")
	ErrMotivoNotFound   = errors.New("motivo de ausencia not found")
)

type PosicionRepository interface {
	List(ctx context.Context) ([]models.Posicion, error)
	GetByID(ctx context.Context, id int) (*models.Posicion, error)
}

type MotivoAusenciaRepository interface {
	List(ctx context.Context) ([]models.MotivoAusencia, error)
	GetByID(ctx context.Context, id int) (*models.MotivoAusencia, error)
}

type postgresPosicionRepository struct {
	db *sql.DB
}

func NewPostgresPosicionRepository(db *sql.DB) PosicionRepository {
	return &postgresPosicionRepository{db: db}
}

func (r *postgresPosicionRepository) List(ctx context.Context) ([]models.Posicion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nombre, abreviatura, color, orden FROM posiciones ORDER BY orden ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posiciones := make([]models.Posicion, 0)
	for rows.Next() {
		var p models.Posicion
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Abreviatura, &p.Color, &p.Orden); err != nil {
			return nil, err
		}
		posiciones = append(posiciones, p)
	}
	return posiciones, rows.Err()
}

func (r *postgresPosicionRepository) GetByID(ctx context.Context, id int) (*models.Posicion, error) {
	p := &models.Posicion{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nombre, abreviatura, color, orden FROM posiciones WHERE id = $1`, id,
	).Scan(&p.ID, &p.Nombre, &p.Abreviatura, &p.Color, &p.Orden)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPosicionNotFound
		}
		return nil, err
	}
	return p, nil
}

type postgresMotivoAusenciaRepository struct {
	db *sql.DB
}

func NewPostgresMotivoAusenciaRepository(db *sql.DB) MotivoAusenciaRepository {
	return &postgresMotivoAusenciaRepository{db: db}
}

func (r *postgresMotivoAusenciaRepository) List(ctx context.Context) ([]models.MotivoAusencia, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nombre FROM motivos_ausencia ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	motivos := make([]models.MotivoAusencia, 0)
	for rows.Next() {
		var m models.MotivoAusencia
		if err := rows.Scan(&m.ID, &m.Nombre); err != nil {
			return nil, err
		}
		motivos = append(motivos, m)
	}
	return motivos, rows.Err()
}

func (r *postgresMotivoAusenciaRepository) GetByID(ctx context.Context, id int) (*models.MotivoAusencia, error) {
	m := &models.MotivoAusencia{}
	err := r.db.QueryRowContext(ctx, `SELECT id, nombre FROM motivos_ausencia WHERE id = $1`, id).
		Scan(&m.ID, &m.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMotivoNotFound
		}
		return nil, err
	}
	return m, nil
}
