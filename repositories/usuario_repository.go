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
	ErrUsuarioNotFound      = errors.New("usuario not found")
	ErrUsuarioEmailConflict = errors.New("usuario email conflict")
)

type UsuarioRepository interface {
	Create(ctx context.Context, exec SQLExecutor, usuario *models.Usuario) error
	GetByID(ctx context.Context, id int) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	UpdateActivo(ctx context.Context, id int, activo bool) error
	Update(ctx context.Context, usuario *models.Usuario) error
}

type postgresUsuarioRepository struct {
	db *sql.DB
}

func NewPostgresUsuarioRepository(db *sql.DB) UsuarioRepository {
	return &postgresUsuarioRepository{db: db}
}

func (r *postgresUsuarioRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresUsuarioRepository) Create(ctx context.Context, exec SQLExecutor, usuario *models.Usuario) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO usuarios (email, password_hash, nombre, rol, activo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		usuario.Email,
		usuario.PasswordHash,
		usuario.Nombre,
		usuario.Rol,
		usuario.Activo,
	).Scan(&usuario.ID, &usuario.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "usuarios_email_key" {
				return ErrUsuarioEmailConflict
			}
		}
		return fmt.Errorf("failed to create usuario: %w", err)
	}
	return nil
}

func (r *postgresUsuarioRepository) GetByID(ctx context.Context, id int) (*models.Usuario, error) {
	query := `
		SELECT id, email, password_hash, nombre, rol, activo, created_at
		FROM usuarios
		WHERE id = $1`
	return r.scanUsuario(ctx, query, id)
}

func (r *postgresUsuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	query := `
		SELECT id, email, password_hash, nombre, rol, activo, created_at
		FROM usuarios
		WHERE email = $1`
	return r.scanUsuario(ctx, query, email)
}

// UpdateActivo implementa la baja lógica: los usuarios nunca se borran.
func (r *postgresUsuarioRepository) UpdateActivo(ctx context.Context, id int, activo bool) error {
	query := `UPDATE usuarios SET activo = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, activo, id)
	if err != nil {
		return fmt.Errorf("failed to update usuario activo flag: %w", err)
	}
	return checkAffectedRows(result, ErrUsuarioNotFound)
}

func (r *postgresUsuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	query := `
		UPDATE usuarios SET
			email = $1,
			password_hash = $2,
			nombre = $3,
			rol = $4,
			activo = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		usuario.Email,
		usuario.PasswordHash,
		usuario.Nombre,
		usuario.Rol,
		usuario.Activo,
		usuario.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "usuarios_email_key" {
				return ErrUsuarioEmailConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrUsuarioNotFound)
}

func (r *postgresUsuarioRepository) scanUsuario(ctx context.Context, query string, args ...interface{}) (*models.Usuario, error) {
	usuario := &models.Usuario{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&usuario.ID,
		&usuario.Email,
		&usuario.PasswordHash,
		&usuario.Nombre,
		&usuario.Rol,
		&usuario.Activo,
		&usuario.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return usuario, nil
}
