package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Usuario, error)
	RegistrarJugador(ctx context.Context, input RegistrarJugadorInput) (*models.Jugador, error)
	Login(ctx context.Context, input LoginInput) (*models.Usuario, error)
	Profile(ctx context.Context, usuarioID int) (*models.Usuario, error)
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
}

// RegistrarJugadorInput es el alta de jugador iniciada por un gestor:
// crea el usuario (rol jugador) y su ficha en una transacción.
type RegistrarJugadorInput struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Nombre          string  `json:"nombre"`
	NumeroDorsal    *int    `json:"numero_dorsal,omitempty"`
	PosicionID      *int    `json:"posicion_id,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	FechaNacimiento *string `json:"fecha_nacimiento,omitempty"` // 2006-01-02
	Alias           *string `json:"alias,omitempty"`
}

type LoginInput struct {
	Email    string
	Password string
}

type authService struct {
	db          *sql.DB
	usuarioRepo repositories.UsuarioRepository
	jugadorRepo repositories.JugadorRepository
	fanout      *RosterFanout
}

func NewAuthService(db *sql.DB, usuarioRepo repositories.UsuarioRepository, jugadorRepo repositories.JugadorRepository, fanout *RosterFanout) AuthService {
	return &authService{
		db:          db,
		usuarioRepo: usuarioRepo,
		jugadorRepo: jugadorRepo,
		fanout:      fanout,
	}
}

// Register es el autoregistro: siempre crea un usuario con rol jugador y
// su ficha. El sembrado de asistencias es best-effort y no afecta al alta.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Usuario, error) {
	jugador, err := s.crearUsuarioYJugador(ctx, RegistrarJugadorInput{
		Email:    input.Email,
		Password: input.Password,
		Nombre:   input.Nombre,
	})
	if err != nil {
		return nil, err
	}
	return jugador.Usuario, nil
}

func (s *authService) RegistrarJugador(ctx context.Context, input RegistrarJugadorInput) (*models.Jugador, error) {
	return s.crearUsuarioYJugador(ctx, input)
}

func (s *authService) crearUsuarioYJugador(ctx context.Context, input RegistrarJugadorInput) (*models.Jugador, error) {
	email, err := models.NewEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	password, err := models.NewPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if input.Nombre == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrNombreRequerido)
	}

	var fechaNacimiento *time.Time
	if input.FechaNacimiento != nil && *input.FechaNacimiento != "" {
		parsed, parseErr := time.Parse("2006-01-02", *input.FechaNacimiento)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, models.ErrFechaHoraInvalida)
		}
		fechaNacimiento = &parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password.String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usuario := &models.Usuario{
		Email:        email.String(),
		PasswordHash: string(hashedPassword),
		Nombre:       input.Nombre,
		Rol:          models.RolJugador,
		Activo:       true,
	}
	jugador := &models.Jugador{
		NumeroDorsal:    input.NumeroDorsal,
		PosicionID:      input.PosicionID,
		Telefono:        input.Telefono,
		FechaNacimiento: fechaNacimiento,
		Alias:           input.Alias,
	}

	// Usuario y ficha de jugador se crean juntos o no se crea nada.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.usuarioRepo.Create(ctx, tx, usuario); err != nil {
		if errors.Is(err, repositories.ErrUsuarioEmailConflict) {
			return nil, ErrEmailEnUso
		}
		return nil, err
	}
	jugador.UsuarioID = usuario.ID
	if err = s.jugadorRepo.Create(ctx, tx, jugador); err != nil {
		if errors.Is(err, repositories.ErrJugadorUsuarioConflict) {
			return nil, ErrJugadorYaRegistrado
		}
		if errors.Is(err, repositories.ErrJugadorPosicionInvalid) {
			return nil, fmt.Errorf("%w: posicion", ErrValidationFailed)
		}
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	usuario.PasswordHash = ""
	jugador.Usuario = usuario

	// Fire-and-forget: un fallo sembrando pendientes no deshace el alta;
	// la fila se crea perezosamente al consultar "mis eventos".
	if s.fanout != nil {
		go s.fanout.SeedJugador(context.Background(), jugador.ID)
	}

	return jugador, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Usuario, error) {
	usuario, err := s.usuarioRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUsuarioNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, fmt.Errorf("failed to find usuario by email: %w", err)
	}
	if !usuario.Activo {
		return nil, ErrCredencialesInvalidas
	}

	err = bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	usuario.PasswordHash = ""
	return usuario, nil
}

func (s *authService) Profile(ctx context.Context, usuarioID int) (*models.Usuario, error) {
	usuario, err := s.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, repositories.ErrUsuarioNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	usuario.PasswordHash = ""
	return usuario, nil
}
