package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/repositories"
	"github.com/adrifdez/club-manager/storage"
)

type JugadorService interface {
	Listar(ctx context.Context, soloActivos bool) ([]models.Jugador, error)
	Obtener(ctx context.Context, id int) (*models.Jugador, error)
	ObtenerPorUsuario(ctx context.Context, usuarioID int) (*models.Jugador, error)
	Actualizar(ctx context.Context, jugadorID, currentUsuarioID int, esGestor bool, input ActualizarJugadorInput) (*models.Jugador, error)
	CambiarEstado(ctx context.Context, jugadorID int, activo bool) (*models.Jugador, error)
	ActualizarFoto(ctx context.Context, jugadorID, currentUsuarioID int, esGestor bool, file io.Reader, contentType string) (*models.Jugador, error)
}

// ActualizarJugadorInput es la edición parcial de la ficha; los campos nil
// quedan como estaban. Nombre y email viven en la cuenta de usuario.
type ActualizarJugadorInput struct {
	Nombre          *string `json:"nombre,omitempty"`
	Email           *string `json:"email,omitempty"`
	NumeroDorsal    *int    `json:"numero_dorsal,omitempty"`
	PosicionID      *int    `json:"posicion_id,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	FechaNacimiento *string `json:"fecha_nacimiento,omitempty"` // 2006-01-02
	Alias           *string `json:"alias,omitempty"`
}

type jugadorService struct {
	jugadorRepo  repositories.JugadorRepository
	usuarioRepo  repositories.UsuarioRepository
	posicionRepo repositories.PosicionRepository
	uploader     storage.FileUploader
}

func NewJugadorService(jugadorRepo repositories.JugadorRepository, usuarioRepo repositories.UsuarioRepository, posicionRepo repositories.PosicionRepository, uploader storage.FileUploader) JugadorService {
	return &jugadorService{
		jugadorRepo:  jugadorRepo,
		usuarioRepo:  usuarioRepo,
		posicionRepo: posicionRepo,
		uploader:     uploader,
	}
}

func (s *jugadorService) Listar(ctx context.Context, soloActivos bool) ([]models.Jugador, error) {
	jugadores, err := s.jugadorRepo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	if s.uploader != nil {
		for i := range jugadores {
			s.rellenarFotoURL(&jugadores[i])
		}
	}
	return jugadores, nil
}

func (s *jugadorService) Obtener(ctx context.Context, id int) (*models.Jugador, error) {
	jugador, err := s.jugadorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrJugadorNotFound) {
			return nil, ErrJugadorNotFound
		}
		return nil, err
	}
	s.rellenarFotoURL(jugador)
	return jugador, nil
}

// ObtenerPorUsuario localiza la ficha de jugador del usuario autenticado.
func (s *jugadorService) ObtenerPorUsuario(ctx context.Context, usuarioID int) (*models.Jugador, error) {
	jugador, err := s.jugadorRepo.GetByUsuarioID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, repositories.ErrJugadorNotFound) {
			return nil, ErrJugadorNotFound
		}
		return nil, err
	}
	s.rellenarFotoURL(jugador)
	return jugador, nil
}

// Actualizar edita la ficha del jugador y, si cambian nombre o email, su
// cuenta de usuario. Un jugador sólo puede editar su propia ficha; un gestor
// puede editar cualquiera.
func (s *jugadorService) Actualizar(ctx context.Context, jugadorID, currentUsuarioID int, esGestor bool, input ActualizarJugadorInput) (*models.Jugador, error) {
	jugador, err := s.Obtener(ctx, jugadorID)
	if err != nil {
		return nil, err
	}
	if !esGestor && jugador.UsuarioID != currentUsuarioID {
		return nil, ErrOperacionNoPermitida
	}

	if input.NumeroDorsal != nil {
		jugador.NumeroDorsal = input.NumeroDorsal
	}
	if input.Telefono != nil {
		jugador.Telefono = input.Telefono
	}
	if input.Alias != nil {
		jugador.Alias = input.Alias
	}
	if input.FechaNacimiento != nil {
		parsed, parseErr := time.Parse("2006-01-02", *input.FechaNacimiento)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, models.ErrFechaHoraInvalida)
		}
		jugador.FechaNacimiento = &parsed
	}
	if input.PosicionID != nil {
		posicion, posErr := s.posicionRepo.GetByID(ctx, *input.PosicionID)
		if posErr != nil {
			if errors.Is(posErr, repositories.ErrPosicionNotFound) {
				return nil, fmt.Errorf("%w: posicion", ErrValidationFailed)
			}
			return nil, posErr
		}
		jugador.PosicionID = input.PosicionID
		jugador.Posicion = posicion
	}

	if input.Nombre != nil || input.Email != nil {
		// Se relee la cuenta completa para no pisar el hash de contraseña,
		// que el detalle de jugador no carga.
		usuario, usuErr := s.usuarioRepo.GetByID(ctx, jugador.UsuarioID)
		if usuErr != nil {
			if errors.Is(usuErr, repositories.ErrUsuarioNotFound) {
				return nil, ErrUsuarioNotFound
			}
			return nil, usuErr
		}
		if input.Nombre != nil {
			if *input.Nombre == "" {
				return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrNombreRequerido)
			}
			usuario.Nombre = *input.Nombre
		}
		if input.Email != nil {
			email, emailErr := models.NewEmail(*input.Email)
			if emailErr != nil {
				return nil, fmt.Errorf("%w: %w", ErrValidationFailed, emailErr)
			}
			usuario.Email = email.String()
		}
		if usuErr := s.usuarioRepo.Update(ctx, usuario); usuErr != nil {
			if errors.Is(usuErr, repositories.ErrUsuarioEmailConflict) {
				return nil, ErrEmailEnUso
			}
			return nil, usuErr
		}
		usuario.PasswordHash = ""
		jugador.Usuario = usuario
	}

	if err := s.jugadorRepo.Update(ctx, jugador); err != nil {
		switch {
		case errors.Is(err, repositories.ErrJugadorNotFound):
			return nil, ErrJugadorNotFound
		case errors.Is(err, repositories.ErrJugadorPosicionInvalid):
			return nil, fmt.Errorf("%w: posicion", ErrValidationFailed)
		}
		return nil, err
	}

	s.rellenarFotoURL(jugador)
	return jugador, nil
}

// CambiarEstado activa o desactiva al jugador (baja lógica sobre el
// usuario; la fila de jugador nunca se borra).
func (s *jugadorService) CambiarEstado(ctx context.Context, jugadorID int, activo bool) (*models.Jugador, error) {
	jugador, err := s.Obtener(ctx, jugadorID)
	if err != nil {
		return nil, err
	}
	if err := s.usuarioRepo.UpdateActivo(ctx, jugador.UsuarioID, activo); err != nil {
		if errors.Is(err, repositories.ErrUsuarioNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	jugador.Usuario.Activo = activo
	return jugador, nil
}

// ActualizarFoto sube la nueva foto, reemplaza la clave en la ficha y borra
// el objeto anterior. Un jugador sólo puede cambiar su propia foto; un
// gestor puede cambiar cualquiera.
func (s *jugadorService) ActualizarFoto(ctx context.Context, jugadorID, currentUsuarioID int, esGestor bool, file io.Reader, contentType string) (*models.Jugador, error) {
	if s.uploader == nil {
		return nil, ErrFotoNoDisponible
	}

	jugador, err := s.Obtener(ctx, jugadorID)
	if err != nil {
		return nil, err
	}
	if !esGestor && jugador.UsuarioID != currentUsuarioID {
		return nil, ErrOperacionNoPermitida
	}

	ext := extensionPara(contentType)
	if ext == "" {
		return nil, fmt.Errorf("%w: content type %q", ErrValidationFailed, contentType)
	}

	key := fmt.Sprintf("jugadores/%d/foto_%d%s", jugadorID, time.Now().Unix(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload foto: %w", err)
	}

	oldKey := jugador.FotoKey
	if err := s.jugadorRepo.UpdateFotoKey(ctx, jugadorID, &key); err != nil {
		// La subida ya ocurrió; intentamos no dejar el objeto huérfano.
		_ = s.uploader.Delete(ctx, key)
		return nil, err
	}
	if oldKey != nil {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	jugador.FotoKey = &key
	s.rellenarFotoURL(jugador)
	return jugador, nil
}

func (s *jugadorService) rellenarFotoURL(jugador *models.Jugador) {
	if s.uploader == nil || jugador.FotoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*jugador.FotoKey)
	jugador.FotoURL = &url
}

func extensionPara(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	// mime.ExtensionsByType cubre tipos de imagen menos habituales.
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 && strings.HasPrefix(contentType, "image/") {
		return exts[0]
	}
	return ""
}
