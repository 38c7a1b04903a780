package services

import "errors"

// Errores compartidos entre servicios y el mapeo HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validación y reglas de negocio
	ErrValidationFailed         = errors.New("validation failed")
	ErrEstadoAsistenciaInvalido = errors.New("estado de asistencia no válido")
	ErrMotivoRequerido          = errors.New("motivo de ausencia requerido cuando el estado es no_asiste")
	ErrMotivoNoPermitido        = errors.New("una asistencia pendiente no puede llevar motivo de ausencia")
	ErrFechaRequerida           = errors.New("fecha y hora son obligatorias")
	ErrLugarRequerido           = errors.New("el lugar es obligatorio")
	ErrRivalRequerido           = errors.New("el rival es obligatorio")
	ErrTipoPartidoInvalido      = errors.New("tipo de partido no válido")
	ErrAccionInvalida           = errors.New("accion de cronología no válida")
	ErrNombreRequerido          = errors.New("el nombre es obligatorio")

	// Conflictos
	ErrEmailEnUso          = errors.New("el email ya está en uso")
	ErrJugadorYaRegistrado = errors.New("el usuario ya tiene ficha de jugador")
	ErrPartidoYaFinalizado = errors.New("el partido ya está finalizado")

	// Autenticación y autorización
	ErrCredencialesInvalidas = errors.New("email o contraseña incorrectos")
	ErrOperacionNoPermitida  = errors.New("operation not allowed for the current user")

	// Específicos por entidad
	ErrUsuarioNotFound       = errors.New("usuario not found")
	ErrJugadorNotFound       = errors.New("jugador not found")
	ErrEntrenamientoNotFound = errors.New("entrenamiento not found")
	ErrPartidoNotFound       = errors.New("partido not found")
	ErrMotivoNotFound        = errors.New("motivo de ausencia not found")
	ErrActaNotFound          = errors.New("acta not found: el partido no está finalizado")

	// Subida de ficheros
	ErrFotoNoDisponible = errors.New("la subida de fotos no está configurada")
)
