package models

// EstadoAsistencia es la enumeración cerrada de estados de respuesta.
// El estado de ausencia se llama "no_asiste" en todo el sistema (esquema,
// API y constantes); no existe la variante "ausente".
type EstadoAsistencia string

const (
	AsistenciaPendiente  EstadoAsistencia = "pendiente"
	AsistenciaConfirmada EstadoAsistencia = "confirmado"
	AsistenciaNoAsiste   EstadoAsistencia = "no_asiste"
)

func (e EstadoAsistencia) EsValido() bool {
	switch e {
	case AsistenciaPendiente, AsistenciaConfirmada, AsistenciaNoAsiste:
		return true
	}
	return false
}

func (e EstadoAsistencia) EsPendiente() bool  { return e == AsistenciaPendiente }
func (e EstadoAsistencia) EsConfirmada() bool { return e == AsistenciaConfirmada }
func (e EstadoAsistencia) EsAusencia() bool   { return e == AsistenciaNoAsiste }

// Etiqueta devuelve el texto de presentación del estado.
func (e EstadoAsistencia) Etiqueta() string {
	switch e {
	case AsistenciaConfirmada:
		return "Confirmado"
	case AsistenciaNoAsiste:
		return "No asiste"
	case AsistenciaPendiente:
		return "Pendiente"
	}
	return string(e)
}

// Color devuelve el color asociado al estado para la capa de presentación.
func (e EstadoAsistencia) Color() string {
	switch e {
	case AsistenciaConfirmada:
		return "#22c55e"
	case AsistenciaNoAsiste:
		return "#ef4444"
	case AsistenciaPendiente:
		return "#f59e0b"
	}
	return "#6b7280"
}
