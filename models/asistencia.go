package models

import "time"

// TipoEvento distingue las dos tablas de asistencia.
type TipoEvento string

const (
	EventoEntrenamiento TipoEvento = "entrenamiento"
	EventoPartido       TipoEvento = "partido"
)

func (t TipoEvento) EsValido() bool {
	return t == EventoEntrenamiento || t == EventoPartido
}

// Asistencia representa la respuesta de un jugador a un evento.
// Exactamente una fila por par (evento, jugador), garantizada por la
// restricción UNIQUE de la base de datos y upsert ON CONFLICT.
type Asistencia struct {
	ID               int              `json:"id"`
	EventoID         int              `json:"evento_id"`
	JugadorID        int              `json:"jugador_id"`
	Estado           EstadoAsistencia `json:"estado"`
	MotivoAusenciaID *int             `json:"motivo_ausencia_id,omitempty"`
	Comentario       *string          `json:"comentario,omitempty"`
	FechaRespuesta   *time.Time       `json:"fecha_respuesta,omitempty"`

	Jugador *Jugador        `json:"jugador,omitempty"`
	Motivo  *MotivoAusencia `json:"motivo,omitempty"`
}
