package models

import "time"

// TipoPartido corresponde al ENUM tipo_partido de la base de datos.
type TipoPartido string

const (
	PartidoAmistoso TipoPartido = "amistoso"
	PartidoLiga     TipoPartido = "liga"
	PartidoCopa     TipoPartido = "copa"
	PartidoPlayoff  TipoPartido = "playoff"
)

func (t TipoPartido) EsValido() bool {
	switch t {
	case PartidoAmistoso, PartidoLiga, PartidoCopa, PartidoPlayoff:
		return true
	}
	return false
}

// EstadoPartido: las estadísticas sólo existen para partidos finalizados.
type EstadoPartido string

const (
	PartidoProgramado EstadoPartido = "programado"
	PartidoFinalizado EstadoPartido = "finalizado"
)

type Partido struct {
	ID            int           `json:"id"`
	FechaHora     time.Time     `json:"fecha_hora"`
	Rival         string        `json:"rival"`
	Lugar         string        `json:"lugar"`
	Tipo          TipoPartido   `json:"tipo"`
	EsLocal       bool          `json:"es_local"`
	Resultado     *string       `json:"resultado,omitempty"`
	Observaciones *string       `json:"observaciones,omitempty"`
	Estado        EstadoPartido `json:"estado"`
	CreadoPor     int           `json:"creado_por"`
	CreatedAt     time.Time     `json:"created_at"`

	Asistencias []Asistencia `json:"asistencias,omitempty"`
}
