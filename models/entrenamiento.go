package models

import "time"

type Entrenamiento struct {
	ID              int       `json:"id"`
	FechaHora       time.Time `json:"fecha_hora"`
	Lugar           string    `json:"lugar"`
	Descripcion     *string   `json:"descripcion,omitempty"`
	DuracionMinutos *int      `json:"duracion_minutos,omitempty"`
	CreadoPor       int       `json:"creado_por"`
	CreatedAt       time.Time `json:"created_at"`

	Asistencias []Asistencia `json:"asistencias,omitempty"`
}
