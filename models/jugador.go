package models

import "time"

// Jugador extiende Usuario con los datos deportivos del jugador.
type Jugador struct {
	ID              int        `json:"id"`
	UsuarioID       int        `json:"usuario_id"`
	NumeroDorsal    *int       `json:"numero_dorsal,omitempty"`
	PosicionID      *int       `json:"posicion_id,omitempty"`
	Telefono        *string    `json:"telefono,omitempty"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	Alias           *string    `json:"alias,omitempty"`
	FotoKey         *string    `json:"-"`
	FotoURL         *string    `json:"foto_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	// Entidades relacionadas, cargadas bajo demanda.
	Usuario  *Usuario  `json:"usuario,omitempty"`
	Posicion *Posicion `json:"posicion,omitempty"`
}
