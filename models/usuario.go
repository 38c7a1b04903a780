package models

import "time"

// RolUsuario es el rol de la cuenta: jugador o gestor.
type RolUsuario string

const (
	RolJugador RolUsuario = "jugador"
	RolGestor  RolUsuario = "gestor"
)

func (r RolUsuario) EsValido() bool {
	switch r {
	case RolJugador, RolGestor:
		return true
	}
	return false
}

// Usuario is the root identity for both players and managers.
// Players additionally own a Jugador row (1:1 via usuario_id).
type Usuario struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Nombre       string     `json:"nombre"`
	Rol          RolUsuario `json:"rol"`
	Activo       bool       `json:"activo"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Credenciales struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
