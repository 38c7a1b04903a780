package models

// Posicion es una entidad de catálogo (datos de referencia estáticos).
type Posicion struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Abreviatura string `json:"abreviatura"`
	Color       string `json:"color"`
	Orden       int    `json:"orden"`
}

// MotivoAusencia cataloga las razones por las que un jugador no asiste.
type MotivoAusencia struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}
