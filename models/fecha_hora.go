package models

import (
	"errors"
	"time"
)

var ErrFechaHoraInvalida = errors.New("fecha u hora no válidas")

const (
	formatoFecha = "2006-01-02"
	formatoHora  = "15:04"
)

// FechaHora envuelve un instante con zona. Inmutable: toda operación que
// "modifica" devuelve una instancia nueva.
type FechaHora struct {
	t time.Time
}

func NewFechaHora(t time.Time) FechaHora {
	return FechaHora{t: t}
}

// ParseFechaHora combina los campos separados fecha ("2006-01-02") y
// hora ("15:04") que envía el cliente.
func ParseFechaHora(fecha, hora string) (FechaHora, error) {
	t, err := time.ParseInLocation(formatoFecha+" "+formatoHora, fecha+" "+hora, time.Local)
	if err != nil {
		return FechaHora{}, ErrFechaHoraInvalida
	}
	return FechaHora{t: t}, nil
}

func (f FechaHora) Time() time.Time { return f.t }

func (f FechaHora) Antes(otra FechaHora) bool   { return f.t.Before(otra.t) }
func (f FechaHora) Despues(otra FechaHora) bool { return f.t.After(otra.t) }
func (f FechaHora) Igual(otra FechaHora) bool   { return f.t.Equal(otra.t) }

func (f FechaHora) EsFutura() bool { return f.t.After(time.Now()) }

// DiferenciaEnDias devuelve días completos entre ambos instantes.
func (f FechaHora) DiferenciaEnDias(otra FechaHora) int {
	return int(f.t.Sub(otra.t).Hours() / 24)
}

func (f FechaHora) DiferenciaEnHoras(otra FechaHora) int {
	return int(f.t.Sub(otra.t).Hours())
}

func (f FechaHora) AgregarMinutos(minutos int) FechaHora {
	return FechaHora{t: f.t.Add(time.Duration(minutos) * time.Minute)}
}

func (f FechaHora) String() string {
	return f.t.Format(formatoFecha + " " + formatoHora)
}
