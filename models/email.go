package models

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmailInvalido       = errors.New("formato de email no válido")
	ErrEmailDemasiadoLargo = errors.New("el email supera los 254 caracteres")
)

// local@dominio.tld; las reglas de puntos se comprueban aparte sobre
// cada parte.
var emailRegexp = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email es un value object inmutable. Se valida una sola vez al construirlo
// y siempre se almacena en minúsculas.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if len(normalized) > 254 {
		return Email{}, ErrEmailDemasiadoLargo
	}
	if !emailRegexp.MatchString(normalized) {
		return Email{}, ErrEmailInvalido
	}

	local, dominio, _ := strings.Cut(normalized, "@")
	for _, parte := range []string{local, dominio} {
		if strings.HasPrefix(parte, ".") || strings.HasSuffix(parte, ".") || strings.Contains(parte, "..") {
			return Email{}, ErrEmailInvalido
		}
	}

	return Email{value: normalized}, nil
}

// EmailEsValido es el predicado de conveniencia sobre NewEmail.
func EmailEsValido(raw string) bool {
	_, err := NewEmail(raw)
	return err == nil
}

func (e Email) String() string { return e.value }
