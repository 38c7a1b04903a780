package models

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordDemasiadoCorta = errors.New("la contraseña debe tener al menos 8 caracteres")
	ErrPasswordDemasiadoLarga = errors.New("la contraseña no puede superar los 128 caracteres")
	ErrPasswordDebil          = errors.New("la contraseña debe incluir minúscula, mayúscula y dígito")
)

// Password distingue el valor en claro (validado) del hash ya calculado
// (que se acepta tal cual). Inmutable tras la construcción.
type Password struct {
	value  string
	hashed bool
}

// NewPassword valida una contraseña en claro: longitud 8..128 y al menos
// una minúscula, una mayúscula y un dígito.
func NewPassword(plain string) (Password, error) {
	if err := ValidarPassword(plain); err != nil {
		return Password{}, err
	}
	return Password{value: plain}, nil
}

// NewPasswordHash envuelve un hash ya calculado sin validar.
func NewPasswordHash(hash string) Password {
	return Password{value: hash, hashed: true}
}

func ValidarPassword(plain string) error {
	if len(plain) < 8 {
		return ErrPasswordDemasiadoCorta
	}
	if len(plain) > 128 {
		return ErrPasswordDemasiadoLarga
	}
	var lower, upper, digit bool
	for _, r := range plain {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return ErrPasswordDebil
	}
	return nil
}

func PasswordEsValida(plain string) bool {
	return ValidarPassword(plain) == nil
}

func (p Password) String() string  { return p.value }
func (p Password) EsHash() bool    { return p.hashed }
