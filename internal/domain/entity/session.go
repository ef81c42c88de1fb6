package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Lecheria-api/internal/domain"
)

// Session es uno de los dos turnos fijos de acopio diario.
type Session string

const (
	SessionMorning Session = "morning"
	SessionEvening Session = "evening"
)

// Sessions en orden canónico: dentro de un mismo día morning precede a evening.
var Sessions = []Session{SessionMorning, SessionEvening}

// ParseSession normaliza s a su forma canónica en minúsculas.
// Retorna domain.ErrInvalidSession si no es morning ni evening (sin distinguir mayúsculas).
func ParseSession(s string) (Session, error) {
	// Caser no es seguro entre goroutines: uno por llamada.
	key := cases.Fold().String(strings.TrimSpace(s))
	for _, canon := range Sessions {
		if key == string(canon) {
			return canon, nil
		}
	}
	return "", domain.ErrInvalidSession
}

// Order posición de la sesión dentro del día (-1 si no es válida).
func (s Session) Order() int {
	for i, canon := range Sessions {
		if s == canon {
			return i
		}
	}
	return -1
}

// Label etiqueta legible para reportes ("Morning", "Evening").
func (s Session) Label() string {
	return cases.Title(language.English).String(string(s))
}
