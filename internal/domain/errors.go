package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrMemberNotFound = errors.New("socio no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrInvalidSession = errors.New("sesión inválida: debe ser morning o evening")
	ErrDuplicate      = errors.New("el número de cuenta o el email ya está registrado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
)
