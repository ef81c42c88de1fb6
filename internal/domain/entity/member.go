package entity

import "time"

// Roles válidos para Member.
const (
	RoleMember    = "member"    // socio productor: solo ve su propio resumen
	RoleCollector = "collector" // centro de acopio: registra entregas
	RoleAdmin     = "admin"
)

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleCollector, RoleAdmin:
		return true
	}
	return false
}

// Member representa un socio productor identificado por su número de cuenta.
type Member struct {
	ID           string
	Name         string
	AccountNo    string // único
	Email        string // opcional; único cuando está presente
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
