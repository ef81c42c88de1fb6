package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
)

// MemberRepository define el puerto de persistencia para Member (DIP).
type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	// GetByAccountNo devuelve (nil, nil) si la cuenta no existe.
	GetByAccountNo(ctx context.Context, accountNo string) (*entity.Member, error)
	// ExistsByAccountOrEmail indica si la cuenta o el email (si no está vacío) ya están registrados.
	ExistsByAccountOrEmail(ctx context.Context, accountNo, email string) (bool, error)
	// ResolveID traduce un número de cuenta a la identidad interna.
	// Retorna domain.ErrMemberNotFound si no existe.
	ResolveID(ctx context.Context, accountNo string) (string, error)
	// UpdateRole cambia el rol del socio. Retorna domain.ErrMemberNotFound si no existe.
	UpdateRole(ctx context.Context, accountNo, role string, updatedAt time.Time) error
}
