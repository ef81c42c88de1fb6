package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo implementación del puerto MemberRepository sobre PostgreSQL.
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador de persistencia para socios. Pasar pool o tx.
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

// Create persiste un nuevo socio.
func (r *MemberRepo) Create(ctx context.Context, m *entity.Member) error {
	query := `
		INSERT INTO users (id, name, account_no, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.AccountNo, nullIfEmpty(m.Email), m.PasswordHash, m.Role, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByAccountNo obtiene un socio por número de cuenta; (nil, nil) si no existe.
func (r *MemberRepo) GetByAccountNo(ctx context.Context, accountNo string) (*entity.Member, error) {
	query := `
		SELECT id, name, account_no, COALESCE(email, ''), password_hash, role, created_at, updated_at
		FROM users WHERE account_no = $1`
	var m entity.Member
	err := r.q.QueryRow(ctx, query, accountNo).Scan(
		&m.ID, &m.Name, &m.AccountNo, &m.Email, &m.PasswordHash, &m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by account_no: %w", err)
	}
	return &m, nil
}

// ExistsByAccountOrEmail indica si la cuenta o el email ya están registrados.
func (r *MemberRepo) ExistsByAccountOrEmail(ctx context.Context, accountNo, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE account_no = $1 OR ($2 <> '' AND LOWER(email) = LOWER($2))
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, accountNo, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

// ResolveID devuelve el id interno del socio o domain.ErrMemberNotFound.
func (r *MemberRepo) ResolveID(ctx context.Context, accountNo string) (string, error) {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM users WHERE account_no = $1`, accountNo).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrMemberNotFound
		}
		return "", fmt.Errorf("resolve user id: %w", err)
	}
	return id, nil
}

// UpdateRole cambia el rol del socio o devuelve domain.ErrMemberNotFound.
func (r *MemberRepo) UpdateRole(ctx context.Context, accountNo, role string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET role = $1, updated_at = $2 WHERE account_no = $3`, role, updatedAt, accountNo)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}
