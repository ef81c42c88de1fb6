package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo socios sobre database/sql.
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador. Pasar db o tx.
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

// Create persiste un nuevo socio.
func (r *MemberRepo) Create(ctx context.Context, m *entity.Member) error {
	query := `
		INSERT INTO users (id, name, account_no, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		m.ID, m.Name, m.AccountNo, nullIfEmpty(m.Email), m.PasswordHash, m.Role, m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
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
		FROM users WHERE account_no = ?`
	var (
		m                entity.Member
		created, updated any
	)
	err := r.q.QueryRowContext(ctx, query, accountNo).Scan(
		&m.ID, &m.Name, &m.AccountNo, &m.Email, &m.PasswordHash, &m.Role, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by account_no: %w", err)
	}
	m.CreatedAt = parseTimestamp(created)
	m.UpdatedAt = parseTimestamp(updated)
	return &m, nil
}

// ExistsByAccountOrEmail indica si la cuenta o el email ya están registrados.
func (r *MemberRepo) ExistsByAccountOrEmail(ctx context.Context, accountNo, email string) (bool, error) {
	query := `
		SELECT COUNT(1) FROM users
		WHERE account_no = ? OR (? <> '' AND LOWER(email) = LOWER(?))`
	var n int
	if err := r.q.QueryRowContext(ctx, query, accountNo, email, email).Scan(&n); err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return n > 0, nil
}

// ResolveID devuelve el id interno del socio o domain.ErrMemberNotFound.
func (r *MemberRepo) ResolveID(ctx context.Context, accountNo string) (string, error) {
	var id string
	err := r.q.QueryRowContext(ctx, `SELECT id FROM users WHERE account_no = ?`, accountNo).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrMemberNotFound
		}
		return "", fmt.Errorf("resolve user id: %w", err)
	}
	return id, nil
}

// UpdateRole cambia el rol del socio o devuelve domain.ErrMemberNotFound.
func (r *MemberRepo) UpdateRole(ctx context.Context, accountNo, role string, updatedAt time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE users SET role = ?, updated_at = ? WHERE account_no = ?`, role, updatedAt.UTC(), accountNo)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if n == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}
