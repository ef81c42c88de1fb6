// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con DB_DRIVER=memory para levantar la API sin base de datos.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/domain/milk"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
)

var (
	_ repository.MemberRepository    = (*MemberRepo)(nil)
	_ repository.MilkEntryRepository = (*EntryRepo)(nil)
	_ repository.EntryTxRunner       = (*Store)(nil)
)

// Store guarda socios y entregas protegidos por un mutex.
type Store struct {
	mu      sync.RWMutex
	members map[string]entity.Member // por account_no
	entries []entity.MilkEntry
	err     error
}

// New construye un Store vacío.
func New() *Store {
	return &Store{members: make(map[string]entity.Member)}
}

// FailWith hace que todas las operaciones devuelvan err (nil restablece). Simula caída del almacén.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Members devuelve el repositorio de socios.
func (s *Store) Members() *MemberRepo { return &MemberRepo{s: s} }

// MilkEntries devuelve el repositorio de entregas.
func (s *Store) MilkEntries() *EntryRepo { return &EntryRepo{s: s} }

// AllEntries copia de todas las entregas guardadas.
func (s *Store) AllEntries() []entity.MilkEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.MilkEntry(nil), s.entries...)
}

// RunEntries acumula las entregas creadas por fn y solo las guarda si fn termina sin error.
func (s *Store) RunEntries(ctx context.Context, fn func(entries repository.MilkEntryRepository) error) error {
	tx := &entryTx{s: s}
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, tx.pending...)
	return nil
}

// ── Socios ────────────────────────────────────────────────────────────────────

// MemberRepo implementación en memoria de repository.MemberRepository.
type MemberRepo struct{ s *Store }

// Create persiste un socio. domain.ErrDuplicate si la cuenta o el email existen.
func (r *MemberRepo) Create(_ context.Context, m *entity.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	if r.existsLocked(m.AccountNo, m.Email) {
		return domain.ErrDuplicate
	}
	r.s.members[m.AccountNo] = *m
	return nil
}

// GetByAccountNo devuelve (nil, nil) si no existe.
func (r *MemberRepo) GetByAccountNo(_ context.Context, accountNo string) (*entity.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	m, ok := r.s.members[accountNo]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// ExistsByAccountOrEmail indica si la cuenta o el email ya están registrados.
func (r *MemberRepo) ExistsByAccountOrEmail(_ context.Context, accountNo, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return false, r.s.err
	}
	return r.existsLocked(accountNo, email), nil
}

// ResolveID traduce la cuenta a la identidad interna.
func (r *MemberRepo) ResolveID(_ context.Context, accountNo string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return "", r.s.err
	}
	m, ok := r.s.members[accountNo]
	if !ok {
		return "", domain.ErrMemberNotFound
	}
	return m.ID, nil
}

// UpdateRole cambia el rol del socio o devuelve domain.ErrMemberNotFound.
func (r *MemberRepo) UpdateRole(_ context.Context, accountNo, role string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	m, ok := r.s.members[accountNo]
	if !ok {
		return domain.ErrMemberNotFound
	}
	m.Role = role
	m.UpdatedAt = updatedAt
	r.s.members[accountNo] = m
	return nil
}

func (r *MemberRepo) existsLocked(accountNo, email string) bool {
	if _, ok := r.s.members[accountNo]; ok {
		return true
	}
	if email == "" {
		return false
	}
	for _, m := range r.s.members {
		if strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}

// ── Entregas ──────────────────────────────────────────────────────────────────

// EntryRepo implementación en memoria de repository.MilkEntryRepository.
type EntryRepo struct{ s *Store }

// Create agrega la entrega.
func (r *EntryRepo) Create(_ context.Context, e *entity.MilkEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	r.s.entries = append(r.s.entries, *e)
	return nil
}

// ListByUserInRange devuelve las entregas del socio con fecha en [from, to).
func (r *EntryRepo) ListByUserInRange(_ context.Context, userID string, from, to time.Time) ([]entity.MilkEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	from, to = milk.CalendarDate(from), milk.CalendarDate(to)
	var out []entity.MilkEntry
	for _, e := range r.s.entries {
		d := milk.CalendarDate(e.EntryDate)
		if e.UserID == userID && !d.Before(from) && d.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type entryTx struct {
	s       *Store
	pending []entity.MilkEntry
}

func (t *entryTx) Create(_ context.Context, e *entity.MilkEntry) error {
	t.pending = append(t.pending, *e)
	return nil
}

func (t *entryTx) ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]entity.MilkEntry, error) {
	return t.s.MilkEntries().ListByUserInRange(ctx, userID, from, to)
}
