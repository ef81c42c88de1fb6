package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
)

var _ repository.MilkEntryRepository = (*MilkEntryRepo)(nil)

// MilkEntryRepo entregas de leche sobre PostgreSQL (usable con pool o tx).
type MilkEntryRepo struct {
	q Querier
}

// NewMilkEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMilkEntryRepository(q Querier) *MilkEntryRepo {
	return &MilkEntryRepo{q: q}
}

// Create persiste una entrega. La sesión ya llega normalizada.
func (r *MilkEntryRepo) Create(ctx context.Context, e *entity.MilkEntry) error {
	query := `
		INSERT INTO milk_entries (id, user_id, entry_date, session, quantity, fat, snf, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, e.EntryDate, string(e.Session), e.Quantity, e.Fat, e.SNF, e.Amount, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert milk entry: %w", err)
	}
	return nil
}

// ListByUserInRange entregas del socio con entry_date en [from, to).
func (r *MilkEntryRepo) ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]entity.MilkEntry, error) {
	const query = `
	SELECT id, user_id, entry_date, session, quantity, fat, snf, amount, created_at
	FROM milk_entries
	WHERE user_id = $1
	  AND entry_date >= $2
	  AND entry_date <  $3`

	rows, err := r.q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("milk_entries.ListByUserInRange: %w", err)
	}
	defer rows.Close()

	var out []entity.MilkEntry
	for rows.Next() {
		var (
			e       entity.MilkEntry
			session string
		)
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.EntryDate, &session,
			&e.Quantity, &e.Fat, &e.SNF, &e.Amount, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("milk_entries.ListByUserInRange scan: %w", err)
		}
		e.Session = entity.Session(session)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("milk_entries.ListByUserInRange rows: %w", err)
	}
	return out, nil
}
