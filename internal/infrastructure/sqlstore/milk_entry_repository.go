package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
)

var _ repository.MilkEntryRepository = (*MilkEntryRepo)(nil)

// MilkEntryRepo entregas de leche sobre database/sql.
type MilkEntryRepo struct {
	q Querier
}

// NewMilkEntryRepository construye el adaptador. Pasar db o tx.
func NewMilkEntryRepository(q Querier) *MilkEntryRepo {
	return &MilkEntryRepo{q: q}
}

// Create persiste una entrega. Los decimales viajan como texto (driver.Valuer de decimal).
func (r *MilkEntryRepo) Create(ctx context.Context, e *entity.MilkEntry) error {
	query := `
		INSERT INTO milk_entries (id, user_id, entry_date, session, quantity, fat, snf, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		e.ID, e.UserID, dateParam(e.EntryDate), string(e.Session),
		e.Quantity, e.Fat, e.SNF, e.Amount, e.CreatedAt.UTC(),
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
	WHERE user_id = ?
	  AND entry_date >= ?
	  AND entry_date <  ?`

	rows, err := r.q.QueryContext(ctx, query, userID, dateParam(from), dateParam(to))
	if err != nil {
		return nil, fmt.Errorf("milk_entries.ListByUserInRange: %w", err)
	}
	defer rows.Close()

	var out []entity.MilkEntry
	for rows.Next() {
		var (
			e                  entity.MilkEntry
			session            string
			entryDate, created any
		)
		if err := rows.Scan(
			&e.ID, &e.UserID, &entryDate, &session,
			&e.Quantity, &e.Fat, &e.SNF, &e.Amount, &created,
		); err != nil {
			return nil, fmt.Errorf("milk_entries.ListByUserInRange scan: %w", err)
		}
		if e.EntryDate, err = parseDate(entryDate); err != nil {
			return nil, fmt.Errorf("milk_entries.ListByUserInRange: %w", err)
		}
		e.Session = entity.Session(session)
		e.CreatedAt = parseTimestamp(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("milk_entries.ListByUserInRange rows: %w", err)
	}
	return out, nil
}
