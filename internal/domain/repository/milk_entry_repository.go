package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
)

// MilkEntryRepository almacén append-only de entregas de leche.
type MilkEntryRepository interface {
	Create(ctx context.Context, entry *entity.MilkEntry) error
	// ListByUserInRange devuelve las entregas del socio con fecha en [from, to).
	// Solo se compara la parte de fecha; el orden no está garantizado.
	ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]entity.MilkEntry, error)
}

// EntryTxRunner ejecuta fn dentro de una transacción con un repositorio de entregas atado a ella.
type EntryTxRunner interface {
	RunEntries(ctx context.Context, fn func(entries MilkEntryRepository) error) error
}
