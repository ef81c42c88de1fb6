package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
)

var _ repository.EntryTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción database/sql.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunEntries ejecuta fn con el repo de entregas atado a la tx; Commit solo si fn no falla.
func (r *TxRunner) RunEntries(ctx context.Context, fn func(entries repository.MilkEntryRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewMilkEntryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
