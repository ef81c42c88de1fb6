// Package storage abre el almacén configurado por DB_DRIVER y entrega los
// repositorios ya construidos, junto con la función de cierre.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/migrations"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/sqlstore"
	"github.com/jhoicas/Lecheria-api/pkg/config"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

// Stores repositorios listos para inyectar en los casos de uso.
type Stores struct {
	Members  repository.MemberRepository
	Entries  repository.MilkEntryRepository
	TxRunner repository.EntryTxRunner
	close    func()
}

// Close libera el pool o la conexión.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre el almacén del driver configurado y, si cfg.Migrate, aplica las migraciones pendientes.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Stores, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store := memory.New()
		return &Stores{Members: store.Members(), Entries: store.MilkEntries(), TxRunner: store}, nil
	}

	dsn := cfg.ConnectionString()
	s, err := open(ctx, cfg, dsn)
	if err != nil {
		return nil, err
	}
	if cfg.Migrate {
		if err := migrations.Run(cfg.Driver, dsn); err != nil {
			s.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Msg("migraciones aplicadas")
	}
	return s, nil
}

func open(ctx context.Context, cfg config.DBConfig, dsn string) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Stores{
			Members:  postgres.NewMemberRepository(pool),
			Entries:  postgres.NewMilkEntryRepository(pool),
			TxRunner: postgres.NewTxRunner(pool),
			close:    pool.Close,
		}, nil
	case config.DriverMySQL, config.DriverSQLite:
		db, err := sqlstore.Open(ctx, cfg.Driver, dsn)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Members:  sqlstore.NewMemberRepository(db),
			Entries:  sqlstore.NewMilkEntryRepository(db),
			TxRunner: sqlstore.NewTxRunner(db),
			close:    func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("storage: driver no soportado %q", cfg.Driver)
	}
}
