package collection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/domain/milk"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

// MaxInputScale decimales admitidos en quantity, fat, snf y amount.
// Coincide con la escala de las columnas NUMERIC/DECIMAL: ningún almacén redondea al guardar.
const MaxInputScale = 4

// EntryUseCase registra entregas de leche (una a una o por lote).
type EntryUseCase struct {
	members   repository.MemberRepository
	entries   repository.MilkEntryRepository
	txRunner  repository.EntryTxRunner
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewEntryUseCase construye el caso de uso. publisher puede ser no-op.
func NewEntryUseCase(
	members repository.MemberRepository,
	entries repository.MilkEntryRepository,
	txRunner repository.EntryTxRunner,
	publisher EventPublisher,
	log *logger.Logger,
) *EntryUseCase {
	return &EntryUseCase{
		members:   members,
		entries:   entries,
		txRunner:  txRunner,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Record valida y guarda una entrega. La sesión se normaliza a minúsculas antes de persistir;
// una sesión inválida se rechaza sin tocar el almacén.
func (uc *EntryUseCase) Record(ctx context.Context, in dto.MilkEntryRequest) (*entity.MilkEntry, error) {
	e, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("entry: guardar entrega: %w", err)
	}
	uc.publish(ctx, strings.TrimSpace(in.AccountNo), e)
	return e, nil
}

// Import guarda un lote de entregas en una sola transacción: o entran todas o ninguna.
// Devuelve la cantidad guardada.
func (uc *EntryUseCase) Import(ctx context.Context, in []dto.MilkEntryRequest) (int, error) {
	if len(in) == 0 {
		return 0, fmt.Errorf("%w: lote vacío", domain.ErrInvalidInput)
	}
	built := make([]*entity.MilkEntry, 0, len(in))
	for i, req := range in {
		e, err := uc.build(ctx, req)
		if err != nil {
			return 0, fmt.Errorf("fila %d: %w", i+1, err)
		}
		built = append(built, e)
	}
	err := uc.txRunner.RunEntries(ctx, func(entries repository.MilkEntryRepository) error {
		for i, e := range built {
			if err := entries.Create(ctx, e); err != nil {
				return fmt.Errorf("fila %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("entry: importar lote: %w", err)
	}
	for i, e := range built {
		uc.publish(ctx, strings.TrimSpace(in[i].AccountNo), e)
	}
	return len(built), nil
}

func (uc *EntryUseCase) build(ctx context.Context, in dto.MilkEntryRequest) (*entity.MilkEntry, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	session, err := entity.ParseSession(in.Session)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.Fat.IsNegative() || in.SNF.IsNegative() || in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: fat, snf y amount no pueden ser negativos", domain.ErrInvalidInput)
	}
	for _, v := range []decimal.Decimal{in.Quantity, in.Fat, in.SNF, in.Amount} {
		if !v.Equal(v.Round(MaxInputScale)) {
			return nil, fmt.Errorf("%w: quantity, fat, snf y amount admiten hasta %d decimales", domain.ErrInvalidInput, MaxInputScale)
		}
	}
	date, err := ParseEntryDate(in.EntryDate)
	if err != nil {
		return nil, err
	}
	userID, err := uc.members.ResolveID(ctx, strings.TrimSpace(in.AccountNo))
	if err != nil {
		return nil, err
	}
	return &entity.MilkEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		EntryDate: date,
		Session:   session,
		Quantity:  in.Quantity,
		Fat:       in.Fat,
		SNF:       in.SNF,
		Amount:    in.Amount,
		CreatedAt: uc.now(),
	}, nil
}

// ParseEntryDate acepta YYYY-MM-DD o RFC3339 y conserva solo el día calendario.
func ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(milk.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return milk.CalendarDate(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: entry_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
}

// publish notifica la entrega. Best-effort: la entrega ya está guardada, un fallo solo se registra.
func (uc *EntryUseCase) publish(ctx context.Context, accountNo string, e *entity.MilkEntry) {
	if uc.publisher == nil {
		return
	}
	evt := EntryRecordedEvent{
		ID:         e.ID,
		AccountNo:  accountNo,
		EntryDate:  e.EntryDate.Format(milk.DateLayout),
		Session:    string(e.Session),
		Quantity:   e.Quantity.String(),
		Amount:     e.Amount.String(),
		RecordedAt: e.CreatedAt,
	}
	if err := uc.publisher.PublishEntryRecorded(ctx, evt); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("entry_id", e.ID).Msg("publicar evento de entrega")
	}
}
