// Package collection orquesta los casos de uso de entregas de leche: registro,
// resumen móvil de 10 días y exportación del resumen.
package collection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/milk"
	"github.com/jhoicas/Lecheria-api/internal/domain/repository"
)

// SummaryUseCase genera el resumen denso día × sesión de un socio.
//
// Sin estado propio: cada llamada lee las entregas actuales y calcula una rejilla nueva.
// No reintenta; un fallo del almacén se devuelve tal cual (envuelto).
type SummaryUseCase struct {
	members repository.MemberRepository
	entries repository.MilkEntryRepository
	loc     *time.Location
	now     func() time.Time
}

// NewSummaryUseCase construye el caso de uso. loc define qué día es "hoy" cuando no se pasa referencia.
func NewSummaryUseCase(members repository.MemberRepository, entries repository.MilkEntryRepository, loc *time.Location) *SummaryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SummaryUseCase{members: members, entries: entries, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SummaryUseCase) WithClock(now func() time.Time) *SummaryUseCase {
	uc.now = now
	return uc
}

// ParseReferenceDate interpreta una fecha YYYY-MM-DD opcional. Vacía => nil (usar "hoy").
func (uc *SummaryUseCase) ParseReferenceDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(milk.DateLayout, s, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return &t, nil
}

// GetSummary devuelve las 20 filas del resumen de la cuenta, ordenadas por fecha y sesión.
//
// Errores:
//   - domain.ErrInvalidInput   si accountNo está vacío.
//   - domain.ErrMemberNotFound si la cuenta no existe (nunca un resumen vacío).
//   - cualquier otro           fallo del almacén.
func (uc *SummaryUseCase) GetSummary(ctx context.Context, accountNo string, ref *time.Time) ([]dto.SummaryRowDTO, error) {
	accountNo = strings.TrimSpace(accountNo)
	if accountNo == "" {
		return nil, fmt.Errorf("%w: account_no es requerido", domain.ErrInvalidInput)
	}
	userID, err := uc.members.ResolveID(ctx, accountNo)
	if err != nil {
		return nil, err
	}
	rows, err := uc.summarize(ctx, userID, uc.reference(ref))
	if err != nil {
		return nil, err
	}
	return toRowDTOs(rows), nil
}

// Report arma el resumen con los datos del socio para los renderizadores.
func (uc *SummaryUseCase) Report(ctx context.Context, accountNo string, ref *time.Time) (*dto.SummaryReport, error) {
	accountNo = strings.TrimSpace(accountNo)
	if accountNo == "" {
		return nil, fmt.Errorf("%w: account_no es requerido", domain.ErrInvalidInput)
	}
	member, err := uc.members.GetByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, fmt.Errorf("summary: buscar socio: %w", err)
	}
	if member == nil {
		return nil, domain.ErrMemberNotFound
	}
	rows, err := uc.summarize(ctx, member.ID, uc.reference(ref))
	if err != nil {
		return nil, err
	}
	out := toRowDTOs(rows)
	return &dto.SummaryReport{
		AccountNo:  member.AccountNo,
		MemberName: member.Name,
		From:       out[0].Date,
		To:         out[len(out)-1].Date,
		Rows:       out,
	}, nil
}

func (uc *SummaryUseCase) reference(ref *time.Time) time.Time {
	if ref != nil {
		return *ref
	}
	return uc.now().In(uc.loc)
}

func (uc *SummaryUseCase) summarize(ctx context.Context, userID string, ref time.Time) ([]milk.SummaryRow, error) {
	from, to := milk.Window(ref, milk.WindowDays)
	entries, err := uc.entries.ListByUserInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summary: listar entregas: %w", err)
	}
	return milk.Summarize(ref, milk.WindowDays, entries), nil
}

func toRowDTOs(rows []milk.SummaryRow) []dto.SummaryRowDTO {
	out := make([]dto.SummaryRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SummaryRowDTO{
			Date:          r.Date.Format(milk.DateLayout),
			Session:       string(r.Session),
			TotalQuantity: r.TotalQuantity.InexactFloat64(),
			AvgFat:        r.AvgFat.InexactFloat64(),
			AvgSNF:        r.AvgSNF.InexactFloat64(),
			TotalAmount:   r.TotalAmount.InexactFloat64(),
		})
	}
	return out
}
