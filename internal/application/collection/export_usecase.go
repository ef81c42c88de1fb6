package collection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain"
)

// ExportUseCase genera el resumen en el formato pedido (pdf, xlsx, xml).
type ExportUseCase struct {
	summary   *SummaryUseCase
	renderers map[string]ReportRenderer
}

// NewExportUseCase registra los renderizadores por su Format().
func NewExportUseCase(summary *SummaryUseCase, renderers ...ReportRenderer) *ExportUseCase {
	m := make(map[string]ReportRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Format()] = r
	}
	return &ExportUseCase{summary: summary, renderers: m}
}

// Export arma el resumen y lo renderiza.
// Formato desconocido => domain.ErrInvalidInput; cuenta inexistente => domain.ErrMemberNotFound.
func (uc *ExportUseCase) Export(ctx context.Context, accountNo string, ref *time.Time, format string) (*dto.ExportFile, error) {
	renderer, ok := uc.renderers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: formato no soportado: %q", domain.ErrInvalidInput, format)
	}
	report, err := uc.summary.Report(ctx, accountNo, ref)
	if err != nil {
		return nil, err
	}
	file, err := renderer.Render(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", renderer.Format(), err)
	}
	return file, nil
}
