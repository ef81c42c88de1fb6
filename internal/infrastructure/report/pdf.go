package report

// Layout A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Socio + Cuenta      │  Periodo desde / hasta        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Sesión | Litros | Grasa | SNF | Importe       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Litros del periodo / Importe del periodo           │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFRenderer genera el resumen en PDF con Maroto v2.
type PDFRenderer struct{}

// NewPDFRenderer construye el renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Format implementa collection.ReportRenderer.
func (*PDFRenderer) Format() string { return FormatPDF }

// Render genera el PDF y devuelve sus bytes.
func (*PDFRenderer) Render(_ context.Context, r *dto.SummaryReport) (*dto.ExportFile, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de entregas de leche", true).
		WithAuthor(r.MemberName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, rr := range tableRows(r.Rows) {
		m.AddRows(rr)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return &dto.ExportFile{
		Filename:    filename(r, FormatPDF),
		ContentType: "application/pdf",
		Content:     doc.GetBytes(),
	}, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.SummaryReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.MemberName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cuenta: "+r.AccountNo, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE ENTREGAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(r.From+" a "+r.To, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Sesión", 2, align.Left),
		h("Litros", 2, align.Right),
		h("Grasa %", 2, align.Right),
		h("SNF %", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableRows una fila por celda de la rejilla (20 en el resumen de 10 días).
func tableRows(rows []dto.SummaryRowDTO) []core.Row {
	cell := func(s string, a align.Type) core.Col {
		return col.New(2).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(6).Add(
			cell(r.Date, align.Left),
			cell(entity.Session(r.Session).Label(), align.Left),
			cell(fixed2(r.TotalQuantity), align.Right),
			cell(fixed2(r.AvgFat), align.Right),
			cell(fixed2(r.AvgSNF), align.Right),
			cell(fixed2(r.TotalAmount), align.Right),
		))
	}
	return out
}

func totalsRow(rows []dto.SummaryRowDTO) core.Row {
	qty, amount := totals(rows)
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1})
	}
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			label("Litros del periodo:"),
			text.New("Importe del periodo:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
		),
		col.New(3).Add(
			value(fixed2(qty)),
			text.New(fixed2(amount), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: 5}),
		),
	)
}
