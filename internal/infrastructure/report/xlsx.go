package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
)

const sheetName = "Resumen"

var xlsxHeadings = []string{"Fecha", "Sesión", "Litros", "Grasa", "SNF", "Importe"}

// XLSXRenderer genera el resumen como hoja de cálculo (excelize).
type XLSXRenderer struct{}

// NewXLSXRenderer construye el renderer.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

// Format implementa collection.ReportRenderer.
func (*XLSXRenderer) Format() string { return FormatXLSX }

// Render escribe cabecera, una fila por celda del resumen y una fila de totales.
func (*XLSXRenderer) Render(_ context.Context, r *dto.SummaryReport) (*dto.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range xlsxHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	rowNo := 2
	for _, d := range r.Rows {
		values := []any{d.Date, d.Session, d.TotalQuantity, d.AvgFat, d.AvgSNF, d.TotalAmount}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNo)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
			}
		}
		rowNo++
	}

	qty, amount := totals(r.Rows)
	totalRow := fmt.Sprint(rowNo)
	_ = f.SetCellValue(sheetName, "A"+totalRow, "Total")
	_ = f.SetCellValue(sheetName, "C"+totalRow, qty)
	_ = f.SetCellValue(sheetName, "F"+totalRow, amount)
	if err := f.SetCellStyle(sheetName, "A"+totalRow, "F"+totalRow, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo totales: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return &dto.ExportFile{
		Filename:    filename(r, FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     buf.Bytes(),
	}, nil
}
