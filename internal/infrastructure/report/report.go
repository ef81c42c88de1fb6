// Package report renderiza el resumen de 10 días en archivos descargables.
package report

import (
	"regexp"
	"strconv"

	"github.com/jhoicas/Lecheria-api/internal/application/collection"
	"github.com/jhoicas/Lecheria-api/internal/application/dto"
)

// Formatos soportados.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// All devuelve los tres renderers disponibles.
func All() []collection.ReportRenderer {
	return []collection.ReportRenderer{NewPDFRenderer(), NewXLSXRenderer(), NewXMLRenderer()}
}

// filename resumen_<cuenta>_<hasta>.<ext>, sin caracteres que rompan Content-Disposition.
func filename(r *dto.SummaryReport, ext string) string {
	return "resumen_" + unsafeFilename.ReplaceAllString(r.AccountNo, "_") + "_" + r.To + "." + ext
}

func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// totals suma cantidades e importes del periodo.
func totals(rows []dto.SummaryRowDTO) (qty, amount float64) {
	for _, r := range rows {
		qty += r.TotalQuantity
		amount += r.TotalAmount
	}
	return qty, amount
}
