package report_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/report"
)

func sampleReport() *dto.SummaryReport {
	return &dto.SummaryReport{
		AccountNo:  "ACC/1001",
		MemberName: "Ramesh & Hijos",
		From:       "2026-10-10",
		To:         "2026-10-19",
		Rows: []dto.SummaryRowDTO{
			{Date: "2026-10-18", Session: "morning", TotalQuantity: 30, AvgFat: 4.67, AvgSNF: 8.67, TotalAmount: 1000.46},
			{Date: "2026-10-18", Session: "evening"},
			{Date: "2026-10-19", Session: "morning", TotalQuantity: 12.5, AvgFat: 4.1, AvgSNF: 8.4, TotalAmount: 410},
			{Date: "2026-10-19", Session: "evening"},
		},
	}
}

func TestAll_FormatosUnicos(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range report.All() {
		assert.False(t, seen[r.Format()], r.Format())
		seen[r.Format()] = true
	}
	assert.Equal(t, map[string]bool{"pdf": true, "xlsx": true, "xml": true}, seen)
}

func TestXMLRenderer_CanonicoYDigest(t *testing.T) {
	out, err := report.NewXMLRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "resumen_ACC_1001_2026-10-19.xml", out.Filename)
	assert.Equal(t, "application/xml", out.ContentType)

	sum := sha256.Sum256(out.Content)
	assert.Equal(t, hex.EncodeToString(sum[:]), out.Digest)
	assert.False(t, bytes.HasPrefix(out.Content, []byte("<?xml")), "C14N omite la declaración")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out.Content))
	root := doc.SelectElement("ResumenLeche")
	require.NotNil(t, root)
	assert.Equal(t, "Ramesh & Hijos", root.SelectAttrValue("socio", ""))
	filas := root.SelectElements("Fila")
	require.Len(t, filas, 4)
	assert.Equal(t, "4.67", filas[0].SelectElement("GrasaPromedio").Text())
	assert.Equal(t, "0.00", filas[1].SelectElement("CantidadTotal").Text())
	assert.Equal(t, "42.50", root.FindElement("Totales/Cantidad").Text())
	assert.Equal(t, "1410.46", root.FindElement("Totales/Importe").Text())
}

func TestXMLRenderer_Determinista(t *testing.T) {
	a, err := report.NewXMLRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)
	b, err := report.NewXMLRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, a.Digest, b.Digest)
	assert.Equal(t, a.Content, b.Content)
}

func TestXLSXRenderer_Celdas(t *testing.T) {
	out, err := report.NewXLSXRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "resumen_ACC_1001_2026-10-19.xlsx", out.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(out.Content))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Resumen", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fecha", v)
	v, err = f.GetCellValue("Resumen", "B2")
	require.NoError(t, err)
	assert.Equal(t, "morning", v)
	v, err = f.GetCellValue("Resumen", "F2")
	require.NoError(t, err)
	assert.Equal(t, "1000.46", v)
	v, err = f.GetCellValue("Resumen", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)
}

func TestPDFRenderer_GeneraDocumento(t *testing.T) {
	out, err := report.NewPDFRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF")))
	assert.Empty(t, out.Digest)
}
