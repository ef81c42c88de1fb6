package report

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
)

// XMLRenderer genera el resumen en XML canónico (C14N) y su digest SHA-256,
// para que el destinatario pueda verificar que el archivo no fue alterado.
type XMLRenderer struct{}

// NewXMLRenderer construye el renderer.
func NewXMLRenderer() *XMLRenderer { return &XMLRenderer{} }

// Format implementa collection.ReportRenderer.
func (*XMLRenderer) Format() string { return FormatXML }

// Render construye el documento con etree y lo canonicaliza.
func (*XMLRenderer) Render(_ context.Context, r *dto.SummaryReport) (*dto.ExportFile, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("ResumenLeche")
	root.CreateAttr("cuenta", r.AccountNo)
	root.CreateAttr("socio", r.MemberName)
	root.CreateAttr("desde", r.From)
	root.CreateAttr("hasta", r.To)

	for _, d := range r.Rows {
		fila := root.CreateElement("Fila")
		fila.CreateAttr("fecha", d.Date)
		fila.CreateAttr("sesion", d.Session)
		fila.CreateElement("CantidadTotal").SetText(fixed2(d.TotalQuantity))
		fila.CreateElement("GrasaPromedio").SetText(fixed2(d.AvgFat))
		fila.CreateElement("SNFPromedio").SetText(fixed2(d.AvgSNF))
		fila.CreateElement("ImporteTotal").SetText(fixed2(d.TotalAmount))
	}

	qty, amount := totals(r.Rows)
	tot := root.CreateElement("Totales")
	tot.CreateElement("Cantidad").SetText(fixed2(qty))
	tot.CreateElement("Importe").SetText(fixed2(amount))

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	canon, err := canonicalizeXML(raw)
	if err != nil {
		return nil, fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)
	return &dto.ExportFile{
		Filename:    filename(r, FormatXML),
		ContentType: "application/xml",
		Content:     canon,
		Digest:      hex.EncodeToString(sum[:]),
	}, nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
