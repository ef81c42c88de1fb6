// Package csvimport lee lotes de entregas exportados por las planillas de acopio.
//
// Formato: account_no,entry_date,session,quantity,fat,snf,amount
// La primera fila puede ser cabecera. Las planillas antiguas salen en ISO-8859-1.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain"
)

// Columns orden esperado de las columnas.
var Columns = []string{"account_no", "entry_date", "session", "quantity", "fat", "snf", "amount"}

// Options opciones de lectura.
type Options struct {
	Latin1    bool // decodificar ISO-8859-1
	Delimiter rune // ',' por defecto
}

// Read convierte el CSV en solicitudes de entrega. Falla con la fila exacta ante el primer error.
func Read(r io.Reader, opts Options) ([]dto.MilkEntryRequest, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	cr.TrimLeadingSpace = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	var out []dto.MilkEntryRequest
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrInvalidInput, line, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		req, err := toRequest(rec)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		out = append(out, req)
	}
	return out, nil
}

func isHeader(rec []string) bool {
	return strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")), Columns[0])
}

func toRequest(rec []string) (dto.MilkEntryRequest, error) {
	nums := make([]decimal.Decimal, 4)
	for i := range nums {
		raw := strings.TrimSpace(rec[3+i])
		if raw == "" {
			continue
		}
		// Las planillas regionales usan coma decimal.
		d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
		if err != nil {
			return dto.MilkEntryRequest{}, fmt.Errorf("%w: %s inválido: %q", domain.ErrInvalidInput, Columns[3+i], raw)
		}
		nums[i] = d
	}
	return dto.MilkEntryRequest{
		AccountNo: strings.TrimSpace(rec[0]),
		EntryDate: strings.TrimSpace(rec[1]),
		Session:   strings.TrimSpace(rec[2]),
		Quantity:  nums[0],
		Fat:       nums[1],
		SNF:       nums[2],
		Amount:    nums[3],
	}, nil
}
