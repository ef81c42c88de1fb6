// Package milk contiene el motor de resumen de entregas: genera la rejilla
// fija día × sesión y agrega sobre ella las entregas existentes.
//
// El resultado es siempre denso: una fila por celda de la rejilla, con ceros
// cuando no hay entregas (semántica de LEFT JOIN, nunca GROUP BY sobre datos).
package milk

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
)

// WindowDays días del resumen móvil (hoy incluido).
const WindowDays = 10

// DateLayout formato ISO de fecha usado en el reporte.
const DateLayout = "2006-01-02"

// Cell celda de la rejilla: un día calendario y una sesión.
type Cell struct {
	Date    time.Time // medianoche UTC del día calendario
	Session entity.Session
}

// SummaryRow agregado de las entregas de una celda. Se calcula en cada consulta, nunca se persiste.
type SummaryRow struct {
	Date          time.Time
	Session       entity.Session
	TotalQuantity decimal.Decimal
	AvgFat        decimal.Decimal // ponderado por cantidad
	AvgSNF        decimal.Decimal // ponderado por cantidad
	TotalAmount   decimal.Decimal
}

// WeightedValue par (cantidad, valor) para el promedio ponderado.
type WeightedValue struct {
	Quantity decimal.Decimal
	Value    decimal.Decimal
}

// CalendarDate reduce t a su día calendario (en la zona de t) expresado como medianoche UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Window devuelve el rango semiabierto [from, to) de días calendario cubierto por la rejilla.
func Window(ref time.Time, days int) (from, to time.Time) {
	today := CalendarDate(ref)
	return today.AddDate(0, 0, -(days - 1)), today.AddDate(0, 0, 1)
}

// Grid genera los últimos `days` días hasta ref (incluido) × Sessions,
// ordenados por fecha ascendente y morning antes que evening.
func Grid(ref time.Time, days int) []Cell {
	if days <= 0 {
		return []Cell{}
	}
	from, _ := Window(ref, days)
	cells := make([]Cell, 0, days*len(entity.Sessions))
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		for _, s := range entity.Sessions {
			cells = append(cells, Cell{Date: day, Session: s})
		}
	}
	return cells
}

// WeightedAvg = sum(qty*valor)/sum(qty); cero si no hay pares o la cantidad total es cero.
func WeightedAvg(pairs []WeightedValue) decimal.Decimal {
	var qty, weighted decimal.Decimal
	for _, p := range pairs {
		qty = qty.Add(p.Quantity)
		weighted = weighted.Add(p.Quantity.Mul(p.Value))
	}
	if qty.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(qty)
}

type cellKey struct {
	date    string
	session entity.Session
}

type bucket struct {
	quantity decimal.Decimal
	amount   decimal.Decimal
	fat      []WeightedValue
	snf      []WeightedValue
}

// Summarize agrega entries sobre la rejilla de `days` días terminada en ref.
// Las entregas fuera de la ventana o con sesión desconocida se ignoran.
// Todos los valores se redondean a 2 decimales.
func Summarize(ref time.Time, days int, entries []entity.MilkEntry) []SummaryRow {
	buckets := make(map[cellKey]*bucket)
	for _, e := range entries {
		session, err := entity.ParseSession(string(e.Session))
		if err != nil {
			continue
		}
		k := cellKey{date: CalendarDate(e.EntryDate).Format(DateLayout), session: session}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		b.quantity = b.quantity.Add(e.Quantity)
		b.amount = b.amount.Add(e.Amount)
		b.fat = append(b.fat, WeightedValue{Quantity: e.Quantity, Value: e.Fat})
		b.snf = append(b.snf, WeightedValue{Quantity: e.Quantity, Value: e.SNF})
	}

	grid := Grid(ref, days)
	rows := make([]SummaryRow, 0, len(grid))
	for _, c := range grid {
		row := SummaryRow{
			Date:          c.Date,
			Session:       c.Session,
			TotalQuantity: decimal.Zero,
			AvgFat:        decimal.Zero,
			AvgSNF:        decimal.Zero,
			TotalAmount:   decimal.Zero,
		}
		if b, ok := buckets[cellKey{date: c.Date.Format(DateLayout), session: c.Session}]; ok {
			row.TotalQuantity = b.quantity.Round(2)
			row.AvgFat = WeightedAvg(b.fat).Round(2)
			row.AvgSNF = WeightedAvg(b.snf).Round(2)
			row.TotalAmount = b.amount.Round(2)
		}
		rows = append(rows, row)
	}
	return rows
}
