package dto

import "github.com/shopspring/decimal"

// MilkEntryRequest entrada para registrar una entrega. Los importes aceptan número o string JSON.
type MilkEntryRequest struct {
	AccountNo string          `json:"account_no" validate:"required,max=50"`
	EntryDate string          `json:"entry_date" validate:"required"` // YYYY-MM-DD (se acepta RFC3339)
	Session   string          `json:"session" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Fat       decimal.Decimal `json:"fat"`
	SNF       decimal.Decimal `json:"snf"`
	Amount    decimal.Decimal `json:"amount"`
}

// SummaryRowDTO fila del resumen de 10 días. Los valores van redondeados a 2 decimales.
type SummaryRowDTO struct {
	Date          string  `json:"date"`
	Session       string  `json:"session"`
	TotalQuantity float64 `json:"total_quantity"`
	AvgFat        float64 `json:"avg_fat"`
	AvgSNF        float64 `json:"avg_snf"`
	TotalAmount   float64 `json:"total_amount"`
}

// SummaryReport resumen completo listo para renderizar (PDF, XLSX, XML).
type SummaryReport struct {
	AccountNo  string
	MemberName string
	From       string
	To         string
	Rows       []SummaryRowDTO
}

// ExportFile archivo generado para descarga.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	Digest      string // SHA-256 hex del contenido canónico (solo XML)
}
