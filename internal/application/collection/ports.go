package collection

import (
	"context"
	"time"

	"github.com/jhoicas/Lecheria-api/internal/application/dto"
)

// EntryRecordedEvent se emite después de guardar una entrega.
type EntryRecordedEvent struct {
	ID         string    `json:"id"`
	AccountNo  string    `json:"account_no"`
	EntryDate  string    `json:"entry_date"`
	Session    string    `json:"session"`
	Quantity   string    `json:"quantity"`
	Amount     string    `json:"amount"`
	RecordedAt time.Time `json:"recorded_at"`
}

// EventPublisher puerto de salida para notificar entregas registradas (AMQP o no-op).
type EventPublisher interface {
	PublishEntryRecorded(ctx context.Context, evt EntryRecordedEvent) error
}

// ReportRenderer convierte el resumen en un archivo descargable (PDF, XLSX, XML).
type ReportRenderer interface {
	Format() string
	Render(ctx context.Context, report *dto.SummaryReport) (*dto.ExportFile, error)
}
