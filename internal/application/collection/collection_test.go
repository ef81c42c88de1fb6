package collection_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lecheria-api/internal/application/collection"
	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/internal/domain"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testAccount = "ACC-1001"

var testNow = time.Date(2026, 10, 19, 7, 45, 0, 0, time.UTC)

type fakePublisher struct {
	mu     sync.Mutex
	events []collection.EntryRecordedEvent
	err    error
}

func (p *fakePublisher) PublishEntryRecorded(_ context.Context, evt collection.EntryRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type fixture struct {
	store     *memory.Store
	publisher *fakePublisher
	entries   *collection.EntryUseCase
	summary   *collection.SummaryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Members().Create(context.Background(), &entity.Member{
		ID: "user-1", Name: "Ramesh", AccountNo: testAccount, Role: entity.RoleMember,
	}))
	pub := &fakePublisher{}
	return &fixture{
		store:     store,
		publisher: pub,
		entries:   collection.NewEntryUseCase(store.Members(), store.MilkEntries(), store, pub, logger.Nop()),
		summary: collection.NewSummaryUseCase(store.Members(), store.MilkEntries(), time.UTC).
			WithClock(func() time.Time { return testNow }),
	}
}

func entryReq(date, session, qty, fat, snf, amount string) dto.MilkEntryRequest {
	return dto.MilkEntryRequest{
		AccountNo: testAccount,
		EntryDate: date,
		Session:   session,
		Quantity:  decimal.RequireFromString(qty),
		Fat:       decimal.RequireFromString(fat),
		SNF:       decimal.RequireFromString(snf),
		Amount:    decimal.RequireFromString(amount),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_CuentaSinEntregas(t *testing.T) {
	f := newFixture(t)
	rows, err := f.summary.GetSummary(context.Background(), testAccount, nil)
	require.NoError(t, err)
	require.Len(t, rows, 20)

	assert.Equal(t, "2026-10-10", rows[0].Date)
	assert.Equal(t, "morning", rows[0].Session)
	assert.Equal(t, "2026-10-19", rows[19].Date)
	assert.Equal(t, "evening", rows[19].Session)
	for _, r := range rows {
		assert.Zero(t, r.TotalQuantity)
		assert.Zero(t, r.AvgFat)
		assert.Zero(t, r.AvgSNF)
		assert.Zero(t, r.TotalAmount)
	}
}

func TestGetSummary_CuentaInexistente(t *testing.T) {
	f := newFixture(t)
	rows, err := f.summary.GetSummary(context.Background(), "NOPE", nil)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	assert.Nil(t, rows)
}

func TestGetSummary_CuentaVacia(t *testing.T) {
	f := newFixture(t)
	_, err := f.summary.GetSummary(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSummary_FalloDelAlmacen(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("too many connections")
	f.store.FailWith(boom)

	_, err := f.summary.GetSummary(context.Background(), testAccount, nil)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestGetSummary_EscrituraYLecturaSinDistinguirMayusculas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.entries.Record(ctx, entryReq("2026-10-19", "Morning", "10", "4.0", "5.5", "350"))
	require.NoError(t, err)
	_, err = f.entries.Record(ctx, entryReq("2026-10-19", "MORNING", "20", "5.0", "8.5", "650"))
	require.NoError(t, err)

	rows, err := f.summary.GetSummary(ctx, testAccount, nil)
	require.NoError(t, err)

	morning := rows[18]
	assert.Equal(t, "2026-10-19", morning.Date)
	assert.Equal(t, "morning", morning.Session)
	assert.Equal(t, 30.0, morning.TotalQuantity)
	assert.Equal(t, 4.67, morning.AvgFat)
	assert.Equal(t, 7.5, morning.AvgSNF)
	assert.Equal(t, 1000.0, morning.TotalAmount)
	assert.Zero(t, rows[19].TotalQuantity)
}

func TestGetSummary_FechaDeReferenciaExplicita(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.entries.Record(ctx, entryReq("2026-09-01", "evening", "10", "4.0", "8.5", "350"))
	require.NoError(t, err)

	ref, err := f.summary.ParseReferenceDate("2026-09-05")
	require.NoError(t, err)
	rows, err := f.summary.GetSummary(ctx, testAccount, ref)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-27", rows[0].Date)
	assert.Equal(t, "2026-09-01", rows[11].Date)
	assert.Equal(t, "evening", rows[11].Session)
	assert.Equal(t, 10.0, rows[11].TotalQuantity)
	assert.Equal(t, 8.5, rows[11].AvgSNF)

	_, err = f.summary.ParseReferenceDate("05/09/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSummary_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.entries.Record(ctx, entryReq("2026-10-15", "evening", "12.345", "4.1", "8.4", "410.5"))
	require.NoError(t, err)

	first, err := f.summary.GetSummary(ctx, testAccount, nil)
	require.NoError(t, err)
	second, err := f.summary.GetSummary(ctx, testAccount, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 12.35, first[11].TotalQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de entregas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_NormalizaSesionYPublica(t *testing.T) {
	f := newFixture(t)
	e, err := f.entries.Record(context.Background(), entryReq("2026-10-18T06:30:00+05:30", "Evening", "8", "4", "8", "240"))
	require.NoError(t, err)

	assert.Equal(t, entity.SessionEvening, e.Session)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, "2026-10-18", e.EntryDate.Format("2006-01-02"))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, testAccount, f.publisher.events[0].AccountNo)
	assert.Equal(t, "evening", f.publisher.events[0].Session)
}

func TestRecord_SesionInvalidaNoModificaElAlmacen(t *testing.T) {
	f := newFixture(t)
	_, err := f.entries.Record(context.Background(), entryReq("2026-10-18", "noon", "8", "4", "8", "240"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.store.AllEntries())
	assert.Empty(t, f.publisher.events)
}

func TestRecord_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]dto.MilkEntryRequest{
		"sin cuenta":        {EntryDate: "2026-10-18", Session: "morning", Quantity: decimal.NewFromInt(1)},
		"sin fecha":         {AccountNo: testAccount, Session: "morning", Quantity: decimal.NewFromInt(1)},
		"fecha inválida":    entryReq("18/10/2026", "morning", "1", "4", "8", "10"),
		"cantidad cero":     entryReq("2026-10-18", "morning", "0", "4", "8", "10"),
		"grasa negativa":    entryReq("2026-10-18", "morning", "1", "-4", "8", "10"),
		"sin sesión":        {AccountNo: testAccount, EntryDate: "2026-10-18", Quantity: decimal.NewFromInt(1)},
	}
	for name, in := range cases {
		_, err := f.entries.Record(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Empty(t, f.store.AllEntries())
}

func TestRecord_PrecisionMaxima(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.entries.Record(ctx, entryReq("2026-10-18", "morning", "10.1234", "4.0500", "8.1", "300.4567"))
	require.NoError(t, err)
	assert.Equal(t, "10.1234", e.Quantity.String())
	assert.Equal(t, "300.4567", e.Amount.String())

	for _, in := range []dto.MilkEntryRequest{
		entryReq("2026-10-18", "morning", "10.12345", "4", "8", "300"),
		entryReq("2026-10-18", "morning", "10", "4.00001", "8", "300"),
		entryReq("2026-10-18", "morning", "10", "4", "8", "300.45678"),
	} {
		_, err := f.entries.Record(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Len(t, f.store.AllEntries(), 1)
}

func TestRecord_CuentaInexistente(t *testing.T) {
	f := newFixture(t)
	in := entryReq("2026-10-18", "morning", "1", "4", "8", "10")
	in.AccountNo = "NOPE"
	_, err := f.entries.Record(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestRecord_FalloDePublicacionNoFallaElRegistro(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker caído")
	_, err := f.entries.Record(context.Background(), entryReq("2026-10-18", "morning", "1", "4", "8", "10"))
	require.NoError(t, err)
	assert.Len(t, f.store.AllEntries(), 1)
}

func TestImport_TodoONada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.entries.Import(ctx, []dto.MilkEntryRequest{
		entryReq("2026-10-18", "morning", "1", "4", "8", "10"),
		entryReq("2026-10-18", "night", "1", "4", "8", "10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fila 2")
	assert.Empty(t, f.store.AllEntries())

	n, err := f.entries.Import(ctx, []dto.MilkEntryRequest{
		entryReq("2026-10-18", "morning", "1", "4", "8", "10"),
		entryReq("2026-10-18", "evening", "2", "4", "8", "20"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, f.store.AllEntries(), 2)
	assert.Len(t, f.publisher.events, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

type stubRenderer struct{ got *dto.SummaryReport }

func (r *stubRenderer) Format() string { return "csv" }

func (r *stubRenderer) Render(_ context.Context, report *dto.SummaryReport) (*dto.ExportFile, error) {
	r.got = report
	return &dto.ExportFile{Filename: "r.csv", ContentType: "text/csv", Content: []byte("ok")}, nil
}

func TestExport_UsaRenderizadorDelFormato(t *testing.T) {
	f := newFixture(t)
	r := &stubRenderer{}
	uc := collection.NewExportUseCase(f.summary, r)

	file, err := uc.Export(context.Background(), testAccount, nil, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "r.csv", file.Filename)
	require.NotNil(t, r.got)
	assert.Equal(t, "Ramesh", r.got.MemberName)
	assert.Equal(t, "2026-10-10", r.got.From)
	assert.Equal(t, "2026-10-19", r.got.To)
	assert.Len(t, r.got.Rows, 20)

	_, err = uc.Export(context.Background(), testAccount, nil, "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(context.Background(), "NOPE", nil, "csv")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}
