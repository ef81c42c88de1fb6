package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lecheria-api/internal/application/collection"
	"github.com/jhoicas/Lecheria-api/internal/application/dto"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

// HeaderContentDigest SHA-256 hex del contenido canónico de la exportación XML.
const HeaderContentDigest = "X-Content-Digest"

// MilkHandler entregas de leche y resumen de 10 días.
type MilkHandler struct {
	entries *collection.EntryUseCase
	summary *collection.SummaryUseCase
	export  *collection.ExportUseCase
	errorResponder
}

// NewMilkHandler construye el handler.
func NewMilkHandler(
	entries *collection.EntryUseCase,
	summary *collection.SummaryUseCase,
	export *collection.ExportUseCase,
	log *logger.Logger,
) *MilkHandler {
	return &MilkHandler{entries: entries, summary: summary, export: export, errorResponder: errorResponder{log: log}}
}

// CreateEntry godoc
// @Summary      Registrar entrega de leche
// @Tags         milk
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.MilkEntryRequest  true  "account_no, entry_date, session, quantity, fat, snf, amount"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/milk-entry [post]
func (h *MilkHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.MilkEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	e, err := h.entries.Record(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Success: true,
		Message: "Milk entry added successfully",
		ID:      e.ID,
	})
}

// Summary godoc
// @Summary      Resumen de 10 días (mañana y tarde)
// @Tags         milk
// @Produce      json
// @Security     BearerAuth
// @Param        account_no  path   string  true   "Número de cuenta"
// @Param        date        query  string  false  "Fecha de referencia YYYY-MM-DD (por defecto hoy)"
// @Success      200  {array}   dto.SummaryRowDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/milk-summary/{account_no} [get]
func (h *MilkHandler) Summary(c *fiber.Ctx) error {
	ref, err := h.summary.ParseReferenceDate(c.Query("date"))
	if err != nil {
		return h.respond(c, err)
	}
	rows, err := h.summary.GetSummary(c.UserContext(), c.Params("account_no"), ref)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(rows)
}

// Export godoc
// @Summary      Exportar el resumen (pdf, xlsx, xml)
// @Tags         milk
// @Produce      application/pdf,application/xml
// @Security     BearerAuth
// @Param        account_no  path   string  true   "Número de cuenta"
// @Param        format      query  string  false  "pdf | xlsx | xml (por defecto pdf)"
// @Param        date        query  string  false  "Fecha de referencia YYYY-MM-DD"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/milk-summary/{account_no}/export [get]
func (h *MilkHandler) Export(c *fiber.Ctx) error {
	ref, err := h.summary.ParseReferenceDate(c.Query("date"))
	if err != nil {
		return h.respond(c, err)
	}
	file, err := h.export.Export(c.UserContext(), c.Params("account_no"), ref, c.Query("format", "pdf"))
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	if file.Digest != "" {
		c.Set(HeaderContentDigest, file.Digest)
	}
	return c.Send(file.Content)
}
