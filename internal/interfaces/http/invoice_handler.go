package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	"github.com/jhoicas/energy-invoices-api/internal/domain"
	"github.com/jhoicas/energy-invoices-api/internal/observability/metrics"
)

// InvoiceHandler maneja las peticiones HTTP de facturas de energía.
type InvoiceHandler struct {
	uc     *usecase.InvoiceUseCase
	export *usecase.ExportUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase, export *usecase.ExportUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, export: export}
}

// ListAll devuelve todas las facturas.
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.InvoiceResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListAll(c *fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context())
	if err != nil {
		return err
	}
	metrics.ObserveInvoicesReturned("list", len(items))
	return c.Status(fiber.StatusOK).JSON(dto.NewSuccess("Invoices fetched successfully", items))
}

// FindByFilter filtra por customerNumber y/o referenceMonth (YYYY-MM).
// @Summary      Filtrar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        customerNumber  query  string  false  "Número de cliente"
// @Param        referenceMonth  query  string  false  "Mes de referencia YYYY-MM"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.InvoiceResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/filter [get]
func (h *InvoiceHandler) FindByFilter(c *fiber.Ctx) error {
	in := filterFromQuery(c)
	if errs := in.Validate(); len(errs) > 0 {
		return domain.NewUnprocessableEntity(dto.JoinFieldErrors(errs))
	}
	items, err := h.uc.FindByFilter(c.Context(), in)
	if err != nil {
		return err
	}
	metrics.ObserveInvoicesReturned("filter", len(items))
	return c.Status(fiber.StatusOK).JSON(dto.NewSuccess("Invoices fetched filtered successfully", items))
}

// Export descarga el listado filtrado como xlsx (por defecto) o pdf.
// @Summary      Exportar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        customerNumber  query  string  false  "Número de cliente"
// @Param        referenceMonth  query  string  false  "Mes de referencia YYYY-MM"
// @Param        format          query  string  false  "xlsx (por defecto) o pdf"  Enums(xlsx, pdf)
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/export [get]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	in := dto.ExportInvoicesRequest{
		Filter: filterFromQuery(c),
		Format: c.Query("format", dto.ExportFormatXLSX),
	}
	if errs := in.Validate(); len(errs) > 0 {
		return domain.NewUnprocessableEntity(dto.JoinFieldErrors(errs))
	}

	start := time.Now()
	file, err := h.export.Export(c.Context(), in)
	if err != nil {
		metrics.ObserveExport(in.Format, metrics.ResultError, time.Since(start))
		return err
	}
	metrics.ObserveExport(in.Format, metrics.ResultSuccess, time.Since(start))

	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Status(fiber.StatusOK).Send(file.Content)
}

// filterFromQuery distingue parámetro ausente (nil) de presente pero vacío.
func filterFromQuery(c *fiber.Ctx) dto.FilterInvoicesRequest {
	args := c.Context().QueryArgs()
	var in dto.FilterInvoicesRequest
	if args.Has("customerNumber") {
		v := string(args.Peek("customerNumber"))
		in.CustomerNumber = &v
	}
	if args.Has("referenceMonth") {
		v := string(args.Peek("referenceMonth"))
		in.ReferenceMonth = &v
	}
	return in
}
