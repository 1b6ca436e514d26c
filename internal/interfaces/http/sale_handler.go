package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
)

// SaleHandler maneja cierre de ventas, devoluciones y consultas (protegido).
type SaleHandler struct {
	finalize *sales.FinalizeSaleUseCase
	refund   *sales.RefundSaleUseCase
	query    *sales.SaleQueryUseCase
	receipt  *sales.ReceiptPDFUseCase
	log      zerolog.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(finalize *sales.FinalizeSaleUseCase, refund *sales.RefundSaleUseCase, query *sales.SaleQueryUseCase, receipt *sales.ReceiptPDFUseCase, log zerolog.Logger) *SaleHandler {
	return &SaleHandler{finalize: finalize, refund: refund, query: query, receipt: receipt, log: log}
}

// Finalize godoc
// @Summary      Finalizar venta
// @Description  Convierte el carro de la sesión en una venta. paid_amount solo se exige para efectivo.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinalizeSaleRequest  true  "payment_method (cash|debit|credit|transfer), paid_amount"
// @Success      201  {object}  dto.FinalizeSaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Finalize(c *fiber.Ctx) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.finalize.Execute(c.Context(), sessionID, GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Refund godoc
// @Summary      Devolución total o parcial
// @Description  items: id de línea -> cantidad a devolver. Cantidades mayores a la vigente se acotan.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la venta"
// @Param        body  body  dto.RefundRequest  true  "items"
// @Success      200  {object}  dto.RefundResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/refunds [post]
func (h *SaleHandler) Refund(c *fiber.Ctx) error {
	var in dto.RefundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.refund.Execute(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos de stock de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/movements [get]
func (h *SaleHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.query.ListMovements(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Ticket PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.receipt.Generate(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=\"boleta-%s.pdf\"", id))
	return c.Send(pdf)
}
