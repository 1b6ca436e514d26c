package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// El orden importa: StockError envuelve ErrProductNotFound además de los errores de stock.
var errorMappings = []errorMapping{
	{domain.ErrOutOfStock, fiber.StatusConflict, "OUT_OF_STOCK", "producto sin stock disponible"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrInsufficientPayment, fiber.StatusUnprocessableEntity, "INSUFFICIENT_PAYMENT", "el monto pagado es menor al total"},
	{domain.ErrSaleNotFound, fiber.StatusNotFound, "SALE_NOT_FOUND", "venta no encontrada"},
	{domain.ErrSaleItemNotFound, fiber.StatusNotFound, "SALE_ITEM_NOT_FOUND", "la línea no pertenece a la venta"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado"},
	{domain.ErrNoItemsSelected, fiber.StatusBadRequest, "NO_ITEMS_SELECTED", "no se indicó ninguna cantidad a devolver"},
	{domain.ErrEmptyCart, fiber.StatusBadRequest, "EMPTY_CART", "el carro está vacío"},
	{domain.ErrSaleNotRefundable, fiber.StatusConflict, "SALE_NOT_REFUNDABLE", "la venta no admite devoluciones"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrStorage, fiber.StatusServiceUnavailable, "STORAGE_FAILURE", "no se pudo completar la operación, intente nuevamente"},
}

// writeError traduce un error de dominio a la respuesta HTTP. Lo no mapeado es 500 y se registra.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		resp := dto.ErrorResponse{Code: m.code, Message: m.message}
		var se *domain.StockError
		if errors.As(err, &se) {
			resp.ProductID = se.ProductID
		}
		if m.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("falla de almacenamiento")
		}
		return c.Status(m.status).JSON(resp)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
