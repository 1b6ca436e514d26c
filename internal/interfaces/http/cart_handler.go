package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
)

// CartHandler expone el carro de la sesión de caja (protegido).
type CartHandler struct {
	uc  *sales.CartUseCase
	log zerolog.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *sales.CartUseCase, log zerolog.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

func requireSession(c *fiber.Ctx) (string, bool) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin sesión de caja"})
		return "", false
	}
	return sessionID, true
}

// Get godoc
// @Summary      Carro de la sesión
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.Context(), sessionID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar una unidad al carro
// @Description  Valida contra el stock vigente; 409 OUT_OF_STOCK si no alcanza.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product_id"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Add(c.Context(), sessionID, in.ProductID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Fijar cantidad de una línea
// @Description  La cantidad se acota a [0, stock]; 0 elimina la línea.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                      true  "ID del producto"
// @Param        body       body  dto.SetCartQuantityRequest  true  "quantity"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.SetCartQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetQuantity(c.Context(), sessionID, c.Params("productId"), in.Quantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar un producto del carro
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Remove(c.Context(), sessionID, c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar el carro
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sessionID, ok := requireSession(c)
	if !ok {
		return nil
	}
	if err := h.uc.Clear(c.Context(), sessionID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
