package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Cart      *sales.CartUseCase
	Finalize  *sales.FinalizeSaleUseCase
	Refund    *sales.RefundSaleUseCase
	Query     *sales.SaleQueryUseCase
	Receipt   *sales.ReceiptPDFUseCase
	JWTSecret string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	cartHandler := NewCartHandler(deps.Cart, deps.Log)
	cart := api.Group("/cart")
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.Add)
	cart.Put("/items/:productId", cartHandler.SetQuantity)
	cart.Delete("/items/:productId", cartHandler.Remove)

	saleHandler := NewSaleHandler(deps.Finalize, deps.Refund, deps.Query, deps.Receipt, deps.Log)
	salesGroup := api.Group("/sales")
	salesGroup.Post("/", saleHandler.Finalize)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Get("/:id/movements", saleHandler.ListMovements)
	// Devoluciones: solo admin o supervisor
	salesGroup.Post("/:id/refunds", RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor), saleHandler.Refund)
}
