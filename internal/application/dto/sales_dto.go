package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body para POST /api/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

// SetCartQuantityRequest body para PUT /api/cart/items/:productId.
type SetCartQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CartLineResponse línea del carro con el stock vigente al momento de responder.
type CartLineResponse struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QuantityKind string          `json:"quantity_kind"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartResponse carro de la sesión con totales (IVA incluido).
type CartResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
}

// FinalizeSaleRequest body para POST /api/sales.
// PaidAmount solo se exige y valida para pagos en efectivo.
type FinalizeSaleRequest struct {
	PaymentMethod string           `json:"payment_method"` // cash | debit | credit | transfer
	PaidAmount    *decimal.Decimal `json:"paid_amount,omitempty"`
}

// FinalizeSaleResponse resultado de cerrar la venta.
type FinalizeSaleResponse struct {
	SaleID        string          `json:"sale_id"`
	ReceiptNumber int64           `json:"receipt_number"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Change        decimal.Decimal `json:"change"`
	Status        string          `json:"status"`
}

// RefundRequest body para POST /api/sales/:id/refunds: id de línea -> cantidad a devolver.
type RefundRequest struct {
	Items map[string]decimal.Decimal `json:"items"`
}

// RefundResponse resultado de una devolución.
type RefundResponse struct {
	SaleID         string          `json:"sale_id"`
	TotalRefunded  decimal.Decimal `json:"total_refunded"`
	NewTotal       decimal.Decimal `json:"new_total"`
	Status         string          `json:"status"`
	RemainingItems int             `json:"remaining_items"`
}

// SaleItemResponse línea vigente de una venta.
type SaleItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	QuantityKind     string          `json:"quantity_kind"`
	Quantity         decimal.Decimal `json:"quantity"`
	OriginalQuantity decimal.Decimal `json:"original_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas vigentes.
type SaleResponse struct {
	ID            string             `json:"id"`
	ReceiptNumber int64              `json:"receipt_number"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	Change        decimal.Decimal    `json:"change"`
	Status        string             `json:"status"`
	CreatedAt     string             `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// StockMovementResponse movimiento de stock asociado a una venta.
type StockMovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	BundleID  string          `json:"bundle_id,omitempty"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedAt string          `json:"created_at"`
}
