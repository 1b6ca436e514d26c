package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending        = "pending"
	SaleStatusCompleted      = "completed"
	SaleStatusPartialRefund  = "partial_refund"
	SaleStatusCompleteRefund = "complete_refund"
	SaleStatusCancelled      = "cancelled"
)

// Medios de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentDebit    = "debit"
	PaymentCredit   = "credit"
	PaymentTransfer = "transfer"
)

// ValidPaymentMethod indica si el medio de pago es uno de los admitidos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta. Total siempre es la suma de los subtotales de sus líneas vigentes.
type Sale struct {
	ID            string
	ReceiptNumber int64 // correlativo visible (boleta), independiente del ID
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	PaidAmount    decimal.Decimal
	Change        decimal.Decimal
	Status        string
	UserID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Refundable indica si la venta admite devoluciones en su estado actual.
func (s *Sale) Refundable() bool {
	return s.Status == SaleStatusCompleted || s.Status == SaleStatusPartialRefund
}
