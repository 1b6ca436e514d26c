package dto

// ErrorResponse cuerpo de error HTTP.
// ProductID se informa en fallas de stock para identificar el producto.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID string `json:"product_id,omitempty"`
}
