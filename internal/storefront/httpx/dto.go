package httpx

import "github.com/shopspring/decimal"

type VariantDTO struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type AddItemRequest struct {
	ProductID string       `json:"product_id"`
	Variants  []VariantDTO `json:"variants,omitempty"`
	Count     int          `json:"count"`
	Note      string       `json:"note,omitempty"`
}

type CartItemResponse struct {
	ID                 string       `json:"id"`
	ProductID          string       `json:"product_id"`
	Title              string       `json:"title"`
	Code               string       `json:"code"`
	Image              string       `json:"image,omitempty"`
	Variants           []VariantDTO `json:"variants,omitempty"`
	Count              int          `json:"count"`
	Note               string       `json:"note,omitempty"`
	UnitPrice          string       `json:"unit_price"`
	Price              string       `json:"price"`
	FormattedUnitPrice string       `json:"formatted_unit_price"`
	FormattedPrice     string       `json:"formatted_price"`
}

type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	Quantity       int                `json:"quantity"`
	Total          string             `json:"total"`
	FormattedTotal string             `json:"formatted_total"`
}

type FieldDTO struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type CheckoutRequest struct {
	Fields []FieldDTO `json:"fields,omitempty"`
}

type PreferenceDTO struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type CheckoutResponse struct {
	OrderID     string         `json:"order_id"`
	RedirectURL string         `json:"redirect_url"`
	Preference  *PreferenceDTO `json:"preference,omitempty"`
}

// OrderHookRequest is the tenant-scoped order bookkeeping body; it mirrors
// what the checkout order-hook client sends.
type OrderHookRequest struct {
	OrderID string          `json:"orderId"`
	Items   []OrderHookItem `json:"items"`
	Fields  []FieldDTO      `json:"fields,omitempty"`
	Phone   string          `json:"phone"`
	Message string          `json:"message"`
}

type OrderHookItem struct {
	ID       string       `json:"id"`
	Product  ProductDTO   `json:"product"`
	Variants []VariantDTO `json:"variants,omitempty"`
	Count    int          `json:"count"`
	Note     string       `json:"note,omitempty"`
}

type ProductDTO struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Code          string           `json:"code"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image,omitempty"`
	Type          string           `json:"type"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
