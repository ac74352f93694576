// Package tenant carries the shop-level configuration that drives checkout:
// the merchant's phone, payment setup, and webhook endpoints.
package tenant

// Field is one entry of the dynamic checkout form a tenant configures
// (e.g. "Nombre", "Dirección", "Método de pago").
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type Tenant struct {
	ID   string
	Slug string

	// Phone receives the composed order message over the messaging channel.
	Phone string

	// Locale is the BCP-47 tag driving price formatting.
	Locale string

	// Mercadopago enables online payment preference creation.
	Mercadopago bool

	// Hook, when set, receives a POST with the structured order on checkout.
	Hook string

	// OrderHook, when set, is the base URL of the tenant-scoped order
	// bookkeeping API.
	OrderHook string
}

// mercadoPagoValue is the literal the payment-method form field submits when
// the buyer picks online payment.
const mercadoPagoValue = "MercadoPago"

// IsMercadoPagoSelected reports whether the submitted checkout fields chose
// the online payment method.
func IsMercadoPagoSelected(fields []Field) bool {
	for _, f := range fields {
		if f.Value == mercadoPagoValue {
			return true
		}
	}
	return false
}
