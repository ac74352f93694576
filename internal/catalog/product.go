package catalog

import "github.com/shopspring/decimal"

// Type classifies how a product is priced and displayed.
// It is a closed enumeration: pricing and cart logic switch on it and a
// product carrying any other value falls through to the default policy.
type Type string

const (
	TypeAvailable   Type = "available"
	TypePromotional Type = "promotional"
	TypeUnavailable Type = "unavailable"
	TypeHidden      Type = "hidden"
	TypeAsk         Type = "ask"
	TypeVariant     Type = "variant"
)

// Variant is a selectable product option contributing a price delta.
// A cart line item holds the ordered sequence of variants the buyer picked.
type Variant struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// Product is one catalog entry. The cart stores a snapshot of it per line
// item; the snapshot's price is refreshed against the live catalog on
// hydration.
type Product struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Code          string           `json:"code"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image,omitempty"`
	Type          Type             `json:"type"`
}

// VariantsPrice returns the sum of the price deltas of the selected variants.
func VariantsPrice(variants []Variant) decimal.Decimal {
	total := decimal.Zero
	for _, v := range variants {
		total = total.Add(v.Price)
	}
	return total
}
