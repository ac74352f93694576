package cart

import (
	"github.com/shopspring/decimal"

	"github.com/gensol-dev/storefront/internal/catalog"
	"github.com/gensol-dev/storefront/internal/pkg/i18n"
)

// Labels shown in place of a price for products that cannot be bought
// directly. They bypass the locale formatter and must match verbatim.
const (
	labelHidden      = "No disponible"
	labelUnavailable = "Sin stock"
	labelAsk         = "A consultar"
)

// UnitPrice computes the price of a single unit of the line item according to
// the product's pricing mode.
func UnitPrice(item Item) decimal.Decimal {
	switch item.Product.Type {
	case catalog.TypeHidden, catalog.TypeUnavailable, catalog.TypeAsk:
		// Price must not be computed for these modes.
		return decimal.Zero

	case catalog.TypeVariant:
		// Price depends only on the selected variants.
		return catalog.VariantsPrice(item.Variants)

	default:
		// Sum product price and variant deltas.
		return item.Product.Price.Add(catalog.VariantsPrice(item.Variants))
	}
}

// Price computes the extended price of the line item: unit price times count.
func Price(item Item) decimal.Decimal {
	switch item.Product.Type {
	case catalog.TypeHidden, catalog.TypeUnavailable, catalog.TypeAsk:
		return decimal.Zero

	default:
		return UnitPrice(item).Mul(decimal.NewFromInt(int64(item.Count)))
	}
}

// FormattedUnitPrice renders the unit price for display. Non-purchasable
// modes render a fixed label instead of a number.
func FormattedUnitPrice(f *i18n.PriceFormatter, item Item) string {
	switch item.Product.Type {
	case catalog.TypeHidden:
		return labelHidden
	case catalog.TypeUnavailable:
		return labelUnavailable
	case catalog.TypeAsk:
		return labelAsk
	default:
		return f.Format(UnitPrice(item))
	}
}

// FormattedPrice renders the extended price for display.
func FormattedPrice(f *i18n.PriceFormatter, item Item) string {
	switch item.Product.Type {
	case catalog.TypeHidden:
		return labelHidden
	case catalog.TypeUnavailable:
		return labelUnavailable
	case catalog.TypeAsk:
		return labelAsk
	default:
		return f.Format(Price(item))
	}
}

// Total sums the extended prices of all items. Pure and order-independent.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(Price(item))
	}
	return total
}

// Quantity sums the unit counts of all items.
func Quantity(items []Item) int {
	count := 0
	for _, item := range items {
		count += item.Count
	}
	return count
}
