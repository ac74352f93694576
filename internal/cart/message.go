package cart

import (
	"fmt"
	"strings"

	"github.com/gensol-dev/storefront/internal/pkg/i18n"
	"github.com/gensol-dev/storefront/internal/pkg/shortid"
	"github.com/gensol-dev/storefront/internal/tenant"
)

// separator is the fixed-width rule between receipt sections.
const separator = "-----------------------------"

// orderIDAlphabet is the extended alphanumeric alphabet order ids are drawn
// from. Collisions are accepted as negligible at this scale; ids are not
// checked against prior orders.
const orderIDAlphabet = "0123456789abcdefghijklmnñopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZÑ"

// NewOrderID returns a 4-character uppercase order identifier.
func NewOrderID() string {
	return strings.ToUpper(shortid.Generate(orderIDAlphabet, 4))
}

// ComposeMessage renders the monospace-friendly order receipt handed to the
// messaging channel at checkout.
func ComposeMessage(f *i18n.PriceFormatter, items []Item, orderID string, fields []tenant.Field) string {
	var b strings.Builder

	b.WriteString("```\n")
	b.WriteString("Order# " + orderID + "\n")
	if fields != nil {
		b.WriteString(fieldLines(fields) + "\n")
	}
	b.WriteString(separator + "\n")
	b.WriteString(itemLines(f, items) + "\n")
	b.WriteString(separator + "\n")
	b.WriteString(" Subtotal\n")
	b.WriteString(truncate(fmt.Sprintf(" %d Item(s) -> %s", Quantity(items), f.Format(Total(items))), 28) + "\n")
	b.WriteString(separator + "```")
	b.WriteString("\n\n")
	b.WriteString("*Total amount to pay*\n")
	b.WriteString("*= " + f.Format(Total(items)) + "*")
	b.WriteString("\n.")

	return b.String()
}

// fieldLines renders the dynamic form answers, one "Title: *value*" line per
// field with both a title and a value.
func fieldLines(fields []tenant.Field) string {
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Title == "" || field.Value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: *%s*", field.Title, field.Value))
	}
	return strings.Join(lines, "\n")
}

// itemLines renders one three-line block per item, blocks separated by a
// blank line.
func itemLines(f *i18n.PriceFormatter, items []Item) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		lines := []string{
			fmt.Sprintf("[x%d] ~Cod.%s", item.Count, item.Product.Code),
			" " + ellipsize(item.Product.Title, 27),
			truncate(fmt.Sprintf(" %s (P.U. %s)", FormattedPrice(f, item), FormattedUnitPrice(f, item)), 28),
		}
		blocks = append(blocks, "·"+strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// truncate clamps s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ellipsize clamps s to n runes, appending an ellipsis when it was longer.
func ellipsize(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
