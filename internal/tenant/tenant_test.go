package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMercadoPagoSelected(t *testing.T) {
	t.Run("selected when any field carries the literal", func(t *testing.T) {
		fields := []Field{
			{Title: "Nombre", Value: "Ana"},
			{Title: "Método de pago", Value: "MercadoPago"},
		}
		assert.True(t, IsMercadoPagoSelected(fields))
	})

	t.Run("not selected otherwise", func(t *testing.T) {
		assert.False(t, IsMercadoPagoSelected([]Field{{Title: "Método de pago", Value: "Efectivo"}}))
		assert.False(t, IsMercadoPagoSelected(nil))
	})
}
