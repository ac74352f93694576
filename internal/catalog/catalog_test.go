package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	raw := `[
		{"id": "p1", "title": "Widget", "code": "A1", "price": 100, "image": "https://cdn.test/w.jpg", "type": "available"},
		{"id": "p2", "title": "Gadget", "code": "B2", "price": 50, "type": "promotional"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	products := cat.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Title)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, TypePromotional, products[1].Type)

	p, ok := cat.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "A1", p.Code)

	_, ok = cat.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "https://cdn.test/w.jpg", cat.Image("p1"))
	assert.Equal(t, "", cat.Image("missing"))
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestVariantsPrice(t *testing.T) {
	variants := []Variant{
		{Title: "Large", Price: decimal.NewFromInt(10)},
		{Title: "Extra", Price: decimal.NewFromFloat(2.5)},
	}
	assert.True(t, VariantsPrice(variants).Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, VariantsPrice(nil).IsZero())
}
