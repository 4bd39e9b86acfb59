package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseImporte(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1.000.000,10", "1000000.1"},
		{"500", "500"},
		{"  42,5 ", "42.5"},
		{"", "0"},
		{"abc", "0"},
		{"12,34,56", "0"},
	}
	for _, c := range cases {
		got := ParseImporte(c.raw)
		assert.Equal(t, c.want, got.String(), "ParseImporte(%q)", c.raw)
	}
}

func TestFormatImporte(t *testing.T) {
	s := FormatImporte(decimal.NewFromFloat(1234.5))
	assert.Contains(t, s, "1.234,50")

	assert.NotEmpty(t, FormatImporte(decimal.Zero))
}

func TestPrecioReventa_RedondeaSiempreHaciaArriba(t *testing.T) {
	// 1000 / (1 - 0.20) = 1250 exactly — no rounding needed.
	assert.Equal(t, "1250",
		PrecioReventa(decimal.NewFromInt(1000), CanalRappi).String())

	// 1001 / 0.8 = 1251.25 — must round UP, never to nearest.
	assert.Equal(t, "1252",
		PrecioReventa(decimal.NewFromInt(1001), CanalRappi).String())

	// 705 / (1 - 0.295) = 1000 exactly.
	assert.Equal(t, "1000",
		PrecioReventa(decimal.NewFromInt(705), CanalPedidosYa).String())

	// 1000 / 0.705 = 1418.43... → 1419.
	assert.Equal(t, "1419",
		PrecioReventa(decimal.NewFromInt(1000), CanalPedidosYa).String())
}

func TestPrecioReventa_BaseCero(t *testing.T) {
	assert.True(t, PrecioReventa(decimal.Zero, CanalPedidosYa).IsZero())
	assert.True(t, PrecioReventa(decimal.NewFromInt(-10), CanalRappi).IsZero())
}
