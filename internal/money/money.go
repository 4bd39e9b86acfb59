// Package money holds the locale-aware amount parsing/formatting helpers and
// the resale markup pricing shared by the catalog and the reporting views.
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Moneda is the display currency for every formatted amount.
const Moneda = "ARS"

// CanalReventa is a fixed resale channel configuration: listing a product on
// the channel marks its price up so the channel's commission comes out of
// the margin, rounding up to the next whole peso.
type CanalReventa struct {
	Nombre string
	Margen decimal.Decimal
}

var (
	// CanalPedidosYa takes a 29.5% commission.
	CanalPedidosYa = CanalReventa{Nombre: "PedidosYa", Margen: decimal.NewFromFloat(0.295)}
	// CanalRappi takes a 20% commission.
	CanalRappi = CanalReventa{Nombre: "Rappi", Margen: decimal.NewFromFloat(0.20)}
)

// Canales lists the configured resale channels.
var Canales = []CanalReventa{CanalPedidosYa, CanalRappi}

// ParseImporte parses an amount written the way the register's forms accept
// it: "." as thousands separator and "," as decimal separator ("1.234,56").
// Unparsable input yields zero — form fields fail soft, they never abort the
// caller.
func ParseImporte(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatImporte renders an amount as display currency ("$1.234,56" for ARS).
func FormatImporte(monto decimal.Decimal) string {
	cur := gomoney.GetCurrency(Moneda)
	cents := monto.Shift(int32(cur.Fraction)).Round(0)
	return gomoney.New(cents.IntPart(), Moneda).Display()
}

// PrecioReventa derives the channel listing price from the base price:
// ceil(base / (1 - margen)). Always rounds up; a base of 0 (unknown price)
// yields 0.
func PrecioReventa(base decimal.Decimal, canal CanalReventa) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return base.Div(decimal.NewFromInt(1).Sub(canal.Margen)).Ceil()
}
