package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaldoEpsilon is the residual under which a credit balance counts as
// settled. An account whose balance falls to or below it after a payment is
// removed from the ledger entirely.
var SaldoEpsilon = decimal.NewFromFloat(0.0001)

// ItemCargo is one line of a store-credit charge. PrecioCongelado is set iff
// the product's catalog price was 0 at charge time: the manually entered
// price is frozen so later catalog corrections cannot rewrite that debt.
// When nil, the balance always re-reads the current catalog price, which
// deliberately propagates price corrections to open debt.
type ItemCargo struct {
	EAN             string           `json:"ean"`
	Cantidad        int              `json:"cantidad"`
	PrecioCongelado *decimal.Decimal `json:"precio_congelado,omitempty"`
}

// Congelado reports whether the line carries a frozen unit price.
func (i ItemCargo) Congelado() bool { return i.PrecioCongelado != nil }

// Cargo is a store-credit charge: the credit-side equivalent of a venta.
type Cargo struct {
	ID        uuid.UUID   `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Items     []ItemCargo `json:"items"`
}

// PagoFiado is a payment against a credit account.
type PagoFiado struct {
	ID        uuid.UUID       `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Monto     decimal.Decimal `json:"monto"`
}

// Fiador is a per-person store-credit account. Nombre is the case-insensitive
// business key. The running balance is never stored: it is re-derived from
// (cargos, pagos, current catalog) on every read.
type Fiador struct {
	ID     uuid.UUID   `json:"id"`
	Nombre string      `json:"nombre"`
	Cargos []Cargo     `json:"cargos"`
	Pagos  []PagoFiado `json:"pagos"`
}

// MismoNombre compares person names case-insensitively.
func (f Fiador) MismoNombre(nombre string) bool {
	return strings.EqualFold(strings.TrimSpace(f.Nombre), strings.TrimSpace(nombre))
}
