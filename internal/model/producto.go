package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry. EAN is the business key used by scan lookups
// and CSV merge; uniqueness is a caller contract, the document itself does
// not enforce it. Precio 0 means "price not yet known" and forces a manual
// price at sale time.
type Producto struct {
	ID     uuid.UUID       `json:"id"`
	EAN    string          `json:"ean"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
}

// MismoEAN compares business codes case-insensitively, the same match rule
// the scan lookup uses.
func (p Producto) MismoEAN(ean string) bool {
	return strings.EqualFold(strings.TrimSpace(p.EAN), strings.TrimSpace(ean))
}

// SinPrecio reports whether the catalog price is still unknown.
func (p Producto) SinPrecio() bool { return p.Precio.IsZero() }
