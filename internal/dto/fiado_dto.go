package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarPagoFiadoRequest settles (part of) a credit account. Clave is the
// shared settlement secret checked by the capability guard.
type RegistrarPagoFiadoRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
	Clave string          `json:"clave" validate:"required"`
}

type EliminarFiadorRequest struct {
	Clave string `json:"clave" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemCargoResponse struct {
	EAN            string          `json:"ean"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Congelado      bool            `json:"congelado"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CargoResponse struct {
	ID        string              `json:"id"`
	Timestamp string              `json:"timestamp"`
	Items     []ItemCargoResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
}

type PagoFiadoResponse struct {
	ID        string          `json:"id"`
	Timestamp string          `json:"timestamp"`
	Monto     decimal.Decimal `json:"monto"`
}

// FiadorResponse is one active credit account with its re-derived balance.
type FiadorResponse struct {
	ID     string              `json:"id"`
	Nombre string              `json:"nombre"`
	Saldo  decimal.Decimal     `json:"saldo"`
	Cargos []CargoResponse     `json:"cargos"`
	Pagos  []PagoFiadoResponse `json:"pagos"`
}

// ResultadoPagoFiado reports the outcome of a settlement payment. Saldada
// means the balance fell to zero and the account was removed.
type ResultadoPagoFiado struct {
	Fiador  string          `json:"fiador"`
	Saldo   decimal.Decimal `json:"saldo"`
	Saldada bool            `json:"saldada"`
}
