package dto

import (
	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemCarritoRequest is one scanned line. PrecioManual is required when the
// catalog price of the product is 0 (price-not-yet-known), and is used for
// this line only — it is never written back to the catalog.
type ItemCarritoRequest struct {
	EAN          string           `json:"ean"            validate:"required"`
	Cantidad     int              `json:"cantidad"       validate:"required,min=1"`
	PrecioManual *decimal.Decimal `json:"precio_manual"`
}

type PagoRequest struct {
	Metodo model.MetodoPago `json:"metodo" validate:"required,oneof=efectivo debito credito"`
	Monto  decimal.Decimal  `json:"monto"  validate:"required"`
}

// RegistrarVentaRequest carries the cart plus exactly one settlement:
// a payment split (contado) or a person name (fiado).
type RegistrarVentaRequest struct {
	Items       []ItemCarritoRequest `json:"items"        validate:"required,min=1,dive"`
	Pagos       []PagoRequest        `json:"pagos"        validate:"omitempty,dive"`
	FiadoNombre *string              `json:"fiado_nombre"`
}

type CambiarMetodoPagoRequest struct {
	Metodo model.MetodoPago `json:"metodo" validate:"required,oneof=efectivo debito credito"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	EAN            string          `json:"ean"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID           string              `json:"id"`
	Timestamp    string              `json:"timestamp"`
	Items        []ItemVentaResponse `json:"items"`
	Pagos        []PagoRequest       `json:"pagos"`
	Total        decimal.Decimal     `json:"total"`
	FechaNegocio *string             `json:"fecha_negocio,omitempty"`
}

// CargoFiadoResponse confirms a credit-settled cart.
type CargoFiadoResponse struct {
	Fiador string          `json:"fiador"`
	Cargo  string          `json:"cargo_id"`
	Total  decimal.Decimal `json:"total"`
	Saldo  decimal.Decimal `json:"saldo"`
}
