package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	EAN    string          `json:"ean"    validate:"required"`
	Nombre string          `json:"nombre" validate:"required"`
	Precio decimal.Decimal `json:"precio" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre string          `json:"nombre" validate:"required"`
	Precio decimal.Decimal `json:"precio" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID     string          `json:"id"`
	EAN    string          `json:"ean"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
}

// PrecioReventaResponse lists the derived listing price per resale channel.
type PrecioReventaResponse struct {
	Canal  string          `json:"canal"`
	Margen decimal.Decimal `json:"margen"`
	Precio decimal.Decimal `json:"precio"`
}

// ImportarCSVResponse summarizes a merge-by-ean import.
type ImportarCSVResponse struct {
	Actualizados int `json:"actualizados"`
	Agregados    int `json:"agregados"`
}
