package dto

import (
	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/model"
)

// RegistrarMovimientoRequest records a compra or gasto. Monto must be
// non-zero; gastos must be strictly positive — a negative adjustment is
// recorded as a compra.
type RegistrarMovimientoRequest struct {
	Tipo        model.TipoMovimiento `json:"tipo"        validate:"required,oneof=compra gasto"`
	Proveedor   string               `json:"proveedor"`
	Descripcion string               `json:"descripcion" validate:"required,min=2"`
	Monto       decimal.Decimal      `json:"monto"       validate:"required"`
	Fecha       *string              `json:"fecha"`
}

type MovimientoResponse struct {
	ID          string          `json:"id"`
	Timestamp   string          `json:"timestamp"`
	Tipo        string          `json:"tipo"`
	Proveedor   string          `json:"proveedor,omitempty"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
}
