package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoMovimiento distinguishes supplier purchases from operating expenses in
// the day's outflows. A negative adjustment must be recorded as a compra;
// gastos are strictly positive.
type TipoMovimiento string

const (
	MovimientoCompra TipoMovimiento = "compra"
	MovimientoGasto  TipoMovimiento = "gasto"
)

// Movimiento is a cash outflow (compra or gasto) attributed to a business
// day. Unlike ventas the FechaNegocio is assigned at record time and is
// never left floating.
type Movimiento struct {
	ID           uuid.UUID       `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Tipo         TipoMovimiento  `json:"tipo"`
	Proveedor    string          `json:"proveedor,omitempty"`
	Descripcion  string          `json:"descripcion"`
	Monto        decimal.Decimal `json:"monto"`
	FechaNegocio Fecha           `json:"fecha_negocio"`
}

// Proveedor is a supplier name kept for expense entry autocompletion.
type Proveedor struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
}
