package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ActualizarEfectivoRequest edits the open day's cash fields.
type ActualizarEfectivoRequest struct {
	EfectivoProximoDia *decimal.Decimal `json:"efectivo_proximo_dia"`
	EfectivoPedidosYa  *decimal.Decimal `json:"efectivo_pedidosya"`
}

// ArqueoRequest is a cash-counting tally: either denomination-style
// (valor × cantidad) or free-form partial amounts; both are just addends.
type ArqueoRequest struct {
	Montos []decimal.Decimal `json:"montos" validate:"required,min=1"`
}

type ArqueoResponse struct {
	Total decimal.Decimal `json:"total"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// VentasPorMetodo partitions a day's sales by settlement channel.
type VentasPorMetodo struct {
	Efectivo decimal.Decimal `json:"efectivo"`
	Debito   decimal.Decimal `json:"debito"`
	Credito  decimal.Decimal `json:"credito"`
	Total    decimal.Decimal `json:"total"`
}

// ResumenDiaResponse is the recomputed-on-demand closing view of one day.
// EfectivoDisponible = ventas en efectivo + efectivo del día anterior
// + efectivo PedidosYa − efectivo al día siguiente. That formula holding
// exactly is the reconciliation this subsystem exists for.
type ResumenDiaResponse struct {
	Fecha              string          `json:"fecha"`
	Ventas             VentasPorMetodo `json:"ventas"`
	TotalCompras       decimal.Decimal `json:"total_compras"`
	TotalGastos        decimal.Decimal `json:"total_gastos"`
	NetoDia            decimal.Decimal `json:"neto_dia"`
	EfectivoDiaAnterior decimal.Decimal `json:"efectivo_dia_anterior"`
	EfectivoPedidosYa  decimal.Decimal `json:"efectivo_pedidosya"`
	EfectivoProximoDia decimal.Decimal `json:"efectivo_proximo_dia"`
	EfectivoDisponible decimal.Decimal `json:"efectivo_disponible"`
	Cerrada            bool            `json:"cerrada"`
	CantidadVentas     int             `json:"cantidad_ventas"`
}
