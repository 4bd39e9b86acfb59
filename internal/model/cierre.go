package model

import "github.com/shopspring/decimal"

// Cierre is the per-day closing record. While the day is open the cash
// fields are editable and persist immediately; closing snapshots them and
// locks every venta attributed to the day.
type Cierre struct {
	Fecha Fecha `json:"fecha"`
	// EfectivoProximoDia is the counted cash carried into the next day
	// (the arqueo result).
	EfectivoProximoDia decimal.Decimal `json:"efectivo_proximo_dia"`
	// EfectivoPedidosYa is cash collected through the PedidosYa channel,
	// entered manually because it never passes through the register.
	EfectivoPedidosYa decimal.Decimal `json:"efectivo_pedidosya"`
	Cerrada           bool            `json:"cerrada"`
}

// Cierres is the closings ledger keyed by calendar day. Lookups happen by
// the day itself, by the previous day (carry-forward) and by a venta's
// FechaNegocio (lock checks). A day with no record is Open.
type Cierres map[Fecha]Cierre

// Obtener returns the record for f, or an open zero record keyed at f.
func (c Cierres) Obtener(f Fecha) Cierre {
	if r, ok := c[f]; ok {
		return r
	}
	return Cierre{Fecha: f, EfectivoProximoDia: decimal.Zero, EfectivoPedidosYa: decimal.Zero}
}

// Guardar upserts the record under its own date.
func (c Cierres) Guardar(r Cierre) { c[r.Fecha] = r }

// Cerrada reports whether day f has a closed record. Missing days are open.
func (c Cierres) Cerrada(f Fecha) bool { return c.Obtener(f).Cerrada }

// EfectivoDelDiaAnterior returns the cash carried forward from f's previous
// calendar day. Calendar arithmetic, not sale-derived.
func (c Cierres) EfectivoDelDiaAnterior(f Fecha) decimal.Decimal {
	return c.Obtener(f.Anterior()).EfectivoProximoDia
}
