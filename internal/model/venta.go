package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoPago is the settlement channel of a payment.
// Fiado never appears here: a credit sale is recorded in the credit ledger,
// not in the ventas collection.
type MetodoPago string

const (
	MetodoEfectivo MetodoPago = "efectivo"
	MetodoDebito   MetodoPago = "debito"
	MetodoCredito  MetodoPago = "credito"
)

// MetodosPago lists the valid settlement channels in display order.
var MetodosPago = []MetodoPago{MetodoEfectivo, MetodoDebito, MetodoCredito}

// MetodoValido reports whether m is a known settlement channel.
func MetodoValido(m MetodoPago) bool {
	for _, v := range MetodosPago {
		if v == m {
			return true
		}
	}
	return false
}

// Pago is one leg of a sale's settlement. A single-payment sale carries
// exactly one Pago whose Monto equals the sale total.
type Pago struct {
	Metodo MetodoPago      `json:"metodo"`
	Monto  decimal.Decimal `json:"monto"`
}

// ItemVenta is a line of a sale. Nombre and PrecioUnitario are snapshots
// taken at add-to-cart time; later catalog edits never touch a recorded sale.
type ItemVenta struct {
	EAN            string          `json:"ean"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
}

// Subtotal returns PrecioUnitario × Cantidad.
func (i ItemVenta) Subtotal() decimal.Decimal {
	return i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}

// Venta is an immutable committed sale. FechaNegocio is the calendar day the
// sale is attributed to for closing purposes; nil means the sale still rides
// the currently open register and will be stamped when that day is closed.
// Once the day a venta belongs to is closed, the venta can no longer be
// deleted and its payment method can no longer change.
type Venta struct {
	ID           uuid.UUID       `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Items        []ItemVenta     `json:"items"`
	Pagos        []Pago          `json:"pagos"`
	Total        decimal.Decimal `json:"total"`
	FechaNegocio *Fecha          `json:"fecha_negocio,omitempty"`
}

// TotalItems recomputes the line-item total. For every accepted venta this
// equals Total and the sum of Pagos within the acceptance tolerance.
func (v Venta) TotalItems() decimal.Decimal {
	total := decimal.Zero
	for _, it := range v.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalPagos sums the settlement legs.
func (v Venta) TotalPagos() decimal.Decimal {
	total := decimal.Zero
	for _, p := range v.Pagos {
		total = total.Add(p.Monto)
	}
	return total
}

// MontoPorMetodo returns the portion of the venta settled through the given
// method. Split-payment sales contribute each leg to its own method.
func (v Venta) MontoPorMetodo(m MetodoPago) decimal.Decimal {
	total := decimal.Zero
	for _, p := range v.Pagos {
		if p.Metodo == m {
			total = total.Add(p.Monto)
		}
	}
	return total
}

// AtribuidaA reports whether the venta belongs to day f for closing purposes.
func (v Venta) AtribuidaA(f Fecha) bool {
	return v.FechaNegocio != nil && *v.FechaNegocio == f
}

// Flotante reports whether the venta has not been attributed to a closed day
// yet and still rides the open register.
func (v Venta) Flotante() bool { return v.FechaNegocio == nil }
