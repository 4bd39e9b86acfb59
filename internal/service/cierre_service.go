package service

import (
	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/model"
)

// CierreService drives the daily cash reconciliation: the per-day summary is
// always recomputed from ventas and movimientos, never stored, so edits to
// an open day are reflected immediately.
type CierreService struct{}

func NewCierreService() *CierreService { return &CierreService{} }

// ResumenDia computes the closing view for one day.
func (s *CierreService) ResumenDia(st *estado.Store, fecha model.Fecha) (*dto.ResumenDiaResponse, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	resumen := resumenDia(doc, fecha)
	return &resumen, nil
}

func resumenDia(doc *model.Documento, fecha model.Fecha) dto.ResumenDiaResponse {
	ventas := ventasDelDia(doc, fecha)

	var porMetodo dto.VentasPorMetodo
	for _, v := range ventas {
		porMetodo.Efectivo = porMetodo.Efectivo.Add(v.MontoPorMetodo(model.MetodoEfectivo))
		porMetodo.Debito = porMetodo.Debito.Add(v.MontoPorMetodo(model.MetodoDebito))
		porMetodo.Credito = porMetodo.Credito.Add(v.MontoPorMetodo(model.MetodoCredito))
		porMetodo.Total = porMetodo.Total.Add(v.Total)
	}

	compras, gastos := decimal.Zero, decimal.Zero
	for _, m := range doc.Movimientos {
		if m.FechaNegocio != fecha {
			continue
		}
		switch m.Tipo {
		case model.MovimientoCompra:
			compras = compras.Add(m.Monto)
		case model.MovimientoGasto:
			gastos = gastos.Add(m.Monto)
		}
	}

	cierre := doc.Cierres.Obtener(fecha)
	anterior := doc.Cierres.EfectivoDelDiaAnterior(fecha)
	disponible := porMetodo.Efectivo.
		Add(anterior).
		Add(cierre.EfectivoPedidosYa).
		Sub(cierre.EfectivoProximoDia)

	return dto.ResumenDiaResponse{
		Fecha:               fecha.String(),
		Ventas:              porMetodo,
		TotalCompras:        compras,
		TotalGastos:         gastos,
		NetoDia:             porMetodo.Total.Sub(compras).Sub(gastos),
		EfectivoDiaAnterior: anterior,
		EfectivoPedidosYa:   cierre.EfectivoPedidosYa,
		EfectivoProximoDia:  cierre.EfectivoProximoDia,
		EfectivoDisponible:  disponible,
		Cerrada:             cierre.Cerrada,
		CantidadVentas:      len(ventas),
	}
}

// ActualizarEfectivo edits the cash fields of an open day. The edit persists
// immediately so a half-finished count survives a page away.
func (s *CierreService) ActualizarEfectivo(st *estado.Store, fecha model.Fecha, req dto.ActualizarEfectivoRequest) (*dto.ResumenDiaResponse, error) {
	if req.EfectivoProximoDia != nil && req.EfectivoProximoDia.IsNegative() {
		return nil, apierror.Validacion("el efectivo para el próximo día no puede ser negativo")
	}
	if req.EfectivoPedidosYa != nil && req.EfectivoPedidosYa.IsNegative() {
		return nil, apierror.Validacion("el efectivo de PedidosYa no puede ser negativo")
	}

	var resumen dto.ResumenDiaResponse
	err := st.Aplicar(func(doc *model.Documento) error {
		cierre := doc.Cierres.Obtener(fecha)
		if cierre.Cerrada {
			return apierror.CajaCerrada("la caja del %s está cerrada", fecha)
		}
		if req.EfectivoProximoDia != nil {
			cierre.EfectivoProximoDia = *req.EfectivoProximoDia
		}
		if req.EfectivoPedidosYa != nil {
			cierre.EfectivoPedidosYa = *req.EfectivoPedidosYa
		}
		doc.Cierres.Guardar(cierre)
		resumen = resumenDia(doc, fecha)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resumen, nil
}

// Cerrar closes the day: floating ventas attributed to it get stamped, the
// record locks, and the open register advances — to today when closing a
// stale past day, otherwise to the day after the one just closed.
func (s *CierreService) Cerrar(st *estado.Store, fecha model.Fecha) (*dto.ResumenDiaResponse, error) {
	var resumen dto.ResumenDiaResponse
	err := st.Aplicar(func(doc *model.Documento) error {
		cierre := doc.Cierres.Obtener(fecha)
		if cierre.Cerrada {
			return apierror.CajaCerrada("la caja del %s ya está cerrada", fecha)
		}
		for _, v := range ventasDelDia(doc, fecha) {
			if !v.Flotante() {
				continue
			}
			for i := range doc.Ventas {
				if doc.Ventas[i].ID == v.ID {
					f := fecha
					doc.Ventas[i].FechaNegocio = &f
				}
			}
		}
		cierre.Cerrada = true
		doc.Cierres.Guardar(cierre)

		siguiente := fecha.Siguiente()
		if hoy := model.HoyFecha(); fecha.Antes(hoy) {
			siguiente = hoy
		}
		doc.Configuracion.FechaNegocioAbierta = &siguiente

		resumen = resumenDia(doc, fecha)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resumen, nil
}

// Reabrir unlocks a closed day: its ventas go back to floating and it becomes
// the open register day again, fully editable.
func (s *CierreService) Reabrir(st *estado.Store, fecha model.Fecha) (*dto.ResumenDiaResponse, error) {
	var resumen dto.ResumenDiaResponse
	err := st.Aplicar(func(doc *model.Documento) error {
		cierre := doc.Cierres.Obtener(fecha)
		if !cierre.Cerrada {
			return apierror.Validacion("la caja del %s no está cerrada", fecha)
		}
		for i := range doc.Ventas {
			if doc.Ventas[i].AtribuidaA(fecha) {
				doc.Ventas[i].FechaNegocio = nil
			}
		}
		cierre.Cerrada = false
		doc.Cierres.Guardar(cierre)
		f := fecha
		doc.Configuracion.FechaNegocioAbierta = &f

		resumen = resumenDia(doc, fecha)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resumen, nil
}

// Arqueo sums a cash-counting tally. Pure arithmetic, nothing is stored:
// the caller copies the result into EfectivoProximoDia when satisfied.
func (s *CierreService) Arqueo(req dto.ArqueoRequest) dto.ArqueoResponse {
	total := decimal.Zero
	for _, m := range req.Montos {
		total = total.Add(m)
	}
	return dto.ArqueoResponse{Total: total}
}
