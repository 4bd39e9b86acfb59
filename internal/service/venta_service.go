package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/model"
)

// ToleranciaPagos is the maximum difference tolerated between the cart total
// and the declared payment split.
var ToleranciaPagos = decimal.NewFromFloat(0.01)

// VentaService turns a cart plus a settlement into either a committed venta
// or a store-credit charge. Ahora is injectable for tests.
type VentaService struct {
	Ahora func() time.Time
}

func NewVentaService() *VentaService {
	return &VentaService{Ahora: time.Now}
}

// itemResuelto is a cart line after catalog resolution, before commit.
type itemResuelto struct {
	ean       string
	nombre    string
	precio    decimal.Decimal
	cantidad  int
	congelado bool // catalog price was 0, precio came from the manual override
}

// Registrar commits the cart. Exactly one settlement must be present:
// a payment split (pagos) or a credit person (fiado_nombre).
func (s *VentaService) Registrar(st *estado.Store, req dto.RegistrarVentaRequest) (*dto.VentaResponse, *dto.CargoFiadoResponse, error) {
	esFiado := req.FiadoNombre != nil && strings.TrimSpace(*req.FiadoNombre) != ""
	if esFiado && len(req.Pagos) > 0 {
		return nil, nil, apierror.Validacion("una venta se liquida con pagos o como fiado, no ambos")
	}
	if !esFiado && len(req.Pagos) == 0 {
		return nil, nil, apierror.Validacion("faltan los pagos de la venta")
	}

	if esFiado {
		resp, err := s.registrarFiado(st, *req.FiadoNombre, req.Items)
		return nil, resp, err
	}
	resp, err := s.registrarContado(st, req)
	return resp, nil, err
}

func (s *VentaService) registrarContado(st *estado.Store, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	for _, p := range req.Pagos {
		if !model.MetodoValido(p.Metodo) {
			return nil, apierror.Validacion("método de pago desconocido: %s", p.Metodo)
		}
		if !p.Monto.IsPositive() {
			return nil, apierror.Validacion("cada pago debe ser mayor a cero")
		}
	}

	var venta model.Venta
	err := st.Aplicar(func(doc *model.Documento) error {
		resueltos, total, err := resolverCarrito(doc, req.Items)
		if err != nil {
			return err
		}

		totalPagos := decimal.Zero
		for _, p := range req.Pagos {
			totalPagos = totalPagos.Add(p.Monto)
		}
		if totalPagos.Sub(total).Abs().GreaterThan(ToleranciaPagos) {
			return apierror.Validacion(
				"los pagos (%s) no coinciden con el total de la venta (%s)",
				totalPagos.String(), total.String())
		}

		venta = model.Venta{
			ID:        uuid.New(),
			Timestamp: s.Ahora(),
			Total:     total,
		}
		for _, r := range resueltos {
			venta.Items = append(venta.Items, model.ItemVenta{
				EAN:            r.ean,
				Nombre:         r.nombre,
				PrecioUnitario: r.precio,
				Cantidad:       r.cantidad,
			})
		}
		for _, p := range req.Pagos {
			venta.Pagos = append(venta.Pagos, model.Pago{Metodo: p.Metodo, Monto: p.Monto})
		}
		// The venta rides the currently open register day; nil floats until
		// a close stamps it.
		if f := doc.Configuracion.FechaNegocioAbierta; f != nil {
			fecha := *f
			venta.FechaNegocio = &fecha
		}

		doc.Ventas = append(doc.Ventas, venta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ventaToResponse(venta)
	return &resp, nil
}

func (s *VentaService) registrarFiado(st *estado.Store, nombre string, items []dto.ItemCarritoRequest) (*dto.CargoFiadoResponse, error) {
	nombre = strings.TrimSpace(nombre)
	resp := &dto.CargoFiadoResponse{}
	err := st.Aplicar(func(doc *model.Documento) error {
		resueltos, total, err := resolverCarrito(doc, items)
		if err != nil {
			return err
		}

		cargo := model.Cargo{ID: uuid.New(), Timestamp: s.Ahora()}
		for _, r := range resueltos {
			item := model.ItemCargo{EAN: r.ean, Cantidad: r.cantidad}
			if r.congelado {
				precio := r.precio
				item.PrecioCongelado = &precio
			}
			cargo.Items = append(cargo.Items, item)
		}

		fiador := doc.BuscarFiador(nombre)
		if fiador == nil {
			doc.Fiadores = append(doc.Fiadores, model.Fiador{ID: uuid.New(), Nombre: nombre})
			fiador = &doc.Fiadores[len(doc.Fiadores)-1]
		}
		fiador.Cargos = append(fiador.Cargos, cargo)

		resp.Fiador = fiador.Nombre
		resp.Cargo = cargo.ID.String()
		resp.Total = total
		resp.Saldo = SaldoFiador(*fiador, doc.Productos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// resolverCarrito snapshots prices for every cart line. A product whose
// catalog price is 0 requires the line's manual override; the override is
// used for the line only and never written back to the catalog.
func resolverCarrito(doc *model.Documento, items []dto.ItemCarritoRequest) ([]itemResuelto, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, apierror.Validacion("el carrito está vacío")
	}
	resueltos := make([]itemResuelto, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.Cantidad < 1 {
			return nil, decimal.Zero, apierror.Validacion("la cantidad debe ser al menos 1")
		}
		p := doc.BuscarProductoPorEAN(item.EAN)
		if p == nil {
			return nil, decimal.Zero, apierror.NoEncontrado("no existe producto con código %s", item.EAN)
		}
		r := itemResuelto{ean: p.EAN, nombre: p.Nombre, precio: p.Precio, cantidad: item.Cantidad}
		if p.SinPrecio() {
			if item.PrecioManual == nil || !item.PrecioManual.IsPositive() {
				return nil, decimal.Zero, apierror.Validacion(
					"el producto %s no tiene precio: se requiere un precio manual", p.Nombre)
			}
			r.precio = *item.PrecioManual
			r.congelado = true
		}
		total = total.Add(r.precio.Mul(decimal.NewFromInt(int64(r.cantidad))))
		resueltos = append(resueltos, r)
	}
	return resueltos, total, nil
}

// Anular deletes a venta. Refused once the venta's day is closed.
func (s *VentaService) Anular(st *estado.Store, id uuid.UUID) error {
	return st.Aplicar(func(doc *model.Documento) error {
		for i, v := range doc.Ventas {
			if v.ID != id {
				continue
			}
			if v.FechaNegocio != nil && doc.Cierres.Cerrada(*v.FechaNegocio) {
				return apierror.CajaCerrada("la venta pertenece a una caja cerrada del %s", v.FechaNegocio)
			}
			doc.Ventas = append(doc.Ventas[:i], doc.Ventas[i+1:]...)
			return nil
		}
		return apierror.NoEncontrado("venta no encontrada")
	})
}

// CambiarMetodoPago rewrites a single-payment venta's settlement method.
// Refused for split payments and for ventas on closed days.
func (s *VentaService) CambiarMetodoPago(st *estado.Store, id uuid.UUID, metodo model.MetodoPago) error {
	if !model.MetodoValido(metodo) {
		return apierror.Validacion("método de pago desconocido: %s", metodo)
	}
	return st.Aplicar(func(doc *model.Documento) error {
		for i := range doc.Ventas {
			v := &doc.Ventas[i]
			if v.ID != id {
				continue
			}
			if v.FechaNegocio != nil && doc.Cierres.Cerrada(*v.FechaNegocio) {
				return apierror.CajaCerrada("la venta pertenece a una caja cerrada del %s", v.FechaNegocio)
			}
			if len(v.Pagos) != 1 {
				return apierror.Validacion("no se puede cambiar el método de una venta con pago dividido")
			}
			v.Pagos[0].Metodo = metodo
			return nil
		}
		return apierror.NoEncontrado("venta no encontrada")
	})
}

// ListarPorDia returns every venta attributed to the day, floating ventas
// included when the day is the currently open register day.
func (s *VentaService) ListarPorDia(st *estado.Store, fecha model.Fecha) ([]dto.VentaResponse, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	out := []dto.VentaResponse{}
	for _, v := range ventasDelDia(doc, fecha) {
		out = append(out, ventaToResponse(v))
	}
	return out, nil
}

// ventasDelDia partitions the ventas collection for one closing day.
func ventasDelDia(doc *model.Documento, fecha model.Fecha) []model.Venta {
	abierta := doc.Configuracion.FechaNegocioAbierta
	incluirFlotantes := abierta != nil && *abierta == fecha
	if abierta == nil {
		// No explicit open day tracked yet: today's register collects the
		// floating ventas.
		incluirFlotantes = fecha == model.HoyFecha()
	}
	var out []model.Venta
	for _, v := range doc.Ventas {
		if v.AtribuidaA(fecha) || (v.Flotante() && incluirFlotantes) {
			out = append(out, v)
		}
	}
	return out
}

func ventaToResponse(v model.Venta) dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			EAN:            it.EAN,
			Nombre:         it.Nombre,
			PrecioUnitario: it.PrecioUnitario,
			Cantidad:       it.Cantidad,
			Subtotal:       it.Subtotal(),
		})
	}
	pagos := make([]dto.PagoRequest, 0, len(v.Pagos))
	for _, p := range v.Pagos {
		pagos = append(pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	resp := dto.VentaResponse{
		ID:        v.ID.String(),
		Timestamp: v.Timestamp.Format(time.RFC3339),
		Items:     items,
		Pagos:     pagos,
		Total:     v.Total,
	}
	if v.FechaNegocio != nil {
		f := v.FechaNegocio.String()
		resp.FechaNegocio = &f
	}
	return resp
}
