package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/autorizacion"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/model"
)

// FiadoService manages the store-credit ledger: balances are never stored,
// they are re-derived from cargos and pagos on every read.
type FiadoService struct {
	guard *autorizacion.Guard
	Ahora func() time.Time
}

func NewFiadoService(guard *autorizacion.Guard) *FiadoService {
	return &FiadoService{guard: guard, Ahora: time.Now}
}

// SaldoFiador derives the outstanding balance: frozen lines keep the price
// captured at charge time, unfrozen lines follow the current catalog price.
// A line whose product left the catalog counts as zero.
func SaldoFiador(f model.Fiador, productos []model.Producto) decimal.Decimal {
	saldo := decimal.Zero
	for _, c := range f.Cargos {
		for _, item := range c.Items {
			saldo = saldo.Add(precioItemCargo(item, productos).Mul(decimal.NewFromInt(int64(item.Cantidad))))
		}
	}
	for _, p := range f.Pagos {
		saldo = saldo.Sub(p.Monto)
	}
	return saldo
}

func precioItemCargo(item model.ItemCargo, productos []model.Producto) decimal.Decimal {
	if item.Congelado() {
		return *item.PrecioCongelado
	}
	for i := range productos {
		if productos[i].MismoEAN(item.EAN) {
			return productos[i].Precio
		}
	}
	return decimal.Zero
}

// ListarActivos returns accounts whose balance exceeds the epsilon, ordered
// as stored.
func (s *FiadoService) ListarActivos(st *estado.Store) ([]dto.FiadorResponse, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	out := []dto.FiadorResponse{}
	for _, f := range doc.Fiadores {
		saldo := SaldoFiador(f, doc.Productos)
		if saldo.LessThanOrEqual(model.SaldoEpsilon) {
			continue
		}
		out = append(out, fiadorToResponse(f, saldo, doc.Productos))
	}
	return out, nil
}

// RegistrarPago applies a settlement payment. Gated by the settlement
// secret; when the balance falls to (near) zero the account is removed.
func (s *FiadoService) RegistrarPago(st *estado.Store, nombre string, req dto.RegistrarPagoFiadoRequest) (*dto.ResultadoPagoFiado, error) {
	if err := s.guard.Autorizar(autorizacion.CobrarFiados, req.Clave); err != nil {
		return nil, err
	}
	if !req.Monto.IsPositive() {
		return nil, apierror.Validacion("el monto a cobrar debe ser mayor a cero")
	}

	resultado := &dto.ResultadoPagoFiado{}
	err := st.Aplicar(func(doc *model.Documento) error {
		fiador := doc.BuscarFiador(nombre)
		if fiador == nil {
			return apierror.NoEncontrado("no existe la cuenta de %s", nombre)
		}
		saldo := SaldoFiador(*fiador, doc.Productos)
		if req.Monto.Sub(saldo).GreaterThan(model.SaldoEpsilon) {
			return apierror.Validacion(
				"el pago (%s) supera el saldo de la cuenta (%s)", req.Monto.String(), saldo.String())
		}

		fiador.Pagos = append(fiador.Pagos, model.PagoFiado{
			ID:        uuid.New(),
			Timestamp: s.Ahora(),
			Monto:     req.Monto,
		})

		resultado.Fiador = fiador.Nombre
		resultado.Saldo = SaldoFiador(*fiador, doc.Productos)
		if resultado.Saldo.LessThanOrEqual(model.SaldoEpsilon) {
			resultado.Saldada = true
			resultado.Saldo = decimal.Zero
			eliminarFiador(doc, fiador.Nombre)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// Eliminar drops a credit account regardless of balance. Gated by the
// deletion secret, which is distinct from the settlement secret.
func (s *FiadoService) Eliminar(st *estado.Store, nombre string, clave string) error {
	if err := s.guard.Autorizar(autorizacion.EliminarFiadores, clave); err != nil {
		return err
	}
	return st.Aplicar(func(doc *model.Documento) error {
		if doc.BuscarFiador(nombre) == nil {
			return apierror.NoEncontrado("no existe la cuenta de %s", nombre)
		}
		eliminarFiador(doc, nombre)
		return nil
	})
}

func eliminarFiador(doc *model.Documento, nombre string) {
	for i, f := range doc.Fiadores {
		if f.MismoNombre(nombre) {
			doc.Fiadores = append(doc.Fiadores[:i], doc.Fiadores[i+1:]...)
			return
		}
	}
}

func fiadorToResponse(f model.Fiador, saldo decimal.Decimal, productos []model.Producto) dto.FiadorResponse {
	resp := dto.FiadorResponse{
		ID:     f.ID.String(),
		Nombre: f.Nombre,
		Saldo:  saldo,
		Cargos: []dto.CargoResponse{},
		Pagos:  []dto.PagoFiadoResponse{},
	}
	for _, c := range f.Cargos {
		cr := dto.CargoResponse{ID: c.ID.String(), Timestamp: c.Timestamp.Format(time.RFC3339)}
		for _, item := range c.Items {
			precio := precioItemCargo(item, productos)
			nombre := item.EAN
			for i := range productos {
				if productos[i].MismoEAN(item.EAN) {
					nombre = productos[i].Nombre
					break
				}
			}
			subtotal := precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
			cr.Items = append(cr.Items, dto.ItemCargoResponse{
				EAN:            item.EAN,
				Nombre:         nombre,
				Cantidad:       item.Cantidad,
				PrecioUnitario: precio,
				Congelado:      item.Congelado(),
				Subtotal:       subtotal,
			})
			cr.Total = cr.Total.Add(subtotal)
		}
		resp.Cargos = append(resp.Cargos, cr)
	}
	for _, p := range f.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoFiadoResponse{
			ID:        p.ID.String(),
			Timestamp: p.Timestamp.Format(time.RFC3339),
			Monto:     p.Monto,
		})
	}
	return resp
}
