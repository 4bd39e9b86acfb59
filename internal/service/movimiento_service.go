package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/model"
)

// MovimientoService records the day's cash outflows (compras and gastos)
// and maintains the supplier list used for entry autocompletion.
type MovimientoService struct {
	Ahora func() time.Time
}

func NewMovimientoService() *MovimientoService {
	return &MovimientoService{Ahora: time.Now}
}

// Registrar records an outflow against the requested day, defaulting to the
// open register day. Unlike ventas the day is fixed at record time.
func (s *MovimientoService) Registrar(st *estado.Store, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	if req.Monto.IsZero() {
		return nil, apierror.Validacion("el monto no puede ser cero")
	}
	if req.Tipo == model.MovimientoGasto && req.Monto.IsNegative() {
		return nil, apierror.Validacion("un gasto debe ser positivo; un ajuste negativo se registra como compra")
	}

	var mov model.Movimiento
	err := st.Aplicar(func(doc *model.Documento) error {
		fecha, err := fechaMovimiento(doc, req.Fecha, s.Ahora)
		if err != nil {
			return err
		}
		if doc.Cierres.Cerrada(fecha) {
			return apierror.CajaCerrada("la caja del %s está cerrada", fecha)
		}

		mov = model.Movimiento{
			ID:           uuid.New(),
			Timestamp:    s.Ahora(),
			Tipo:         req.Tipo,
			Proveedor:    strings.TrimSpace(req.Proveedor),
			Descripcion:  strings.TrimSpace(req.Descripcion),
			Monto:        req.Monto,
			FechaNegocio: fecha,
		}
		doc.Movimientos = append(doc.Movimientos, mov)
		registrarProveedor(doc, mov.Proveedor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := movimientoToResponse(mov)
	return &resp, nil
}

func fechaMovimiento(doc *model.Documento, pedida *string, ahora func() time.Time) (model.Fecha, error) {
	if pedida != nil && *pedida != "" {
		f, err := model.ParseFecha(*pedida)
		if err != nil {
			return model.Fecha{}, apierror.Validacion("fecha inválida: %s", *pedida)
		}
		return f, nil
	}
	if f := doc.Configuracion.FechaNegocioAbierta; f != nil {
		return *f, nil
	}
	return model.FechaDe(ahora()), nil
}

func registrarProveedor(doc *model.Documento, nombre string) {
	if nombre == "" {
		return
	}
	for _, p := range doc.Proveedores {
		if strings.EqualFold(p.Nombre, nombre) {
			return
		}
	}
	doc.Proveedores = append(doc.Proveedores, model.Proveedor{ID: uuid.New(), Nombre: nombre})
}

// ListarPorDia returns the outflows attributed to one day.
func (s *MovimientoService) ListarPorDia(st *estado.Store, fecha model.Fecha) ([]dto.MovimientoResponse, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	out := []dto.MovimientoResponse{}
	for _, m := range doc.Movimientos {
		if m.FechaNegocio == fecha {
			out = append(out, movimientoToResponse(m))
		}
	}
	return out, nil
}

// Eliminar removes an outflow. Refused once its day is closed.
func (s *MovimientoService) Eliminar(st *estado.Store, id uuid.UUID) error {
	return st.Aplicar(func(doc *model.Documento) error {
		for i, m := range doc.Movimientos {
			if m.ID != id {
				continue
			}
			if doc.Cierres.Cerrada(m.FechaNegocio) {
				return apierror.CajaCerrada("la caja del %s está cerrada", m.FechaNegocio)
			}
			doc.Movimientos = append(doc.Movimientos[:i], doc.Movimientos[i+1:]...)
			return nil
		}
		return apierror.NoEncontrado("movimiento no encontrado")
	})
}

// ListarProveedores returns known supplier names for autocompletion.
func (s *MovimientoService) ListarProveedores(st *estado.Store) ([]string, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	nombres := make([]string, 0, len(doc.Proveedores))
	for _, p := range doc.Proveedores {
		nombres = append(nombres, p.Nombre)
	}
	return nombres, nil
}

func movimientoToResponse(m model.Movimiento) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:          m.ID.String(),
		Timestamp:   m.Timestamp.Format(time.RFC3339),
		Tipo:        string(m.Tipo),
		Proveedor:   m.Proveedor,
		Descripcion: m.Descripcion,
		Monto:       m.Monto,
		Fecha:       m.FechaNegocio.String(),
	}
}
