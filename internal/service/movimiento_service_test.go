package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/model"
)

func TestRegistrarMovimientoEnDiaAbierto(t *testing.T) {
	dia := fecha("2026-03-10")
	doc := model.NuevoDocumento()
	doc.Configuracion.FechaNegocioAbierta = &dia
	st := nuevoStoreListo(t, doc)

	resp, err := NewMovimientoService().Registrar(st, dto.RegistrarMovimientoRequest{
		Tipo:        model.MovimientoCompra,
		Proveedor:   "Distribuidora Sur",
		Descripcion: "reposición semanal",
		Monto:       d(15000),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", resp.Fecha)

	snap, _ := st.Snapshot()
	require.Len(t, snap.Movimientos, 1)
	require.Len(t, snap.Proveedores, 1)
	assert.Equal(t, "Distribuidora Sur", snap.Proveedores[0].Nombre)
}

func TestRegistrarMovimientoProveedorNoSeDuplica(t *testing.T) {
	st := nuevoStoreListo(t, model.NuevoDocumento())
	svc := NewMovimientoService()

	for _, nombre := range []string{"Distribuidora Sur", "distribuidora sur"} {
		_, err := svc.Registrar(st, dto.RegistrarMovimientoRequest{
			Tipo:        model.MovimientoCompra,
			Proveedor:   nombre,
			Descripcion: "reposición",
			Monto:       d(1000),
		})
		require.NoError(t, err)
	}

	snap, _ := st.Snapshot()
	assert.Len(t, snap.Proveedores, 1)
}

func TestRegistrarGastoNegativoRechazado(t *testing.T) {
	st := nuevoStoreListo(t, model.NuevoDocumento())

	_, err := NewMovimientoService().Registrar(st, dto.RegistrarMovimientoRequest{
		Tipo:        model.MovimientoGasto,
		Descripcion: "ajuste",
		Monto:       d(-500),
	})
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindValidacion))

	// El mismo ajuste negativo sí entra como compra.
	_, err = NewMovimientoService().Registrar(st, dto.RegistrarMovimientoRequest{
		Tipo:        model.MovimientoCompra,
		Descripcion: "ajuste",
		Monto:       d(-500),
	})
	assert.NoError(t, err)
}

func TestRegistrarMovimientoMontoCero(t *testing.T) {
	st := nuevoStoreListo(t, model.NuevoDocumento())
	_, err := NewMovimientoService().Registrar(st, dto.RegistrarMovimientoRequest{
		Tipo:        model.MovimientoGasto,
		Descripcion: "nada",
		Monto:       d(0),
	})
	require.Error(t, err)
}

func TestRegistrarMovimientoDiaCerrado(t *testing.T) {
	dia := fecha("2026-03-09")
	doc := model.NuevoDocumento()
	doc.Cierres = model.Cierres{dia: {Fecha: dia, Cerrada: true}}
	st := nuevoStoreListo(t, doc)

	raw := "2026-03-09"
	_, err := NewMovimientoService().Registrar(st, dto.RegistrarMovimientoRequest{
		Tipo:        model.MovimientoGasto,
		Descripcion: "tardío",
		Monto:       d(100),
		Fecha:       &raw,
	})
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindCajaCerrada))
}

func TestEliminarMovimientoDiaCerrado(t *testing.T) {
	dia := fecha("2026-03-09")
	doc := model.NuevoDocumento()
	mov := model.Movimiento{ID: uuid.New(), Tipo: model.MovimientoGasto, Monto: d(100), FechaNegocio: dia}
	doc.Movimientos = []model.Movimiento{mov}
	doc.Cierres = model.Cierres{dia: {Fecha: dia, Cerrada: true}}
	st := nuevoStoreListo(t, doc)

	err := NewMovimientoService().Eliminar(st, mov.ID)
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindCajaCerrada))
}

func TestEliminarMovimiento(t *testing.T) {
	dia := fecha("2026-03-10")
	doc := model.NuevoDocumento()
	mov := model.Movimiento{ID: uuid.New(), Tipo: model.MovimientoGasto, Monto: d(100), FechaNegocio: dia}
	doc.Movimientos = []model.Movimiento{mov}
	st := nuevoStoreListo(t, doc)

	require.NoError(t, NewMovimientoService().Eliminar(st, mov.ID))
	snap, _ := st.Snapshot()
	assert.Empty(t, snap.Movimientos)
}
