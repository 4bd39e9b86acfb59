package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/model"
)

func ventaEn(dia *model.Fecha, metodo model.MetodoPago, monto float64) model.Venta {
	return model.Venta{
		ID:           uuid.New(),
		Total:        d(monto),
		Items:        []model.ItemVenta{{EAN: "x", Nombre: "x", PrecioUnitario: d(monto), Cantidad: 1}},
		Pagos:        []model.Pago{{Metodo: metodo, Monto: d(monto)}},
		FechaNegocio: dia,
	}
}

func TestResumenDiaEfectivoDisponible(t *testing.T) {
	dia := fecha("2026-03-10")
	anterior := dia.Anterior()
	doc := model.NuevoDocumento()
	doc.Configuracion.FechaNegocioAbierta = &dia
	doc.Ventas = []model.Venta{
		ventaEn(&dia, model.MetodoEfectivo, 1000),
		ventaEn(&dia, model.MetodoDebito, 700),
	}
	doc.Cierres = model.Cierres{
		anterior: {Fecha: anterior, EfectivoProximoDia: d(500), Cerrada: true},
		dia:      {Fecha: dia, EfectivoProximoDia: d(300), EfectivoPedidosYa: d(200)},
	}
	st := nuevoStoreListo(t, doc)

	resumen, err := NewCierreService().ResumenDia(st, dia)
	require.NoError(t, err)
	assert.True(t, resumen.Ventas.Efectivo.Equal(d(1000)))
	assert.True(t, resumen.Ventas.Debito.Equal(d(700)))
	assert.True(t, resumen.Ventas.Total.Equal(d(1700)))
	assert.True(t, resumen.EfectivoDiaAnterior.Equal(d(500)))
	// 1000 efectivo + 500 arrastre + 200 PedidosYa − 300 al día siguiente
	assert.True(t, resumen.EfectivoDisponible.Equal(d(1400)),
		"efectivo disponible = %s", resumen.EfectivoDisponible)
	assert.Equal(t, 2, resumen.CantidadVentas)
	assert.False(t, resumen.Cerrada)
}

func TestResumenDiaIncluyeFlotantes(t *testing.T) {
	dia := fecha("2026-03-10")
	doc := model.NuevoDocumento()
	doc.Configuracion.FechaNegocioAbierta = &dia
	doc.Ventas = []model.Venta{ventaEn(nil, model.MetodoEfectivo, 1000)}
	st := nuevoStoreListo(t, doc)

	resumen, err := NewCierreService().ResumenDia(st, dia)
	require.NoError(t, err)
	assert.Equal(t, 1, resumen.CantidadVentas, "la venta flotante cuenta para el día abierto")

	otro, err := NewCierreService().ResumenDia(st, fecha("2026-03-08"))
	require.NoError(t, err)
	assert.Equal(t, 0, otro.CantidadVentas)
}

func TestResumenDiaNetoConMovimientos(t *testing.T) {
	dia := fecha("2026-03-10")
	doc := model.NuevoDocumento()
	doc.Configuracion.FechaNegocioAbierta = &dia
	doc.Ventas = []model.Venta{ventaEn(&dia, model.MetodoEfectivo, 5000)}
	doc.Movimientos = []model.Movimiento{
		{ID: uuid.New(), Tipo: model.MovimientoCompra, Monto: d(1200), FechaNegocio: dia},
		{ID: uuid.New(), Tipo: model.MovimientoGasto, Monto: d(300), FechaNegocio: dia},
		{ID: uuid.New(), Tipo: model.MovimientoGasto, Monto: d(999), FechaNegocio: dia.Anterior()},
	}
	st := nuevoStoreListo(t, doc)

	resumen, err := NewCierreService().ResumenDia(st, dia)
	require.NoError(t, err)
	assert.True(t, resumen.TotalCompras.Equal(d(1200)))
	assert.True(t, resumen.TotalGastos.Equal(d(300)))
	assert.True(t, resumen.NetoDia.Equal(d(3500)))
}

func TestActualizarEfectivoRechazadoEnDiaCerrado(t *testing.T) {
	dia := fecha("2026-03-09")
	doc := model.NuevoDocumento()
	doc.Cierres = model.Cierres{dia: {Fecha: dia, Cerrada: true}}
	st := nuevoStoreListo(t, doc)

	monto := d(100)
	_, err := NewCierreService().ActualizarEfectivo(st, dia, dto.ActualizarEfectivoRequest{
		EfectivoProximoDia: &monto,
	})
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindCajaCerrada))
}

func TestActualizarEfectivoPersisteCampos(t *testing.T) {
	dia := fecha("2026-03-10")
	st := nuevoStoreListo(t, model.NuevoDocumento())

	proximo, pedidosYa := d(300), d(200)
	resumen, err := NewCierreService().ActualizarEfectivo(st, dia, dto.ActualizarEfectivoRequest{
		EfectivoProximoDia: &proximo,
		EfectivoPedidosYa:  &pedidosYa,
	})
	require.NoError(t, err)
	assert.True(t, resumen.EfectivoProximoDia.Equal(d(300)))
	assert.True(t, resumen.EfectivoPedidosYa.Equal(d(200)))

	snap, _ := st.Snapshot()
	assert.True(t, snap.Cierres.Obtener(dia).EfectivoProximoDia.Equal(d(300)))
}

func TestCerrarCajaSellaFlotantesYAvanzaDia(t *testing.T) {
	hoy := model.HoyFecha()
	doc := model.NuevoDocumento()
	doc.Configuracion.FechaNegocioAbierta = &hoy
	doc.Ventas = []model.Venta{ventaEn(nil, model.MetodoEfectivo, 1000)}
	st := nuevoStoreListo(t, doc)

	resumen, err := NewCierreService().Cerrar(st, hoy)
	require.NoError(t, err)
	assert.True(t, resumen.Cerrada)

	snap, _ := st.Snapshot()
	require.NotNil(t, snap.Ventas[0].FechaNegocio)
	assert.Equal(t, hoy, *snap.Ventas[0].FechaNegocio, "la venta flotante queda sellada al día cerrado")
	require.NotNil(t, snap.Configuracion.FechaNegocioAbierta)
	assert.Equal(t, hoy.Siguiente(), *snap.Configuracion.FechaNegocioAbierta)
}

func TestCerrarCajaDePasadoAbreHoy(t *testing.T) {
	pasado := model.HoyFecha().Anterior().Anterior()
	doc := model.NuevoDocumento()
	doc.Configuracion.FechaNegocioAbierta = &pasado
	st := nuevoStoreListo(t, doc)

	_, err := NewCierreService().Cerrar(st, pasado)
	require.NoError(t, err)

	snap, _ := st.Snapshot()
	assert.Equal(t, model.HoyFecha(), *snap.Configuracion.FechaNegocioAbierta,
		"cerrar un día atrasado pone la caja al día")
}

func TestCerrarCajaYaCerrada(t *testing.T) {
	dia := fecha("2026-03-09")
	doc := model.NuevoDocumento()
	doc.Cierres = model.Cierres{dia: {Fecha: dia, Cerrada: true}}
	st := nuevoStoreListo(t, doc)

	_, err := NewCierreService().Cerrar(st, dia)
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindCajaCerrada))
}

func TestReabrirCajaRestauraEdicion(t *testing.T) {
	hoy := model.HoyFecha()
	doc := model.NuevoDocumento()
	doc.Configuracion.FechaNegocioAbierta = &hoy
	doc.Ventas = []model.Venta{ventaEn(nil, model.MetodoEfectivo, 1000)}
	st := nuevoStoreListo(t, doc)
	svc := NewCierreService()

	_, err := svc.Cerrar(st, hoy)
	require.NoError(t, err)

	resumen, err := svc.Reabrir(st, hoy)
	require.NoError(t, err)
	assert.False(t, resumen.Cerrada)

	snap, _ := st.Snapshot()
	assert.Nil(t, snap.Ventas[0].FechaNegocio, "al reabrir la venta vuelve a flotar")
	assert.Equal(t, hoy, *snap.Configuracion.FechaNegocioAbierta)

	// El ciclo cerrar/reabrir deja la venta nuevamente anulable.
	require.NoError(t, NewVentaService().Anular(st, snap.Ventas[0].ID))
}

func TestReabrirCajaNoCerrada(t *testing.T) {
	st := nuevoStoreListo(t, model.NuevoDocumento())
	_, err := NewCierreService().Reabrir(st, fecha("2026-03-10"))
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindValidacion))
}

func TestArqueoSumaMontos(t *testing.T) {
	res := NewCierreService().Arqueo(dto.ArqueoRequest{
		Montos: []decimal.Decimal{d(1000), d(500.50), d(24.50)},
	})
	assert.True(t, res.Total.Equal(d(1525)), "total = %s", res.Total)
}
