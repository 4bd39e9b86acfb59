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

func TestRegistrarVentaContado(t *testing.T) {
	abierta := fecha("2026-03-10")
	doc := model.NuevoDocumento()
	doc.Productos = []model.Producto{producto("779001", "Yerba 1kg", 4500), producto("779002", "Azúcar", 1200)}
	doc.Configuracion.FechaNegocioAbierta = &abierta
	st := nuevoStoreListo(t, doc)

	svc := NewVentaService()
	venta, cargo, err := svc.Registrar(st, dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{
			{EAN: "779001", Cantidad: 2},
			{EAN: "779002", Cantidad: 1},
		},
		Pagos: []dto.PagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: d(5000)},
			{Metodo: model.MetodoDebito, Monto: d(5200)},
		},
	})
	require.NoError(t, err)
	require.Nil(t, cargo)
	assert.True(t, venta.Total.Equal(d(10200)), "total = %s", venta.Total)
	require.NotNil(t, venta.FechaNegocio)
	assert.Equal(t, "2026-03-10", *venta.FechaNegocio)

	snap, err := st.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Ventas, 1)
	assert.Len(t, snap.Ventas[0].Pagos, 2)
}

func TestRegistrarVentaPagosNoCoinciden(t *testing.T) {
	doc := model.NuevoDocumento()
	doc.Productos = []model.Producto{producto("779001", "Yerba 1kg", 4500)}
	st := nuevoStoreListo(t, doc)

	_, _, err := NewVentaService().Registrar(st, dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{{EAN: "779001", Cantidad: 1}},
		Pagos: []dto.PagoRequest{{Metodo: model.MetodoEfectivo, Monto: d(4400)}},
	})
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindValidacion))

	snap, _ := st.Snapshot()
	assert.Empty(t, snap.Ventas, "una venta rechazada no deja rastro")
}

func TestRegistrarVentaToleranciaDeCentavo(t *testing.T) {
	doc := model.NuevoDocumento()
	doc.Productos = []model.Producto{producto("779001", "Yerba 1kg", 4500)}
	st := nuevoStoreListo(t, doc)

	_, _, err := NewVentaService().Registrar(st, dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{{EAN: "779001", Cantidad: 1}},
		Pagos: []dto.PagoRequest{{Metodo: model.MetodoEfectivo, Monto: d(4500.01)}},
	})
	assert.NoError(t, err, "una diferencia de un centavo se acepta")
}

func TestRegistrarVentaSinPrecioRequiereManual(t *testing.T) {
	doc := model.NuevoDocumento()
	doc.Productos = []model.Producto{producto("779003", "Pan casero", 0)}
	st := nuevoStoreListo(t, doc)
	svc := NewVentaService()

	_, _, err := svc.Registrar(st, dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{{EAN: "779003", Cantidad: 1}},
		Pagos: []dto.PagoRequest{{Metodo: model.MetodoEfectivo, Monto: d(800)}},
	})
	require.Error(t, err, "sin precio manual la venta se rechaza")

	manual := d(800)
	venta, _, err := svc.Registrar(st, dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{{EAN: "779003", Cantidad: 1, PrecioManual: &manual}},
		Pagos: []dto.PagoRequest{{Metodo: model.MetodoEfectivo, Monto: d(800)}},
	})
	require.NoError(t, err)
	assert.True(t, venta.Total.Equal(d(800)))

	// El precio manual vale solo para esa línea: el catálogo sigue en 0.
	snap, _ := st.Snapshot()
	p := snap.BuscarProductoPorEAN("779003")
	require.NotNil(t, p)
	assert.True(t, p.Precio.IsZero(), "el precio manual nunca se escribe al catálogo")
}

func TestRegistrarVentaFiadoCongelaPrecioSoloSinCatalogo(t *testing.T) {
	doc := model.NuevoDocumento()
	doc.Productos = []model.Producto{
		producto("779001", "Yerba 1kg", 4500),
		producto("779003", "Pan casero", 0),
	}
	st := nuevoStoreListo(t, doc)

	nombre := "Doña Rosa"
	manual := d(800)
	_, cargo, err := NewVentaService().Registrar(st, dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{
			{EAN: "779001", Cantidad: 1},
			{EAN: "779003", Cantidad: 2, PrecioManual: &manual},
		},
		FiadoNombre: &nombre,
	})
	require.NoError(t, err)
	require.NotNil(t, cargo)
	assert.True(t, cargo.Total.Equal(d(6100)))
	assert.True(t, cargo.Saldo.Equal(d(6100)))

	snap, _ := st.Snapshot()
	assert.Empty(t, snap.Ventas, "un fiado no es una venta")
	require.Len(t, snap.Fiadores, 1)
	items := snap.Fiadores[0].Cargos[0].Items
	require.Len(t, items, 2)
	assert.Nil(t, items[0].PrecioCongelado, "precio de catálogo vigente no se congela")
	require.NotNil(t, items[1].PrecioCongelado, "precio manual se congela")
	assert.True(t, items[1].PrecioCongelado.Equal(d(800)))
}

func TestRegistrarVentaFiadoYPagosExcluyentes(t *testing.T) {
	doc := model.NuevoDocumento()
	doc.Productos = []model.Producto{producto("779001", "Yerba 1kg", 4500)}
	st := nuevoStoreListo(t, doc)

	nombre := "Doña Rosa"
	_, _, err := NewVentaService().Registrar(st, dto.RegistrarVentaRequest{
		Items:       []dto.ItemCarritoRequest{{EAN: "779001", Cantidad: 1}},
		Pagos:       []dto.PagoRequest{{Metodo: model.MetodoEfectivo, Monto: d(4500)}},
		FiadoNombre: &nombre,
	})
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindValidacion))
}

func TestAnularVentaRespetaCajaCerrada(t *testing.T) {
	dia := fecha("2026-03-09")
	doc := model.NuevoDocumento()
	venta := model.Venta{
		ID:           uuid.New(),
		Total:        d(4500),
		Pagos:        []model.Pago{{Metodo: model.MetodoEfectivo, Monto: d(4500)}},
		FechaNegocio: &dia,
	}
	doc.Ventas = []model.Venta{venta}
	doc.Cierres = model.Cierres{dia: {Fecha: dia, Cerrada: true}}
	st := nuevoStoreListo(t, doc)
	svc := NewVentaService()

	err := svc.Anular(st, venta.ID)
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindCajaCerrada))

	err = svc.CambiarMetodoPago(st, venta.ID, model.MetodoDebito)
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindCajaCerrada))
}

func TestCambiarMetodoPago(t *testing.T) {
	doc := model.NuevoDocumento()
	venta := model.Venta{
		ID:    uuid.New(),
		Total: d(4500),
		Pagos: []model.Pago{{Metodo: model.MetodoEfectivo, Monto: d(4500)}},
	}
	doc.Ventas = []model.Venta{venta}
	st := nuevoStoreListo(t, doc)

	require.NoError(t, NewVentaService().CambiarMetodoPago(st, venta.ID, model.MetodoCredito))
	snap, _ := st.Snapshot()
	assert.Equal(t, model.MetodoCredito, snap.Ventas[0].Pagos[0].Metodo)
}

func TestCambiarMetodoPagoRechazaPagoDividido(t *testing.T) {
	doc := model.NuevoDocumento()
	venta := model.Venta{
		ID:    uuid.New(),
		Total: d(4500),
		Pagos: []model.Pago{
			{Metodo: model.MetodoEfectivo, Monto: d(2000)},
			{Metodo: model.MetodoDebito, Monto: d(2500)},
		},
	}
	doc.Ventas = []model.Venta{venta}
	st := nuevoStoreListo(t, doc)

	err := NewVentaService().CambiarMetodoPago(st, venta.ID, model.MetodoCredito)
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindValidacion))
}
