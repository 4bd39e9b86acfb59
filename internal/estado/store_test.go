package estado

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/model"
)

// ── configurable Cliente fake ────────────────────────────────────────────────

type clienteFake struct {
	mu        sync.Mutex
	cargarFn  func(ctx context.Context, email string) (*model.Documento, error)
	guardados []*model.Documento
	fallarPut bool
}

func (c *clienteFake) CargarDocumento(ctx context.Context, email string) (*model.Documento, error) {
	if c.cargarFn != nil {
		return c.cargarFn(ctx, email)
	}
	return model.NuevoDocumento(), nil
}

func (c *clienteFake) GuardarDocumento(_ context.Context, _ string, doc *model.Documento) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fallarPut {
		return errors.New("endpoint caído")
	}
	c.guardados = append(c.guardados, doc)
	return nil
}

func (c *clienteFake) RankingVentas(context.Context, string, *model.Fecha, *model.Fecha) (*RankingResponse, error) {
	return &RankingResponse{}, nil
}

func (c *clienteFake) vecesGuardado() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.guardados)
}

func (c *clienteFake) ultimoGuardado() *model.Documento {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.guardados) == 0 {
		return nil
	}
	return c.guardados[len(c.guardados)-1]
}

func docConProducto(nombre string) *model.Documento {
	doc := model.NuevoDocumento()
	doc.Productos = append(doc.Productos, model.Producto{
		EAN: "779", Nombre: nombre, Precio: decimal.NewFromInt(100),
	})
	return doc
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestAplicarRechazadoAntesDeCargar(t *testing.T) {
	// The save gate: an empty just-created session must never be writable,
	// otherwise a save could race ahead of a slow load and wipe remote data.
	st := NewStore("ana@test.com", &clienteFake{}, NewRespaldoMemoria(), nil, time.Millisecond)

	err := st.Aplicar(func(doc *model.Documento) error { return nil })
	require.Error(t, err)
	assert.True(t, apierror.EsKind(err, apierror.KindCargaEstado))
	assert.Equal(t, SesionInactiva, st.Estado())
}

func TestCargarExitosoHabilitaEscritura(t *testing.T) {
	cliente := &clienteFake{cargarFn: func(context.Context, string) (*model.Documento, error) {
		return docConProducto("Leche"), nil
	}}
	st := NewStore("ana@test.com", cliente, NewRespaldoMemoria(), nil, 10*time.Millisecond)

	require.NoError(t, st.Cargar())
	assert.Equal(t, SesionLista, st.Estado())

	snap, err := st.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Productos, 1)
	assert.Equal(t, "Leche", snap.Productos[0].Nombre)

	require.NoError(t, st.Aplicar(func(doc *model.Documento) error {
		doc.Productos[0].Nombre = "Leche entera"
		return nil
	}))
}

func TestCargarUsaRespaldoCuandoRemotoFalla(t *testing.T) {
	respaldo := NewRespaldoMemoria()
	require.NoError(t, respaldo.Guardar("ana@test.com", docConProducto("Yerba")))

	cliente := &clienteFake{cargarFn: func(context.Context, string) (*model.Documento, error) {
		return nil, errors.New("timeout")
	}}
	st := NewStore("ana@test.com", cliente, respaldo, nil, time.Millisecond)

	require.NoError(t, st.Cargar())
	snap, err := st.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Productos, 1)
	assert.Equal(t, "Yerba", snap.Productos[0].Nombre)
}

func TestCargaFallidaSinRespaldoRetieneEscritura(t *testing.T) {
	cliente := &clienteFake{cargarFn: func(context.Context, string) (*model.Documento, error) {
		return nil, errors.New("timeout")
	}}
	st := NewStore("ana@test.com", cliente, NewRespaldoMemoria(), nil, time.Millisecond)

	err := st.Cargar()
	require.Error(t, err)
	assert.Equal(t, SesionFallida, st.Estado())

	err = st.Aplicar(func(doc *model.Documento) error { return nil })
	assert.True(t, apierror.EsKind(err, apierror.KindCargaEstado))

	// The explicit empty-is-acceptable path re-enables saving.
	require.NoError(t, st.AceptarVacio())
	assert.Equal(t, SesionLista, st.Estado())
	require.NoError(t, st.Aplicar(func(doc *model.Documento) error { return nil }))
}

func TestGuardadoDebounceColapsaMutaciones(t *testing.T) {
	cliente := &clienteFake{}
	st := NewStore("ana@test.com", cliente, NewRespaldoMemoria(), nil, 30*time.Millisecond)
	require.NoError(t, st.Cargar())

	for i := 0; i < 5; i++ {
		require.NoError(t, st.Aplicar(func(doc *model.Documento) error {
			doc.Proveedores = append(doc.Proveedores, model.Proveedor{Nombre: "Prov"})
			return nil
		}))
	}

	// Five mutations inside the window → exactly one PUT with the latest state.
	assert.Eventually(t, func() bool { return cliente.vecesGuardado() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, cliente.vecesGuardado())
	assert.Len(t, cliente.ultimoGuardado().Proveedores, 5)
}

func TestMutacionFallidaNoDejaEstadoNiGuardado(t *testing.T) {
	cliente := &clienteFake{}
	st := NewStore("ana@test.com", cliente, NewRespaldoMemoria(), nil, 10*time.Millisecond)
	require.NoError(t, st.Cargar())

	err := st.Aplicar(func(doc *model.Documento) error {
		doc.Productos = append(doc.Productos, model.Producto{Nombre: "fantasma"})
		return errors.New("rechazada")
	})
	require.Error(t, err)

	snap, _ := st.Snapshot()
	assert.Empty(t, snap.Productos)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, cliente.vecesGuardado())
}

func TestCargaSupersedidaDescartaResultadoViejo(t *testing.T) {
	lenta := make(chan struct{})
	var llamadas atomic.Int32
	cliente := &clienteFake{}
	cliente.cargarFn = func(ctx context.Context, _ string) (*model.Documento, error) {
		if llamadas.Add(1) == 1 {
			select {
			case <-lenta:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return docConProducto("viejo"), nil
		}
		return docConProducto("nuevo"), nil
	}
	st := NewStore("ana@test.com", cliente, NewRespaldoMemoria(), nil, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- st.Cargar() }()
	time.Sleep(10 * time.Millisecond)

	// Second load supersedes: the first one's in-flight context is cancelled
	// and its result, even if it arrives, is discarded.
	require.NoError(t, st.Cargar())
	close(lenta)
	<-done

	snap, err := st.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Productos, 1)
	assert.Equal(t, "nuevo", snap.Productos[0].Nombre)
}

func TestCerrarCancelaCargaEnVuelo(t *testing.T) {
	cancelado := make(chan struct{})
	cliente := &clienteFake{cargarFn: func(ctx context.Context, _ string) (*model.Documento, error) {
		<-ctx.Done()
		close(cancelado)
		return nil, ctx.Err()
	}}
	st := NewStore("ana@test.com", cliente, NewRespaldoMemoria(), nil, time.Millisecond)

	go func() { _ = st.Cargar() }()
	time.Sleep(10 * time.Millisecond)
	st.Cerrar()

	select {
	case <-cancelado:
	case <-time.After(time.Second):
		t.Fatal("la carga en vuelo no fue cancelada al cerrar la sesión")
	}
}

func TestGuardadoRemotoFallidoConservaRespaldo(t *testing.T) {
	cliente := &clienteFake{fallarPut: true}
	respaldo := NewRespaldoMemoria()
	st := NewStore("ana@test.com", cliente, respaldo, nil, 5*time.Millisecond)
	require.NoError(t, st.Cargar())

	require.NoError(t, st.Aplicar(func(doc *model.Documento) error {
		doc.Productos = append(doc.Productos, model.Producto{EAN: "1", Nombre: "Pan"})
		return nil
	}))

	// Remote PUT fails non-fatally; the local mirror still holds the data.
	assert.Eventually(t, func() bool {
		doc, err := respaldo.Cargar("ana@test.com")
		return err == nil && len(doc.Productos) == 1
	}, time.Second, 5*time.Millisecond)
}
