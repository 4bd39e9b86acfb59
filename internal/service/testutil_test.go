package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/model"
)

// clienteStub serves a fixed document and records nothing. Ranking answers
// come from rankingFn when set.
type clienteStub struct {
	doc       *model.Documento
	rankingFn func() (*estado.RankingResponse, error)
}

func (c *clienteStub) CargarDocumento(ctx context.Context, email string) (*model.Documento, error) {
	return c.doc.Clone(), nil
}

func (c *clienteStub) GuardarDocumento(ctx context.Context, email string, doc *model.Documento) error {
	return nil
}

func (c *clienteStub) RankingVentas(ctx context.Context, email string, desde, hasta *model.Fecha) (*estado.RankingResponse, error) {
	if c.rankingFn != nil {
		return c.rankingFn()
	}
	return &estado.RankingResponse{}, nil
}

// nuevoStoreListo loads doc into a ready session store.
func nuevoStoreListo(t *testing.T, doc *model.Documento) *estado.Store {
	t.Helper()
	doc.Normalizar()
	st := estado.NewStore("test@despensa.ar", &clienteStub{doc: doc},
		estado.NewRespaldoMemoria(), nil, 5*time.Millisecond)
	require.NoError(t, st.Cargar())
	t.Cleanup(st.Cerrar)
	return st
}

func producto(ean, nombre string, precio float64) model.Producto {
	return model.Producto{
		ID:     uuid.New(),
		EAN:    ean,
		Nombre: nombre,
		Precio: decimal.NewFromFloat(precio),
	}
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func fecha(s string) model.Fecha {
	f, err := model.ParseFecha(s)
	if err != nil {
		panic(err)
	}
	return f
}
