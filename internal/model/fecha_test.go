package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFechaAnteriorCruzaMes(t *testing.T) {
	f := NuevaFecha(2026, time.March, 1)
	assert.Equal(t, "2026-02-28", f.Anterior().String())
	assert.Equal(t, "2026-03-02", f.Siguiente().String())
}

func TestFechaAnteriorCruzaAnio(t *testing.T) {
	f := NuevaFecha(2026, time.January, 1)
	assert.Equal(t, "2025-12-31", f.Anterior().String())
}

func TestFechaBisiesto(t *testing.T) {
	f := NuevaFecha(2024, time.March, 1)
	assert.Equal(t, "2024-02-29", f.Anterior().String())
}

func TestParseFechaRoundTrip(t *testing.T) {
	f, err := ParseFecha("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", f.String())

	_, err = ParseFecha("10/03/2026")
	assert.Error(t, err)
}

func TestFechaComoClaveJSON(t *testing.T) {
	dia, _ := ParseFecha("2026-03-10")
	cierres := Cierres{dia: {Fecha: dia, Cerrada: true}}

	data, err := json.Marshal(cierres)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"2026-03-10"`)

	var decodificado Cierres
	require.NoError(t, json.Unmarshal(data, &decodificado))
	assert.True(t, decodificado.Cerrada(dia))
}

func TestCierresDiaFaltanteEstaAbierto(t *testing.T) {
	c := Cierres{}
	dia, _ := ParseFecha("2026-03-10")
	assert.False(t, c.Cerrada(dia))
	r := c.Obtener(dia)
	assert.Equal(t, dia, r.Fecha)
	assert.True(t, r.EfectivoProximoDia.IsZero())
}

func TestEfectivoDelDiaAnterior(t *testing.T) {
	hoy, _ := ParseFecha("2026-03-10")
	ayer := hoy.Anterior()
	c := Cierres{}
	assert.True(t, c.EfectivoDelDiaAnterior(hoy).IsZero(), "sin registro previo el arrastre es cero")

	c.Guardar(Cierre{Fecha: ayer, EfectivoProximoDia: decimal.RequireFromString("500")})
	assert.Equal(t, "500", c.EfectivoDelDiaAnterior(hoy).String())
}
