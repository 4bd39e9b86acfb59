package autorizacion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAutorizarClavePlana(t *testing.T) {
	g := NewGuard("1234", "9999")

	assert.NoError(t, g.Autorizar(CobrarFiados, "1234"))
	assert.Error(t, g.Autorizar(CobrarFiados, "9999"), "cada capacidad tiene su propia clave")
	assert.Error(t, g.Autorizar(EliminarFiadores, "1234"))
	assert.NoError(t, g.Autorizar(EliminarFiadores, "9999"))
}

func TestAutorizarClaveBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.MinCost)
	require.NoError(t, err)

	g := NewGuard(string(hash), "")
	assert.NoError(t, g.Autorizar(CobrarFiados, "secreta"))
	assert.Error(t, g.Autorizar(CobrarFiados, "otra"))
}

func TestAutorizarSinConfiguracionRechaza(t *testing.T) {
	g := NewGuard("1234", "")
	assert.Error(t, g.Autorizar(EliminarFiadores, ""), "clave vacía configurada deshabilita la capacidad")
}
