// Package autorizacion gates sensitive credit-ledger mutations behind
// capabilities. Today each capability is unlocked by a shared secret supplied
// with the request; call sites only ever see the capability check, so the
// comparison can be swapped for real authentication without touching them.
package autorizacion

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/landaetal/despensaapp/internal/apierror"
)

// Capacidad names a guarded operation.
type Capacidad string

const (
	// CobrarFiados allows registering payments against credit accounts.
	CobrarFiados Capacidad = "cobrar_fiados"
	// EliminarFiadores allows irreversibly deleting a credit account and
	// its history.
	EliminarFiadores Capacidad = "eliminar_fiadores"
)

// Guard resolves capability checks against configured shared secrets.
// A configured secret may be a bcrypt hash ("$2a$…") or a plain value;
// plain values are compared in constant time.
type Guard struct {
	secretos map[Capacidad]string
}

// NewGuard builds a guard from the settlement and deletion secrets.
func NewGuard(secretoCobro, secretoEliminacion string) *Guard {
	return &Guard{secretos: map[Capacidad]string{
		CobrarFiados:     secretoCobro,
		EliminarFiadores: secretoEliminacion,
	}}
}

// Autorizar checks the supplied secret against the capability's configured
// one. A missing configuration refuses everything for that capability.
func (g *Guard) Autorizar(cap Capacidad, suministrado string) error {
	configurado, ok := g.secretos[cap]
	if !ok || configurado == "" {
		return apierror.Validacion("operación no habilitada")
	}
	if coincide(configurado, suministrado) {
		return nil
	}
	return apierror.Validacion("clave incorrecta")
}

func coincide(configurado, suministrado string) bool {
	if strings.HasPrefix(configurado, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configurado), []byte(suministrado)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configurado), []byte(suministrado)) == 1
}
