package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/estado"
)

// StoreKey is the gin context key holding the caller's session store.
const StoreKey = "sesion_store"

// Sesion resolves the caller's session from the X-Usuario-Email header and
// injects its store into the context. No session means 401: every data route
// operates on exactly one user's document.
func Sesion(sesiones *estado.Sesiones) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader("X-Usuario-Email")
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Falta el encabezado X-Usuario-Email"))
			return
		}
		st, ok := sesiones.Obtener(email)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("No hay una sesión abierta para ese usuario"))
			return
		}
		c.Set(StoreKey, st)
		c.Next()
	}
}

// StoreDe extracts the session store injected by Sesion.
func StoreDe(c *gin.Context) *estado.Store {
	st, _ := c.MustGet(StoreKey).(*estado.Store)
	return st
}
