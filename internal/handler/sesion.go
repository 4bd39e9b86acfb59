package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/middleware"
)

type SesionHandler struct{ sesiones *estado.Sesiones }

func NewSesionHandler(sesiones *estado.Sesiones) *SesionHandler {
	return &SesionHandler{sesiones: sesiones}
}

// Abrir godoc
// @Summary      Abrir sesión
// @Description  Abre (o reutiliza) la sesión de un usuario y dispara la carga de su estado en segundo plano.
// @Tags         sesion
// @Accept       json
// @Produce      json
// @Param        body body dto.AbrirSesionRequest true "Email del usuario"
// @Success      200 {object} dto.SesionResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/sesion [post]
func (h *SesionHandler) Abrir(c *gin.Context) {
	var req dto.AbrirSesionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	st := h.sesiones.Abrir(req.Email)
	c.JSON(http.StatusOK, dto.SesionResponse{Email: st.Email(), Estado: st.Estado().String()})
}

// Estado godoc
// @Summary      Estado de la sesión
// @Description  Informa si la sesión del usuario está cargando, lista o fallida.
// @Tags         sesion
// @Produce      json
// @Success      200 {object} dto.SesionResponse
// @Router       /v1/sesion [get]
func (h *SesionHandler) Estado(c *gin.Context) {
	st := middleware.StoreDe(c)
	c.JSON(http.StatusOK, dto.SesionResponse{Email: st.Email(), Estado: st.Estado().String()})
}

// AceptarVacio godoc
// @Summary      Empezar con un estado vacío
// @Description  Tras una carga fallida, habilita la sesión con un documento vacío.
// @Tags         sesion
// @Produce      json
// @Success      200 {object} dto.SesionResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/sesion/aceptar-vacio [post]
func (h *SesionHandler) AceptarVacio(c *gin.Context) {
	st := middleware.StoreDe(c)
	if err := st.AceptarVacio(); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SesionResponse{Email: st.Email(), Estado: st.Estado().String()})
}

// Cerrar godoc
// @Summary      Cerrar sesión
// @Description  Cancela el trabajo en vuelo, escribe el espejo local y descarta la sesión.
// @Tags         sesion
// @Success      204
// @Router       /v1/sesion [delete]
func (h *SesionHandler) Cerrar(c *gin.Context) {
	st := middleware.StoreDe(c)
	h.sesiones.Cerrar(st.Email())
	c.Status(http.StatusNoContent)
}
