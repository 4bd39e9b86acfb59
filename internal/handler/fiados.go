package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/middleware"
	"github.com/landaetal/despensaapp/internal/service"
)

type FiadosHandler struct{ svc *service.FiadoService }

func NewFiadosHandler(svc *service.FiadoService) *FiadosHandler {
	return &FiadosHandler{svc: svc}
}

// ListarActivos godoc
// @Summary      Listar cuentas de fiados activas
// @Description  Cuentas con saldo pendiente; el saldo se rederiva del historial en cada consulta.
// @Tags         fiados
// @Produce      json
// @Success      200 {array} dto.FiadorResponse
// @Router       /v1/fiados [get]
func (h *FiadosHandler) ListarActivos(c *gin.Context) {
	resp, err := h.svc.ListarActivos(middleware.StoreDe(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPago godoc
// @Summary      Registrar pago de fiado
// @Description  Cobra (parte de) una cuenta. Requiere la clave de cobro; una cuenta saldada se elimina.
// @Tags         fiados
// @Accept       json
// @Produce      json
// @Param        nombre path string                        true "Nombre del fiador"
// @Param        body   body dto.RegistrarPagoFiadoRequest true "Monto y clave"
// @Success      200 {object} dto.ResultadoPagoFiado
// @Failure      422 {object} apierror.APIError
// @Router       /v1/fiados/{nombre}/pagos [post]
func (h *FiadosHandler) RegistrarPago(c *gin.Context) {
	var req dto.RegistrarPagoFiadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(middleware.StoreDe(c), c.Param("nombre"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar cuenta de fiado
// @Description  Borra la cuenta sin importar el saldo. Requiere la clave de eliminación.
// @Tags         fiados
// @Accept       json
// @Param        nombre path string                    true "Nombre del fiador"
// @Param        body   body dto.EliminarFiadorRequest true "Clave de eliminación"
// @Success      204
// @Failure      422 {object} apierror.APIError
// @Router       /v1/fiados/{nombre} [delete]
func (h *FiadosHandler) Eliminar(c *gin.Context) {
	var req dto.EliminarFiadorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Eliminar(middleware.StoreDe(c), c.Param("nombre"), req.Clave); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
