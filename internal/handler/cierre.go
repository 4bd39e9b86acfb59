package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/middleware"
	"github.com/landaetal/despensaapp/internal/service"
)

type CierreHandler struct{ svc *service.CierreService }

func NewCierreHandler(svc *service.CierreService) *CierreHandler {
	return &CierreHandler{svc: svc}
}

// ResumenDia godoc
// @Summary      Resumen del día
// @Description  Vista de cierre recalculada bajo demanda: ventas por método, salidas y efectivo disponible.
// @Tags         cierre
// @Produce      json
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.ResumenDiaResponse
// @Router       /v1/cierre/{fecha} [get]
func (h *CierreHandler) ResumenDia(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	resp, err := h.svc.ResumenDia(middleware.StoreDe(c), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEfectivo godoc
// @Summary      Editar campos de efectivo
// @Description  Edita el efectivo contado y el de PedidosYa de un día abierto; persiste de inmediato.
// @Tags         cierre
// @Accept       json
// @Produce      json
// @Param        fecha path string                        true "Fecha YYYY-MM-DD"
// @Param        body  body dto.ActualizarEfectivoRequest true "Campos a editar"
// @Success      200 {object} dto.ResumenDiaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cierre/{fecha}/efectivo [put]
func (h *CierreHandler) ActualizarEfectivo(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	var req dto.ActualizarEfectivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEfectivo(middleware.StoreDe(c), fecha, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary      Cerrar caja
// @Description  Sella las ventas flotantes del día, bloquea la edición y avanza el día abierto.
// @Tags         cierre
// @Produce      json
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.ResumenDiaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cierre/{fecha}/cerrar [post]
func (h *CierreHandler) Cerrar(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(middleware.StoreDe(c), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reabrir godoc
// @Summary      Reabrir caja
// @Description  Desbloquea un día cerrado: sus ventas vuelven a flotar y el día queda editable.
// @Tags         cierre
// @Produce      json
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.ResumenDiaResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/cierre/{fecha}/reabrir [post]
func (h *CierreHandler) Reabrir(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	resp, err := h.svc.Reabrir(middleware.StoreDe(c), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Arqueo godoc
// @Summary      Sumar arqueo de caja
// @Description  Suma los montos contados. No persiste nada: el total se copia a mano al efectivo del día.
// @Tags         cierre
// @Accept       json
// @Produce      json
// @Param        body body dto.ArqueoRequest true "Montos contados"
// @Success      200 {object} dto.ArqueoResponse
// @Router       /v1/cierre/arqueo [post]
func (h *CierreHandler) Arqueo(c *gin.Context) {
	var req dto.ArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.Arqueo(req))
}
