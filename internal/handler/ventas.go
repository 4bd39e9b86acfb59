package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/middleware"
	"github.com/landaetal/despensaapp/internal/model"
	"github.com/landaetal/despensaapp/internal/service"
)

type VentasHandler struct{ svc *service.VentaService }

func NewVentasHandler(svc *service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar una venta
// @Description  Liquida un carrito: con pagos divididos (contado) o a nombre de un fiador (fiado).
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarVentaRequest true "Carrito y liquidación"
// @Success      201 {object} dto.VentaResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, cargo, err := h.svc.Registrar(middleware.StoreDe(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	if cargo != nil {
		c.JSON(http.StatusCreated, cargo)
		return
	}
	c.JSON(http.StatusCreated, venta)
}

// Anular godoc
// @Summary      Anular venta
// @Description  Elimina una venta. Rechazado si su día ya está cerrado.
// @Tags         ventas
// @Param        id path string true "UUID de la venta"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventas/{id} [delete]
func (h *VentasHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Anular(middleware.StoreDe(c), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CambiarMetodoPago godoc
// @Summary      Cambiar método de pago
// @Description  Reescribe el método de una venta de pago único. Rechazado en días cerrados.
// @Tags         ventas
// @Accept       json
// @Param        id   path string                       true "UUID de la venta"
// @Param        body body dto.CambiarMetodoPagoRequest true "Nuevo método"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventas/{id}/metodo-pago [patch]
func (h *VentasHandler) CambiarMetodoPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CambiarMetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarMetodoPago(middleware.StoreDe(c), id, req.Metodo); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarPorDia godoc
// @Summary      Listar ventas de un día
// @Tags         ventas
// @Produce      json
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200 {array} dto.VentaResponse
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarPorDia(c *gin.Context) {
	fecha := model.HoyFecha()
	if raw := c.Query("fecha"); raw != "" {
		f, ok := fechaParam(c, raw)
		if !ok {
			return
		}
		fecha = f
	}
	resp, err := h.svc.ListarPorDia(middleware.StoreDe(c), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
