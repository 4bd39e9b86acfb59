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

type MovimientosHandler struct{ svc *service.MovimientoService }

func NewMovimientosHandler(svc *service.MovimientoService) *MovimientosHandler {
	return &MovimientosHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar compra o gasto
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarMovimientoRequest true "Movimiento"
// @Success      201 {object} dto.MovimientoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/movimientos [post]
func (h *MovimientosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(middleware.StoreDe(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPorDia godoc
// @Summary      Listar movimientos de un día
// @Tags         movimientos
// @Produce      json
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200 {array} dto.MovimientoResponse
// @Router       /v1/movimientos [get]
func (h *MovimientosHandler) ListarPorDia(c *gin.Context) {
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

// Eliminar godoc
// @Summary      Eliminar movimiento
// @Description  Rechazado si el día del movimiento ya está cerrado.
// @Tags         movimientos
// @Param        id path string true "UUID del movimiento"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/movimientos/{id} [delete]
func (h *MovimientosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(middleware.StoreDe(c), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarProveedores godoc
// @Summary      Listar proveedores conocidos
// @Tags         movimientos
// @Produce      json
// @Success      200 {array} string
// @Router       /v1/proveedores [get]
func (h *MovimientosHandler) ListarProveedores(c *gin.Context) {
	resp, err := h.svc.ListarProveedores(middleware.StoreDe(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
