package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/middleware"
	"github.com/landaetal/despensaapp/internal/service"
)

type ProductosHandler struct{ svc *service.ProductoService }

func NewProductosHandler(svc *service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Success      200 {array} dto.ProductoResponse
// @Router       /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(middleware.StoreDe(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarPorEAN godoc
// @Summary      Buscar producto por código de barras
// @Tags         productos
// @Produce      json
// @Param        ean path string true "Código de barras"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{ean} [get]
func (h *ProductosHandler) BuscarPorEAN(c *gin.Context) {
	resp, err := h.svc.BuscarPorEAN(middleware.StoreDe(c), c.Param("ean"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearProductoRequest true "Producto"
// @Success      201 {object} dto.ProductoResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(middleware.StoreDe(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id   path string                        true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Nuevos datos"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(middleware.StoreDe(c), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PreciosReventa godoc
// @Summary      Precios de reventa por canal
// @Description  Calcula el precio de lista por canal aplicando el margen y redondeando hacia arriba al peso.
// @Tags         productos
// @Produce      json
// @Param        id path string true "UUID del producto"
// @Success      200 {array} dto.PrecioReventaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/precios-reventa [get]
func (h *ProductosHandler) PreciosReventa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.PreciosReventa(middleware.StoreDe(c), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportarCSV godoc
// @Summary      Importar catálogo CSV
// @Description  Fusiona un CSV (ean,nombre,precio; separador coma o punto y coma) con el catálogo existente por código de barras.
// @Tags         productos
// @Accept       mpfd
// @Produce      json
// @Param        archivo formData file true "CSV del catálogo"
// @Success      200 {object} dto.ImportarCSVResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/productos/importar [post]
func (h *ProductosHandler) ImportarCSV(c *gin.Context) {
	archivo, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo CSV"))
		return
	}
	f, err := archivo.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	defer f.Close()

	resp, err := h.svc.ImportarCSV(middleware.StoreDe(c), f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarCSV godoc
// @Summary      Exportar catálogo CSV
// @Tags         productos
// @Produce      text/csv
// @Success      200
// @Router       /v1/productos/exportar [get]
func (h *ProductosHandler) ExportarCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="productos.csv"`)
	if err := h.svc.ExportarCSV(middleware.StoreDe(c), c.Writer); err != nil {
		responderError(c, err)
	}
}
