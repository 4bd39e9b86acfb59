package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/middleware"
	"github.com/landaetal/despensaapp/internal/model"
)

// ConfiguracionHandler reads and edits the per-user store settings. Thin
// enough to talk to the session store directly.
type ConfiguracionHandler struct{}

func NewConfiguracionHandler() *ConfiguracionHandler { return &ConfiguracionHandler{} }

// Obtener godoc
// @Summary      Configuración del comercio
// @Tags         configuracion
// @Produce      json
// @Success      200 {object} dto.ConfiguracionResponse
// @Router       /v1/configuracion [get]
func (h *ConfiguracionHandler) Obtener(c *gin.Context) {
	doc, err := middleware.StoreDe(c).Snapshot()
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, configuracionToResponse(doc.Configuracion))
}

// Actualizar godoc
// @Summary      Editar configuración
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Param        body body dto.ConfiguracionRequest true "Nombre y logo"
// @Success      200 {object} dto.ConfiguracionResponse
// @Router       /v1/configuracion [put]
func (h *ConfiguracionHandler) Actualizar(c *gin.Context) {
	var req dto.ConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var cfg model.Configuracion
	err := middleware.StoreDe(c).Aplicar(func(doc *model.Documento) error {
		doc.Configuracion.NombreComercio = strings.TrimSpace(req.NombreComercio)
		doc.Configuracion.LogoURL = strings.TrimSpace(req.LogoURL)
		cfg = doc.Configuracion
		return nil
	})
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, configuracionToResponse(cfg))
}

func configuracionToResponse(cfg model.Configuracion) dto.ConfiguracionResponse {
	resp := dto.ConfiguracionResponse{
		NombreComercio: cfg.NombreComercio,
		LogoURL:        cfg.LogoURL,
	}
	if cfg.FechaNegocioAbierta != nil {
		f := cfg.FechaNegocioAbierta.String()
		resp.FechaNegocioAbierta = &f
	}
	return resp
}
