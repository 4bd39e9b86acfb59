package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landaetal/despensaapp/internal/middleware"
	"github.com/landaetal/despensaapp/internal/service"
)

type ReportesHandler struct{ svc *service.ReporteService }

func NewReportesHandler(svc *service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ResumenRango godoc
// @Summary      Resumen por rango de fechas
// @Description  Agrega un rango inclusivo a granularidad diaria; un rango inválido responde valido=false.
// @Tags         reportes
// @Produce      json
// @Param        desde query string false "Fecha YYYY-MM-DD"
// @Param        hasta query string false "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.ResumenRangoResponse
// @Router       /v1/reportes/resumen [get]
func (h *ReportesHandler) ResumenRango(c *gin.Context) {
	desde, ok := fechaQueryOpcional(c, "desde")
	if !ok {
		return
	}
	hasta, ok := fechaQueryOpcional(c, "hasta")
	if !ok {
		return
	}
	resp, err := h.svc.ResumenRango(middleware.StoreDe(c), desde, hasta)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ranking godoc
// @Summary      Ranking de productos vendidos
// @Description  Consulta el ranking preagregado del endpoint remoto, con caché breve.
// @Tags         reportes
// @Produce      json
// @Param        desde query string false "Fecha YYYY-MM-DD"
// @Param        hasta query string false "Fecha YYYY-MM-DD"
// @Success      200 {object} estado.RankingResponse
// @Failure      503 {object} apierror.APIError
// @Router       /v1/reportes/ranking [get]
func (h *ReportesHandler) Ranking(c *gin.Context) {
	desde, ok := fechaQueryOpcional(c, "desde")
	if !ok {
		return
	}
	hasta, ok := fechaQueryOpcional(c, "hasta")
	if !ok {
		return
	}
	st := middleware.StoreDe(c)
	resp, err := h.svc.Ranking(c.Request.Context(), st.Email(), desde, hasta)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumenPDF godoc
// @Summary      Resumen por rango en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Param        desde query string true "Fecha YYYY-MM-DD"
// @Param        hasta query string true "Fecha YYYY-MM-DD"
// @Success      200
// @Failure      422 {object} apierror.APIError
// @Router       /v1/reportes/resumen.pdf [get]
func (h *ReportesHandler) ResumenPDF(c *gin.Context) {
	desde, ok := fechaQueryOpcional(c, "desde")
	if !ok {
		return
	}
	hasta, ok := fechaQueryOpcional(c, "hasta")
	if !ok {
		return
	}
	pdf, err := h.svc.ResumenPDF(middleware.StoreDe(c), desde, hasta)
	if err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resumen.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
