package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/infra"
	"github.com/landaetal/despensaapp/internal/model"
)

// rankingCacheTTL keeps ranking answers briefly so repeated dashboard loads
// don't hammer the remote endpoint.
const rankingCacheTTL = 5 * time.Minute

// ReporteService answers historical questions: range summaries recomputed
// from the document, the server-side product ranking, and a printable PDF.
type ReporteService struct {
	cliente estado.Cliente
	cache   *redis.Client // nil disables caching
}

func NewReporteService(cliente estado.Cliente, cache *redis.Client) *ReporteService {
	return &ReporteService{cliente: cliente, cache: cache}
}

// ResumenRango aggregates an inclusive [desde, hasta] day range. An inverted
// or incomplete range yields Valido=false instead of zeroed totals.
func (s *ReporteService) ResumenRango(st *estado.Store, desde, hasta *model.Fecha) (*dto.ResumenRangoResponse, error) {
	if desde == nil || hasta == nil || desde.Despues(*hasta) {
		return &dto.ResumenRangoResponse{Valido: false}, nil
	}
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenRangoResponse{
		Valido: true,
		Desde:  desde.String(),
		Hasta:  hasta.String(),
	}
	for f := *desde; !f.Despues(*hasta); f = f.Siguiente() {
		dia := resumenDia(doc, f)
		resp.Ventas.Efectivo = resp.Ventas.Efectivo.Add(dia.Ventas.Efectivo)
		resp.Ventas.Debito = resp.Ventas.Debito.Add(dia.Ventas.Debito)
		resp.Ventas.Credito = resp.Ventas.Credito.Add(dia.Ventas.Credito)
		resp.Ventas.Total = resp.Ventas.Total.Add(dia.Ventas.Total)
		resp.TotalCompras = resp.TotalCompras.Add(dia.TotalCompras)
		resp.TotalGastos = resp.TotalGastos.Add(dia.TotalGastos)
		resp.NetoGeneral = resp.NetoGeneral.Add(dia.NetoDia)
		if dia.CantidadVentas > 0 || !dia.TotalCompras.IsZero() || !dia.TotalGastos.IsZero() {
			resp.Dias = append(resp.Dias, dia)
		}
	}
	return resp, nil
}

// Ranking proxies the pre-aggregated product ranking, with a short-lived
// redis cache in front of the remote endpoint.
func (s *ReporteService) Ranking(ctx context.Context, email string, desde, hasta *model.Fecha) (*estado.RankingResponse, error) {
	key := rankingCacheKey(email, desde, hasta)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached estado.RankingResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	ranking, err := s.cliente.RankingVentas(ctx, email, desde, hasta)
	if err != nil {
		return nil, apierror.CargaEstado("el ranking de ventas no está disponible", err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(ranking); err == nil {
			if err := s.cache.Set(ctx, key, raw, rankingCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el ranking")
			}
		}
	}
	return ranking, nil
}

func rankingCacheKey(email string, desde, hasta *model.Fecha) string {
	d, h := "", ""
	if desde != nil {
		d = desde.String()
	}
	if hasta != nil {
		h = hasta.String()
	}
	return fmt.Sprintf("ranking:%s:%s:%s", email, d, h)
}

// ResumenPDF renders the range summary as a printable PDF, branded with the
// configured store name.
func (s *ReporteService) ResumenPDF(st *estado.Store, desde, hasta *model.Fecha) ([]byte, error) {
	resumen, err := s.ResumenRango(st, desde, hasta)
	if err != nil {
		return nil, err
	}
	if !resumen.Valido {
		return nil, apierror.Validacion("el rango de fechas es inválido")
	}
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	nombre := doc.Configuracion.NombreComercio
	if nombre == "" {
		nombre = "Despensa"
	}
	pdf, err := infra.GenerarResumenPDF(nombre, resumen)
	if err != nil {
		return nil, apierror.Interno("no se pudo generar el PDF", err)
	}
	return pdf, nil
}
