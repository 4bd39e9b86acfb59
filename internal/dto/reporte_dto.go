package dto

import "github.com/shopspring/decimal"

// ResumenRangoResponse aggregates an inclusive [desde, hasta] range at day
// granularity. Valido=false (range inverted or a bound missing) suppresses
// the totals instead of reporting zeroed garbage.
type ResumenRangoResponse struct {
	Valido       bool            `json:"valido"`
	Desde        string          `json:"desde,omitempty"`
	Hasta        string          `json:"hasta,omitempty"`
	Ventas       VentasPorMetodo `json:"ventas"`
	TotalCompras decimal.Decimal `json:"total_compras"`
	TotalGastos  decimal.Decimal `json:"total_gastos"`
	NetoGeneral  decimal.Decimal `json:"neto_general"`
	Dias         []ResumenDiaResponse `json:"dias,omitempty"`
}

// ─── Sesion DTOs ─────────────────────────────────────────────────────────────

type AbrirSesionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SesionResponse struct {
	Email  string `json:"email"`
	Estado string `json:"estado"`
}

// ─── Configuracion DTOs ──────────────────────────────────────────────────────

type ConfiguracionRequest struct {
	NombreComercio string `json:"nombre_comercio"`
	LogoURL        string `json:"logo_url"`
}

type ConfiguracionResponse struct {
	FechaNegocioAbierta *string `json:"fecha_negocio_abierta,omitempty"`
	NombreComercio      string  `json:"nombre_comercio"`
	LogoURL             string  `json:"logo_url"`
}
