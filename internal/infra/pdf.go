package infra

// pdf.go — printable range-summary report using go-pdf/fpdf.
// A4 portrait: store name header, range line, per-day table (date, sales by
// method, compras, gastos, neto) and a bold totals row.

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/money"
)

// GenerarResumenPDF renders the aggregated range summary as PDF bytes.
func GenerarResumenPDF(nombreComercio string, resumen *dto.ResumenRangoResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, nombreComercio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rango := fmt.Sprintf("Resumen del %s al %s", resumen.Desde, resumen.Hasta)
	pdf.CellFormat(contentW, 6, rango, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ──────────────────────────────────────────────────────────
	colFecha := contentW * 0.16
	colMonto := contentW * 0.14

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colFecha, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Efectivo", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Débito", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Crédito", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Compras", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Gastos", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Neto", "B", 1, "R", false, 0, "")

	// ── Day rows ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, dia := range resumen.Dias {
		pdf.CellFormat(colFecha, 5, dia.Fecha, "", 0, "L", false, 0, "")
		pdf.CellFormat(colMonto, 5, money.FormatImporte(dia.Ventas.Efectivo), "", 0, "R", false, 0, "")
		pdf.CellFormat(colMonto, 5, money.FormatImporte(dia.Ventas.Debito), "", 0, "R", false, 0, "")
		pdf.CellFormat(colMonto, 5, money.FormatImporte(dia.Ventas.Credito), "", 0, "R", false, 0, "")
		pdf.CellFormat(colMonto, 5, money.FormatImporte(dia.TotalCompras), "", 0, "R", false, 0, "")
		pdf.CellFormat(colMonto, 5, money.FormatImporte(dia.TotalGastos), "", 0, "R", false, 0, "")
		pdf.CellFormat(colMonto, 5, money.FormatImporte(dia.NetoDia), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(1)

	// ── Totals row ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colFecha, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 6, money.FormatImporte(resumen.Ventas.Efectivo), "", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, money.FormatImporte(resumen.Ventas.Debito), "", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, money.FormatImporte(resumen.Ventas.Credito), "", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, money.FormatImporte(resumen.TotalCompras), "", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, money.FormatImporte(resumen.TotalGastos), "", 0, "R", false, 0, "")
	pdf.CellFormat(colMonto, 6, money.FormatImporte(resumen.NetoGeneral), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render summary: %w", err)
	}
	return buf.Bytes(), nil
}
