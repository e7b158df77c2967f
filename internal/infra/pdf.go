package infra

// pdf.go — settlement receipt generation using go-pdf/fpdf. One A5 page per
// liquidación: branch header, figures table (saldo, comisión, IVA, monto
// liquidado) and destination account. Output goes to
// storagePath/liquidacion_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"credipos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateLiquidacionPDF writes the receipt for a processed settlement and
// returns the absolute path of the generated file.
func GenerateLiquidacionPDF(l *model.Liquidacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("liquidacion_%s.pdf", l.ID.String())
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "CrediPOS", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Comprobante de Liquidacion", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Settlement info ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Liquidacion "+l.ID.String(), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if l.Sucursal != nil {
		pdf.CellFormat(contentW, 5, "Sucursal: "+l.Sucursal.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, l.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Operaciones respaldadas: %d", l.CantidadOperaciones), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Figures ──────────────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	row := func(label, value string, bold bool) {
		style := ""
		size := 8.0
		if bold {
			style = "B"
			size = 10
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.CellFormat(col1, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, value, "", 1, "R", false, 0, "")
	}

	row("Monto disponible:", "$"+l.MontoDisponible.StringFixed(2), false)
	row("Comision (5%):", "-$"+l.Comision.StringFixed(2), false)
	row("IVA sobre comision (19%):", "-$"+l.IVA.StringFixed(2), false)
	row("MONTO LIQUIDADO:", "$"+l.MontoLiquidado.StringFixed(2), true)
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Destination account ──────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Banco destino: "+l.Banco, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Cuenta: "+l.NumeroCuenta, "", 1, "L", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Documento generado automaticamente.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
