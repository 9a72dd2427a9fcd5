package infra

// pdf.go — arqueo report generation using go-pdf/fpdf.
// Each terminal close produces a one-page A5 summary with the terminal and
// operator snapshots, the session window, and the settled totals. The file is
// written to storagePath/arqueo_{id}.pdf by the async worker.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/razziiel/tcgnoa/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateArqueoPDF renders the closing report for a terminal session.
// Returns the absolute path to the generated file.
func GenerateArqueoPDF(arqueo *model.Arqueo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("arqueo_%s.pdf", arqueo.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "TCG NOA", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Arqueo de Caja", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.45, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.55, 6, value, "", 1, "R", false, 0, "")
	}

	row("Terminal:", arqueo.TerminalNombre)
	row("Operador:", arqueo.VendedorNombre)
	row("Apertura:", arqueo.FechaApertura.Format("02/01/2006 15:04"))
	row("Cierre:", arqueo.FechaCierre.Format("02/01/2006 15:04"))
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	row("Operaciones:", fmt.Sprintf("%d", arqueo.CantidadVentas))
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.45, 8, "TOTAL VENTAS:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.55, 8, "$"+arqueo.TotalVentas.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
