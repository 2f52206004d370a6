package services

import (
	"bytes"
	"fmt"
	"os"

	"ak_dashboard/config"
	"ak_dashboard/models"

	"github.com/go-pdf/fpdf"
)

// buildPDF рендерит документ в PDF. Кириллица требует UTF-8 шрифта,
// путь к нему задаётся конфигурацией (PDF_FONT_PATH).
func buildPDF(payload models.DocumentPayload) ([]byte, error) {
	if _, err := os.Stat(config.PDFFontPath); err != nil {
		return nil, fmt.Errorf("шрифт для PDF не найден: %s", config.PDFFontPath)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font("report", "", config.PDFFontPath)
	pdf.SetFont("report", "", 11)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	for _, line := range documentLines(payload) {
		switch {
		case line.Heading && line.Center:
			pdf.SetFont("report", "", 16)
			pdf.MultiCell(contentWidth, 8, line.Text, "", "C", false)
			pdf.Ln(4)
		case line.Heading:
			pdf.Ln(4)
			pdf.SetFont("report", "", 13)
			pdf.MultiCell(contentWidth, 7, line.Text, "", "L", false)
		case line.Center:
			pdf.Ln(6)
			pdf.SetFont("report", "", 9)
			pdf.MultiCell(contentWidth, 5, line.Text, "", "C", false)
		default:
			pdf.SetFont("report", "", 11)
			pdf.MultiCell(contentWidth, 6, line.Text, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
