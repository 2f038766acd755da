package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// BuildPDF renders a one-page summary: filters, KPI table, alerts and the
// filtered records.
func BuildPDF(report Report) ([]byte, error) {
	dashboard := report.Dashboard
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "LGB Production Dashboard")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	for _, pair := range filterRows(report) {
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s: %s", pair[0], pair[1])))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Records: %d", dashboard.RecordCount))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "KPI", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Value", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Delta", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, kpi := range dashboard.KPIs.KPIs {
		pdf.CellFormat(70, 6, tr(kpi.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, tr(kpi.Value), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, tr(kpi.Delta), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "Alerts")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, tr(dashboard.AlertLegend))
	pdf.Ln(5)
	for _, message := range dashboard.Alerts {
		pdf.Cell(0, 6, tr("- "+message))
		pdf.Ln(5)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 8)
	widths := []float64{20, 16, 14, 14, 22, 14, 18, 16, 22, 14}
	titles := []string{"Date", "Plant", "Machine", "Shift", "Process", "OEE", "Downtime", "Energy", "Throughput", "Scrap"}
	for i, title := range titles {
		pdf.CellFormat(widths[i], 6, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 8)
	for _, record := range dashboard.Records {
		cells := []string{
			record.Date, record.Plant, record.Machine, record.Shift, record.Process,
			formatFloat(record.OEE), formatFloat(record.Downtime), formatFloat(record.Energy),
			formatFloat(record.Throughput), formatFloat(record.Scrap),
		}
		for i, cell := range cells {
			align := "L"
			if i >= 5 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
