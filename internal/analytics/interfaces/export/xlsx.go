package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"lgb-dashboard/internal/analytics/domain/statistic"
)

const (
	summarySheet  = "summary"
	kpiSheet      = "kpis"
	recordsSheet  = "records"
	forecastSheet = "forecast"
	groupingSheet = "groupings"
)

// BuildXLSX renders the report as a workbook with summary, KPI, record,
// forecast and grouping sheets.
func BuildXLSX(report Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, sheet := range []string{kpiSheet, recordsSheet, forecastSheet, groupingSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	dashboard := report.Dashboard
	_ = f.SetCellValue(summarySheet, "A1", "LGB Production Dashboard")
	row := 3
	for _, pair := range filterRows(report) {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), pair[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), pair[1])
		row++
	}
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Records")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), dashboard.RecordCount)
	row += 2
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Alerts")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), dashboard.AlertLegend)
	row++
	for _, message := range dashboard.Alerts {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), message)
		row++
	}

	_ = f.SetCellValue(kpiSheet, "A1", "KPI")
	_ = f.SetCellValue(kpiSheet, "B1", "Value")
	_ = f.SetCellValue(kpiSheet, "C1", "Delta")
	_ = f.SetCellValue(kpiSheet, "D1", "Trend")
	for i, kpi := range dashboard.KPIs.KPIs {
		row := i + 2
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("A%d", row), kpi.Label)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("B%d", row), kpi.Value)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("C%d", row), kpi.Delta)
		_ = f.SetCellValue(kpiSheet, fmt.Sprintf("D%d", row), string(kpi.Trend))
	}

	for i, title := range recordHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(recordsSheet, cell, title)
	}
	for i, record := range dashboard.Records {
		row := i + 2
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("A%d", row), record.Date)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("B%d", row), record.Plant)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("C%d", row), record.Machine)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("D%d", row), record.Shift)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("E%d", row), record.Process)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("F%d", row), record.OEE)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("G%d", row), record.Downtime)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("H%d", row), record.Energy)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("I%d", row), record.Throughput)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("J%d", row), record.Scrap)
	}

	writeForecastSheet(f, dashboard.Chart)
	writeGroupingSheet(f, dashboard.Groupings)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeForecastSheet(f *excelize.File, chart statistic.ForecastSeries) {
	columns := []struct {
		title  string
		values []float64
	}{
		{"OEE", chart.OEE},
		{"Downtime", chart.Downtime},
		{"Energy", chart.Energy},
		{"Throughput", chart.Throughput},
		{"Scrap", chart.Scrap},
	}
	_ = f.SetCellValue(forecastSheet, "A1", "Label")
	for i, label := range chart.Labels {
		_ = f.SetCellValue(forecastSheet, fmt.Sprintf("A%d", i+2), label)
	}
	for c, column := range columns {
		header, _ := excelize.CoordinatesToCellName(c+2, 1)
		_ = f.SetCellValue(forecastSheet, header, column.title)
		for i, value := range column.values {
			cell, _ := excelize.CoordinatesToCellName(c+2, i+2)
			_ = f.SetCellValue(forecastSheet, cell, value)
		}
	}
}

func writeGroupingSheet(f *excelize.File, groupings statistic.Groupings) {
	sections := []struct {
		title string
		bars  []statistic.Bar
	}{
		{"Machine Utilization (%)", groupings.Utilization},
		{"Top Downtime (min)", groupings.DowntimeTop},
		{"Scrap by Process (%)", groupings.ScrapByProcess},
		{"Work Orders (units)", groupings.WorkOrders},
		{"Heat Treatment Cycles (min)", groupings.HeatTreatment},
	}
	row := 1
	for _, section := range sections {
		_ = f.SetCellValue(groupingSheet, fmt.Sprintf("A%d", row), section.title)
		row++
		for _, bar := range section.bars {
			_ = f.SetCellValue(groupingSheet, fmt.Sprintf("A%d", row), bar.Label)
			_ = f.SetCellValue(groupingSheet, fmt.Sprintf("B%d", row), bar.Value)
			row++
		}
		row++
	}
}
