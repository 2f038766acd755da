package export

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lgb-dashboard/internal/analytics/application"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat resolves a format from its file extension.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(value, "."))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", ErrUnknownFormat
	}
}

// ContentType is the media type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Report is one export of a dashboard snapshot.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Dashboard   application.Dashboard
}

// NewReport stamps a dashboard with a fresh report identifier.
func NewReport(dashboard application.Dashboard, generatedAt time.Time) Report {
	return Report{
		ID:          uuid.NewString(),
		GeneratedAt: generatedAt.UTC(),
		Dashboard:   dashboard,
	}
}

// Filename is the attachment name of the report in the given format.
func (r Report) Filename(format Format) string {
	name := "lgb-dashboard"
	if r.Dashboard.Criteria.Start != "" || r.Dashboard.Criteria.End != "" {
		name += "_" + r.Dashboard.Criteria.Start + "_" + r.Dashboard.Criteria.End
	}
	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if id != "" {
		name += "_" + id
	}
	return name + "." + string(format)
}

// Build renders the report in the given format.
func Build(report Report, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return BuildCSV(report)
	case FormatXLSX:
		return BuildXLSX(report)
	case FormatPDF:
		return BuildPDF(report)
	default:
		return nil, ErrUnknownFormat
	}
}

func filterRows(report Report) [][2]string {
	criteria := report.Dashboard.Criteria
	return [][2]string{
		{"Report ID", report.ID},
		{"Generated", report.GeneratedAt.Format(time.RFC3339)},
		{"Plant", criteria.Plant},
		{"Machine", criteria.Machine},
		{"Shift", criteria.Shift},
		{"Process", criteria.Process},
		{"Start", criteria.Start},
		{"End", criteria.End},
		{"Last Updated", report.Dashboard.LastUpdated},
	}
}
