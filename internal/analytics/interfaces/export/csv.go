package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

var recordHeader = []string{
	"date", "plant", "machine", "shift", "process",
	"oee", "downtime", "energy", "throughput", "scrap",
}

// BuildCSV renders the filtered records of the report, one row per record.
func BuildCSV(report Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(recordHeader); err != nil {
		return nil, err
	}
	for _, record := range report.Dashboard.Records {
		row := []string{
			record.Date,
			record.Plant,
			record.Machine,
			record.Shift,
			record.Process,
			formatFloat(record.OEE),
			formatFloat(record.Downtime),
			formatFloat(record.Energy),
			formatFloat(record.Throughput),
			formatFloat(record.Scrap),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
