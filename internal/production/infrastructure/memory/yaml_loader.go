package memory

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	production "lgb-dashboard/internal/production/domain"
)

// ErrNoRecords is returned when a seed document holds no records.
var ErrNoRecords = errors.New("memory store: seed has no records")

type seedDocument struct {
	Records []production.Record `yaml:"records"`
}

// DecodeRecords reads a YAML seed document of the form `records: [...]`.
// Every record is validated.
func DecodeRecords(r io.Reader) ([]production.Record, error) {
	var doc seedDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRecords
		}
		return nil, fmt.Errorf("memory store: decode seed: %w", err)
	}
	if len(doc.Records) == 0 {
		return nil, ErrNoRecords
	}
	for i, record := range doc.Records {
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("memory store: seed record %d: %w", i, err)
		}
	}
	return doc.Records, nil
}

// LoadRecordsFile reads a YAML seed file.
func LoadRecordsFile(path string) ([]production.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("memory store: open seed: %w", err)
	}
	defer file.Close()
	return DecodeRecords(file)
}
