// internal/dataset/dataset.go
// Package dataset converts generated rows into output records and handles
// persistence and summary counts.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jamesliupenn/vehicle-simulator/internal/designer"
	"github.com/jamesliupenn/vehicle-simulator/internal/taxonomy"
)

// Record is a single output element of the generated dataset file.
type Record struct {
	SampleID       int    `json:"sample_id"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	TelemetryValue string `json:"telemetry_value,omitempty"`
}

// recordSchema validates the dataset file shape before it is written.
const recordSchema = `{
    "type": "array",
    "items": {
        "type": "object",
        "required": ["sample_id", "category", "subcategory"],
        "properties": {
            "sample_id": {"type": "integer", "minimum": 0},
            "category": {"type": "string", "minLength": 1},
            "subcategory": {"type": "string", "minLength": 1},
            "telemetry_value": {"type": "string"}
        },
        "additionalProperties": false
    }
}`

// FromRows converts normalized designer rows into output records with
// sequential sample ids starting at zero. The telemetry value is carried only
// when the service returned one.
func FromRows(rows []designer.Row) []Record {
	if rows == nil {
		return nil
	}
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{
			SampleID:       i,
			Category:       row.Category,
			Subcategory:    row.Subcategory,
			TelemetryValue: row.TelemetryValue,
		}
	}
	return records
}

// Validate checks records against the dataset JSON schema and the taxonomy:
// every subcategory must belong to its record's category.
func Validate(records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records for validation: %w", err)
	}
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(recordSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("records failed validation: %s", strings.Join(details, "; "))
	}

	for _, r := range records {
		if !taxonomy.Contains(r.Category, r.Subcategory) {
			return fmt.Errorf("record %d: subcategory %q does not belong to category %q", r.SampleID, r.Subcategory, r.Category)
		}
	}
	return nil
}

// Save writes the records to path as pretty-printed JSON. A nil or empty
// record set is an expected terminal outcome: nothing is written and no error
// is returned. The returned bool reports whether a file was produced.
func Save(path string, records []Record) (bool, error) {
	if len(records) == 0 {
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return false, fmt.Errorf("error writing records to file: %w", err)
	}
	return true, nil
}

// Load reads a dataset file previously written by Save.
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []Record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding dataset file %q: %w", path, err)
	}
	return records, nil
}

// Summary counts records per category.
func Summary(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category]++
	}
	return counts
}
