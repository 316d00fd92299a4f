// internal/simulator/simulator_test.go
package simulator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesliupenn/vehicle-simulator/internal/appconfig"
	"github.com/jamesliupenn/vehicle-simulator/internal/dataset"
	"github.com/jamesliupenn/vehicle-simulator/internal/designer"
	"github.com/jamesliupenn/vehicle-simulator/internal/taxonomy"
)

// stubClient implements PreviewClient for pipeline tests.
type stubClient struct {
	rows       []designer.Row
	previewErr error
	healthErr  error
	gotRecords int
	gotSchema  *designer.GenerationConfig
}

func (s *stubClient) Preview(ctx context.Context, cfg *designer.GenerationConfig, numRecords int) ([]designer.Row, error) {
	s.gotSchema = cfg
	s.gotRecords = numRecords
	if s.previewErr != nil {
		return nil, s.previewErr
	}
	return s.rows, nil
}

func (s *stubClient) Health(ctx context.Context) error { return s.healthErr }

func (s *stubClient) BaseURL() string { return "http://stub:8080" }

func testConfig(t *testing.T) *appconfig.Config {
	t.Helper()
	return &appconfig.Config{
		DesignerURL: "http://stub:8080",
		Model:       appconfig.DefaultModel(),
		RecordCount: 3,
		OutputPath:  filepath.Join(t.TempDir(), "out.json"),
		NoSpinner:   true,
	}
}

// TestBuildSchema verifies the three-column schema and its hierarchical
// dependency wiring.
func TestBuildSchema(t *testing.T) {
	t.Parallel()

	schema, err := BuildSchema(appconfig.DefaultModel())
	if err != nil {
		t.Fatalf("BuildSchema returned error: %v", err)
	}
	if len(schema.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(schema.Columns))
	}

	category := schema.Columns[0]
	if category.Name != "category" || category.SamplerType != designer.SamplerCategory {
		t.Fatalf("unexpected first column: %+v", category)
	}
	if len(category.Params.Values) != 10 {
		t.Fatalf("expected 10 category values, got %d", len(category.Params.Values))
	}

	subcategory := schema.Columns[1]
	if subcategory.Name != "subcategory" || subcategory.SamplerType != designer.SamplerSubcategory {
		t.Fatalf("unexpected second column: %+v", subcategory)
	}
	if subcategory.Params.Category != "category" {
		t.Fatalf("subcategory column must be conditioned on category, got %q", subcategory.Params.Category)
	}
	for _, name := range taxonomy.CategoryNames() {
		if len(subcategory.Params.ValueMap[name]) == 0 {
			t.Fatalf("subcategory value map missing %s", name)
		}
	}

	value := schema.Columns[2]
	if value.Name != "telemetry_value" || value.Type != designer.ColumnLLMText {
		t.Fatalf("unexpected third column: %+v", value)
	}
	if value.ModelAlias != "nemotron-nano-v3" {
		t.Fatalf("unexpected model alias: %s", value.ModelAlias)
	}
	for _, placeholder := range []string{"{{category}}", "{{subcategory}}"} {
		if !strings.Contains(value.Prompt, placeholder) {
			t.Fatalf("prompt missing %s: %s", placeholder, value.Prompt)
		}
	}
}

// TestRunWritesDataset runs the full pipeline against a stub client and
// checks the persisted file.
func TestRunWritesDataset(t *testing.T) {
	cfg := testConfig(t)
	client := &stubClient{rows: []designer.Row{
		{Category: "tire_pressure", Subcategory: "front_left_wheel", TelemetryValue: "33 psi"},
		{Category: "engine_metrics", Subcategory: "engine_rpm", TelemetryValue: "1800 rpm"},
		{Category: "tire_pressure", Subcategory: "rear_left_wheel"},
	}}

	sim := NewWithClient(cfg, client)
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if client.gotRecords != 3 {
		t.Fatalf("expected preview request for 3 records, got %d", client.gotRecords)
	}
	if client.gotSchema == nil || len(client.gotSchema.Columns) != 3 {
		t.Fatalf("schema not passed to client: %+v", client.gotSchema)
	}

	records, err := dataset.Load(cfg.OutputFilePath())
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, r := range records {
		if r.SampleID != i {
			t.Fatalf("expected sequential sample ids, got %+v", records)
		}
		if !taxonomy.Contains(r.Category, r.Subcategory) {
			t.Fatalf("record %d violates taxonomy: %+v", i, r)
		}
	}
}

// TestRunPreviewFailureDegrades confirms a failed preview call logs and
// produces no output file but does not fail the run.
func TestRunPreviewFailureDegrades(t *testing.T) {
	cfg := testConfig(t)
	client := &stubClient{previewErr: errors.New("connection refused")}

	sim := NewWithClient(cfg, client)
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("Run should degrade on preview failure, got: %v", err)
	}

	if _, err := os.Stat(cfg.OutputFilePath()); !os.IsNotExist(err) {
		t.Fatalf("expected no output file after failed preview, stat err: %v", err)
	}
}

// TestRunEmptyDatasetShortCircuits confirms a zero-row result writes nothing.
func TestRunEmptyDatasetShortCircuits(t *testing.T) {
	cfg := testConfig(t)
	client := &stubClient{rows: []designer.Row{}}

	sim := NewWithClient(cfg, client)
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, err := os.Stat(cfg.OutputFilePath()); !os.IsNotExist(err) {
		t.Fatalf("expected no output file for empty dataset, stat err: %v", err)
	}
}

// TestRunRejectsInvalidRows ensures rows violating the taxonomy fail the run
// rather than writing a bad dataset.
func TestRunRejectsInvalidRows(t *testing.T) {
	cfg := testConfig(t)
	client := &stubClient{rows: []designer.Row{
		{Category: "tire_pressure", Subcategory: "state_of_charge"},
	}}

	sim := NewWithClient(cfg, client)
	if err := sim.Run(context.Background()); err == nil {
		t.Fatal("expected error for rows violating the taxonomy")
	}
	if _, err := os.Stat(cfg.OutputFilePath()); !os.IsNotExist(err) {
		t.Fatalf("expected no output file for invalid rows, stat err: %v", err)
	}
}

// TestRunHealthFailureContinues verifies an unhealthy designer does not stop
// the pipeline.
func TestRunHealthFailureContinues(t *testing.T) {
	cfg := testConfig(t)
	client := &stubClient{
		healthErr: errors.New("dial tcp: connection refused"),
		rows: []designer.Row{
			{Category: "environmental", Subcategory: "exterior_air_temperature", TelemetryValue: "18 C"},
		},
	}

	sim := NewWithClient(cfg, client)
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	records, err := dataset.Load(cfg.OutputFilePath())
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}
