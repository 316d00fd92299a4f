// internal/simulator/simulator.go
// Package simulator orchestrates the generation pipeline: schema assembly,
// the preview call against the designer service, and persistence of results.
package simulator

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/k0kubun/pp"

	"github.com/jamesliupenn/vehicle-simulator/internal/appconfig"
	"github.com/jamesliupenn/vehicle-simulator/internal/dataset"
	"github.com/jamesliupenn/vehicle-simulator/internal/designer"
	"github.com/jamesliupenn/vehicle-simulator/internal/logging"
	"github.com/jamesliupenn/vehicle-simulator/internal/taxonomy"
	"github.com/jamesliupenn/vehicle-simulator/internal/tui"
)

// telemetryPrompt is the template for the free-text value column. The
// designer interpolates the row's already-sampled category and subcategory.
const telemetryPrompt = "Generate a realistic telemetry value for {{category}} - {{subcategory}}. Return only the numeric value with units."

// previewSamples is how many records the summary prints in full.
const previewSamples = 5

var (
	stepBanner    = color.New(color.FgCyan, color.Bold).SprintfFunc()
	checkMark     = color.New(color.FgGreen).SprintFunc()
	failedResult  = color.New(color.FgRed).SprintFunc()
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// withSpinner is indirected for tests.
var withSpinner = tui.WithSpinner

// PreviewClient is the narrow designer surface the simulator depends on.
type PreviewClient interface {
	Preview(ctx context.Context, cfg *designer.GenerationConfig, numRecords int) ([]designer.Row, error)
	Health(ctx context.Context) error
	BaseURL() string
}

// Simulator runs the end-to-end generation pipeline.
type Simulator struct {
	cfg    *appconfig.Config
	client PreviewClient
}

// New constructs a Simulator over the configured designer service.
func New(cfg *appconfig.Config) *Simulator {
	return &Simulator{
		cfg:    cfg,
		client: designer.New(cfg),
	}
}

// NewWithClient constructs a Simulator with an explicit client.
func NewWithClient(cfg *appconfig.Config, client PreviewClient) *Simulator {
	return &Simulator{cfg: cfg, client: client}
}

// BuildSchema assembles the three-column generation schema from the model
// profile and the static taxonomy: a category sampler, a subcategory sampler
// conditioned on the category column, and the llm-text value column.
func BuildSchema(model appconfig.ModelConfig) (*designer.GenerationConfig, error) {
	if err := taxonomy.Validate(); err != nil {
		return nil, fmt.Errorf("taxonomy invalid: %w", err)
	}

	builder := designer.NewConfigBuilder(designer.ModelConfig{
		Alias:        model.Alias,
		Model:        model.Model,
		Provider:     model.Provider,
		SystemPrompt: model.SystemPrompt,
		InferenceParameters: designer.InferenceParameters{
			Temperature: model.Temperature,
			TopP:        model.TopP,
			MaxTokens:   model.MaxTokens,
		},
	})

	if err := builder.AddColumn(designer.Column{
		Name:        "category",
		Type:        designer.ColumnSampler,
		SamplerType: designer.SamplerCategory,
		Params:      &designer.SamplerParams{Values: taxonomy.CategoryNames()},
	}); err != nil {
		return nil, err
	}

	if err := builder.AddColumn(designer.Column{
		Name:        "subcategory",
		Type:        designer.ColumnSampler,
		SamplerType: designer.SamplerSubcategory,
		Params: &designer.SamplerParams{
			Category: "category",
			ValueMap: taxonomy.SubcategoryMap(),
		},
	}); err != nil {
		return nil, err
	}

	if err := builder.AddColumn(designer.Column{
		Name:       "telemetry_value",
		Type:       designer.ColumnLLMText,
		ModelAlias: model.Alias,
		Prompt:     telemetryPrompt,
	}); err != nil {
		return nil, err
	}

	return builder.Build()
}

// Run executes the pipeline. A failed preview call degrades to "no dataset
// produced" and is not an error; schema or persistence failures are.
func (s *Simulator) Run(ctx context.Context) error {
	fmt.Println(stepBanner("STEP 1: Connecting to designer service"))
	fmt.Printf("Designer URL: %s\n", s.client.BaseURL())
	if err := s.client.Health(ctx); err != nil {
		logging.LogEvent("designer health check failed: %v", err)
		fmt.Printf("%s designer health check failed, continuing anyway\n", failedResult("!"))
	} else {
		fmt.Printf("%s Connected\n", checkMark("✓"))
	}

	fmt.Println(stepBanner("STEP 2: Configuring model and schema"))
	model := s.cfg.Model
	if model == (appconfig.ModelConfig{}) {
		model = appconfig.DefaultModel()
	}
	fmt.Printf("Model: %s (provider: %s, alias: %s)\n", model.Model, model.Provider, model.Alias)

	schema, err := BuildSchema(model)
	if err != nil {
		return fmt.Errorf("could not build generation schema: %w", err)
	}
	if s.cfg.Debug {
		pp.Println(schema)
	}
	fmt.Printf("%s Schema built: %d categories, %d subcategories, %d columns\n",
		checkMark("✓"), len(taxonomy.Categories()), taxonomy.LeafCount(), len(schema.Columns))

	fmt.Println(stepBanner("STEP 3: Generating dataset"))
	numRecords := s.cfg.Records()
	fmt.Printf("Requesting %d preview records. This may take a few moments...\n", numRecords)

	var rows []designer.Row
	previewErr := withSpinner(s.cfg.NoSpinner, "Generating dataset...", func() error {
		var err error
		rows, err = s.client.Preview(ctx, schema, numRecords)
		return err
	})
	if previewErr != nil {
		// Expected terminal outcome, not a failure of the pipeline itself.
		logging.LogEvent("error during generation: %v", previewErr)
		fmt.Printf("%s Error during generation: %v\n", failedResult("✗"), previewErr)
		rows = nil
	}

	fmt.Println(stepBanner("STEP 4: Saving results"))
	return s.saveAndReport(rows)
}

// saveAndReport converts rows to output records, writes them, and prints the
// per-category summary. A nil dataset means nothing to save.
func (s *Simulator) saveAndReport(rows []designer.Row) error {
	if rows == nil {
		fmt.Println("No dataset to save - nothing was produced")
		return nil
	}
	if len(rows) == 0 {
		fmt.Println("Dataset is empty - no records generated")
		return nil
	}

	records := dataset.FromRows(rows)
	if err := dataset.Validate(records); err != nil {
		return fmt.Errorf("generated records are invalid: %w", err)
	}

	outputPath := s.cfg.OutputFilePath()
	written, err := dataset.Save(outputPath, records)
	if err != nil {
		return err
	}
	if !written {
		fmt.Println("No records written")
		return nil
	}
	logging.LogEvent("dataset saved to %s (%d records)", outputPath, len(records))
	fmt.Printf("%s Dataset saved to: %s\n", checkMark("✓"), outputPath)

	s.printPreview(records)
	s.printSummary(records)
	return nil
}

func (s *Simulator) printPreview(records []dataset.Record) {
	limit := previewSamples
	if len(records) < limit {
		limit = len(records)
	}
	fmt.Printf("\nPreview of generated data (first %d samples):\n", limit)
	for _, r := range records[:limit] {
		fmt.Printf("  [%d] %s / %s", r.SampleID, categoryStyle.Render(r.Category), r.Subcategory)
		if r.TelemetryValue != "" {
			fmt.Printf(" = %s", r.TelemetryValue)
		}
		fmt.Println()
	}
}

func (s *Simulator) printSummary(records []dataset.Record) {
	counts := dataset.Summary(records)

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\nTotal samples: %d\n", len(records))
	fmt.Printf("Unique categories: %d\n", len(counts))
	fmt.Println("Samples per category:")
	for _, name := range names {
		fmt.Printf("  %s %s\n",
			categoryStyle.Render(fmt.Sprintf("%-26s", name)),
			countStyle.Render(fmt.Sprintf("%d samples", counts[name])))
	}
}
