// internal/designer/types.go
package designer

// SamplerType identifies how a sampler column draws its value.
type SamplerType string

const (
	// SamplerCategory draws uniformly from a flat value list.
	SamplerCategory SamplerType = "category"
	// SamplerSubcategory draws from the value list keyed by another column's
	// already-drawn value.
	SamplerSubcategory SamplerType = "subcategory"
)

// Column types accepted by the designer service.
const (
	ColumnSampler = "sampler"
	ColumnLLMText = "llm-text"
)

// InferenceParameters control the decoding behavior of the generation model.
type InferenceParameters struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

// ModelConfig registers one inference model profile with the designer.
type ModelConfig struct {
	Alias               string              `json:"alias"`
	Model               string              `json:"model"`
	Provider            string              `json:"provider"`
	SystemPrompt        string              `json:"system_prompt,omitempty"`
	InferenceParameters InferenceParameters `json:"inference_parameters"`
}

// SamplerParams parameterizes a sampler column. Values is used by category
// samplers; Category and ValueMap by subcategory samplers, where Category
// names the parent column whose drawn value selects the list in ValueMap.
type SamplerParams struct {
	Values   []string            `json:"values,omitempty"`
	Category string              `json:"category,omitempty"`
	ValueMap map[string][]string `json:"value_map,omitempty"`
}

// Column describes one generated field in the schema sent to the designer.
type Column struct {
	Name        string         `json:"name"`
	Type        string         `json:"column_type"`
	SamplerType SamplerType    `json:"sampler_type,omitempty"`
	Params      *SamplerParams `json:"params,omitempty"`
	ModelAlias  string         `json:"model_alias,omitempty"`
	Prompt      string         `json:"prompt,omitempty"`
}

// GenerationConfig is the complete schema submitted with a preview request.
type GenerationConfig struct {
	Models  []ModelConfig `json:"model_configs"`
	Columns []Column      `json:"columns"`
}

// Row is the fixed tabular shape every preview response normalizes to,
// regardless of which container the service wrapped it in.
type Row struct {
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	TelemetryValue string `json:"telemetry_value,omitempty"`
}
