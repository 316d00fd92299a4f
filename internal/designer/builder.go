// internal/designer/builder.go
// Package designer builds generation schemas for, and talks to, the data
// designer microservice.
package designer

import (
	"fmt"
	"strings"
)

// ConfigBuilder assembles a GenerationConfig column by column, validating
// sampling dependencies as columns are added.
type ConfigBuilder struct {
	models  []ModelConfig
	columns []Column
}

// NewConfigBuilder constructs a builder over the given model profiles.
func NewConfigBuilder(models ...ModelConfig) *ConfigBuilder {
	return &ConfigBuilder{models: models}
}

// AddColumn appends a column to the schema after validating it against the
// columns registered so far. Subcategory samplers must name an existing
// category sampler as their parent, and their value map must cover exactly
// the parent's value list.
func (b *ConfigBuilder) AddColumn(col Column) error {
	name := strings.TrimSpace(col.Name)
	if name == "" {
		return fmt.Errorf("column must have a name")
	}
	for _, existing := range b.columns {
		if existing.Name == name {
			return fmt.Errorf("duplicate column %q", name)
		}
	}

	switch col.Type {
	case ColumnSampler:
		if err := b.validateSampler(col); err != nil {
			return err
		}
	case ColumnLLMText:
		if err := b.validateLLMText(col); err != nil {
			return err
		}
	default:
		return fmt.Errorf("column %q: unknown column type %q", name, col.Type)
	}

	b.columns = append(b.columns, col)
	return nil
}

func (b *ConfigBuilder) validateSampler(col Column) error {
	if col.Params == nil {
		return fmt.Errorf("column %q: sampler columns require params", col.Name)
	}
	switch col.SamplerType {
	case SamplerCategory:
		if len(col.Params.Values) == 0 {
			return fmt.Errorf("column %q: category sampler requires a value list", col.Name)
		}
		return nil
	case SamplerSubcategory:
		parent := strings.TrimSpace(col.Params.Category)
		if parent == "" {
			return fmt.Errorf("column %q: subcategory sampler requires a parent column", col.Name)
		}
		parentCol, ok := b.findColumn(parent)
		if !ok {
			return fmt.Errorf("column %q: parent column %q is not registered", col.Name, parent)
		}
		if parentCol.SamplerType != SamplerCategory {
			return fmt.Errorf("column %q: parent column %q is not a category sampler", col.Name, parent)
		}
		if len(col.Params.ValueMap) == 0 {
			return fmt.Errorf("column %q: subcategory sampler requires a value map", col.Name)
		}
		// The map must cover exactly the parent's values so every drawn
		// category has a defined subcategory distribution.
		for _, v := range parentCol.Params.Values {
			subs, ok := col.Params.ValueMap[v]
			if !ok {
				return fmt.Errorf("column %q: value map is missing parent value %q", col.Name, v)
			}
			if len(subs) == 0 {
				return fmt.Errorf("column %q: value map entry %q is empty", col.Name, v)
			}
		}
		if len(col.Params.ValueMap) != len(parentCol.Params.Values) {
			return fmt.Errorf("column %q: value map references values not sampled by %q", col.Name, parent)
		}
		return nil
	default:
		return fmt.Errorf("column %q: unknown sampler type %q", col.Name, col.SamplerType)
	}
}

func (b *ConfigBuilder) validateLLMText(col Column) error {
	if strings.TrimSpace(col.Prompt) == "" {
		return fmt.Errorf("column %q: llm-text columns require a prompt", col.Name)
	}
	alias := strings.TrimSpace(col.ModelAlias)
	if alias == "" {
		return fmt.Errorf("column %q: llm-text columns require a model alias", col.Name)
	}
	for _, m := range b.models {
		if m.Alias == alias {
			return nil
		}
	}
	return fmt.Errorf("column %q: model alias %q is not configured", col.Name, alias)
}

func (b *ConfigBuilder) findColumn(name string) (Column, bool) {
	for _, col := range b.columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Columns returns the registered columns in order.
func (b *ConfigBuilder) Columns() []Column {
	return b.columns
}

// Build finalizes the schema. At least one column must have been registered.
func (b *ConfigBuilder) Build() (*GenerationConfig, error) {
	if len(b.models) == 0 {
		return nil, fmt.Errorf("schema requires at least one model profile")
	}
	if len(b.columns) == 0 {
		return nil, fmt.Errorf("schema requires at least one column")
	}
	return &GenerationConfig{
		Models:  b.models,
		Columns: b.columns,
	}, nil
}
