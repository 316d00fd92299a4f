// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultDesignerURL is the default base URL of the data designer microservice.
	DefaultDesignerURL = "http://localhost:8080"
	// DefaultOutputPath is the default path for the generated dataset file.
	DefaultOutputPath = "vehicle_telemetry_data.json"
	// defaultRecordCount is the number of preview rows requested when the config omits the value.
	defaultRecordCount = 10
	// defaultRequestTimeout is the default timeout for HTTP requests. Preview
	// generation runs inference server-side and can take minutes.
	defaultRequestTimeout = 600 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	DesignerURL    string      `json:"designerUrl"`
	Model          ModelConfig `json:"model"`
	RecordCount    int         `json:"records"`
	OutputPath     string      `json:"output,omitempty"`
	TimeoutSeconds int         `json:"timeout,omitempty"`
	Debug          bool        `json:"debug"`
	NoSpinner      bool        `json:"noSpinner"`
	LogFile        string      `json:"logFile,omitempty"`
	ConfigPath     string      `json:"-"`
}

// ModelConfig describes the inference model profile used for generation.
type ModelConfig struct {
	Alias        string  `json:"alias"`
	Model        string  `json:"model"`
	Provider     string  `json:"provider"`
	SystemPrompt string  `json:"systemPrompt,omitempty"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"topP"`
	MaxTokens    int     `json:"maxTokens"`
}

// DefaultModel returns the model profile used when the config file omits one.
func DefaultModel() ModelConfig {
	return ModelConfig{
		Alias:        "nemotron-nano-v3",
		Model:        "nvidia/nemotron-3-nano-30b-a3b",
		Provider:     "nvidiabuild",
		SystemPrompt: "/no_think",
		Temperature:  0.25,
		TopP:         1.0,
		MaxTokens:    1024,
	}
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Records returns the configured preview row count, applying the default if unset.
func (c Config) Records() int {
	if c.RecordCount <= 0 {
		return defaultRecordCount
	}
	return c.RecordCount
}

// OutputFilePath returns the path the generated dataset is written to.
func (c Config) OutputFilePath() string {
	if path := strings.TrimSpace(c.OutputPath); path != "" {
		return path
	}
	return DefaultOutputPath
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "vehiclesim.log"
}

// BaseURL returns the designer service base URL with any trailing slash removed.
func (c Config) BaseURL() string {
	url := strings.TrimSpace(c.DesignerURL)
	if url == "" {
		url = DefaultDesignerURL
	}
	return strings.TrimRight(url, "/")
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if strings.TrimSpace(config.DesignerURL) == "" {
		return Config{}, errors.New("config must specify a designer service URL")
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}
	if config.Model == (ModelConfig{}) {
		config.Model = DefaultModel()
	}

	return config, nil
}
