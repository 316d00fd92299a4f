// internal/designer/client.go
package designer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jamesliupenn/vehicle-simulator/internal/appconfig"
	"github.com/jamesliupenn/vehicle-simulator/internal/logging"
)

// Client talks to a data designer microservice over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	debug   bool
}

// New constructs a Client bound to the configured designer base URL.
func New(cfg *appconfig.Config) *Client {
	timeout := cfg.RequestTimeout()
	return &Client{
		baseURL: cfg.BaseURL(),
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
		debug:   cfg.Debug,
	}
}

// BaseURL returns the service address the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health probes the designer's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("designer: /health returned %s", resp.Status)
	}
	return nil
}

// previewRequest is the payload for a preview generation call.
type previewRequest struct {
	Config     *GenerationConfig `json:"config"`
	NumRecords int               `json:"num_records"`
}

// previewEnvelope covers the containers the service is known to wrap results
// in. Exactly one of the fields is populated per response.
type previewEnvelope struct {
	Dataset []Row `json:"dataset,omitempty"`
	Data    []Row `json:"data,omitempty"`
	Records []Row `json:"records,omitempty"`
}

// Preview asks the designer for numRecords rows conforming to the schema and
// normalizes the response into the fixed Row shape. Normalization happens
// here and only here: callers never inspect the wire container.
func (c *Client) Preview(ctx context.Context, cfg *GenerationConfig, numRecords int) ([]Row, error) {
	if cfg == nil {
		return nil, fmt.Errorf("designer: preview requires a schema")
	}
	if numRecords <= 0 {
		return nil, fmt.Errorf("designer: preview requires a positive record count")
	}

	payload := previewRequest{Config: cfg, NumRecords: numRecords}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	model := ""
	if len(cfg.Models) > 0 {
		model = cfg.Models[0].Model
	}
	logging.LogRequest("SIM->DESIGNER", c.baseURL, model, body)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/v1/data-designer/preview"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if c.debug {
		logging.LogRequest("DESIGNER->SIM", c.baseURL, model, respBody)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("designer: preview returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return normalizeRows(respBody)
}

// normalizeRows decodes whichever result container the service returned into
// the fixed Row shape: a keyed envelope (dataset, data, or records) or a bare
// JSON array.
func normalizeRows(body []byte) ([]Row, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("designer: empty preview response")
	}

	if trimmed[0] == '[' {
		var rows []Row
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("designer: could not decode preview rows: %w", err)
		}
		return rows, nil
	}

	var envelope previewEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("designer: could not decode preview response: %w", err)
	}
	switch {
	case envelope.Dataset != nil:
		return envelope.Dataset, nil
	case envelope.Data != nil:
		return envelope.Data, nil
	case envelope.Records != nil:
		return envelope.Records, nil
	}
	return nil, fmt.Errorf("designer: preview response contains no recognizable result container")
}
