package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	imagenAPIBaseURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultImagenModel = "imagen-3.0-generate-001"
)

// ImagenClient implements Generator against the Google Imagen predict
// endpoint via direct HTTP. It does not retry and sets no timeout of its own.
type ImagenClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// ImagenOption configures an ImagenClient.
type ImagenOption func(*ImagenClient)

// WithBaseURL points the client at a different models endpoint.
func WithBaseURL(base string) ImagenOption {
	return func(c *ImagenClient) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ImagenOption {
	return func(c *ImagenClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewImagenClient creates a new Imagen client. An empty model selects
// DefaultImagenModel.
func NewImagenClient(apiKey, model string, opts ...ImagenOption) *ImagenClient {
	if model == "" {
		model = DefaultImagenModel
	}
	c := &ImagenClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: imagenAPIBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ImagenClient) Name() string {
	return "google"
}

func (c *ImagenClient) Model() string {
	return c.model
}

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int `json:"sampleCount"`
}

type imagenResponse struct {
	Predictions []imagenPrediction `json:"predictions"`
	Error       *imagenError       `json:"error,omitempty"`
}

type imagenPrediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MIMEType           string `json:"mimeType,omitempty"`
}

type imagenError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (c *ImagenClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(imagenRequest{
		Instances:  []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{SampleCount: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal imagen request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:predict?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("imagen request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read imagen response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		// The error body is optional; fall back to the status line.
		var apiResp imagenResponse
		_ = json.Unmarshal(respBody, &apiResp)
		msg := fmt.Sprintf("API Error: %d %s", httpResp.StatusCode, http.StatusText(httpResp.StatusCode))
		if apiResp.Error != nil && apiResp.Error.Message != "" {
			msg = apiResp.Error.Message
		}
		return "", &GenerationError{StatusCode: httpResp.StatusCode, Message: msg}
	}

	var apiResp imagenResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal imagen response: %w", err)
	}

	if len(apiResp.Predictions) == 0 {
		return "", &GenerationError{StatusCode: httpResp.StatusCode, Message: "No image data received"}
	}
	return apiResp.Predictions[0].BytesBase64Encoded, nil
}
