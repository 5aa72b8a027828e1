package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bookforge/internal/config"
)

// ErrImageGenerationFailed wraps failures of the image-generation service.
var ErrImageGenerationFailed = errors.New("image generation failed")

// ImageClient renders an image from a prompt, optionally conditioned on
// reference images. Used by stages 1, 4, 5 and 6.
type ImageClient interface {
	Generate(ctx context.Context, prompt string, referenceImages [][]byte) ([]byte, error)
}

// Compile-time check to ensure renderAPIClient implements the interface
var _ ImageClient = (*renderAPIClient)(nil)

// renderAPIClient talks to the image-generation HTTP API.
type renderAPIClient struct {
	baseURL     string
	httpClient  *http.Client
	styleSuffix string
	logger      *zap.Logger
}

// NewRenderAPIClient creates an ImageClient from configuration.
func NewRenderAPIClient(cfg *config.Config, logger *zap.Logger) ImageClient {
	return &renderAPIClient{
		baseURL:     cfg.ImageGenURL,
		httpClient:  &http.Client{Timeout: cfg.ImageGenTimeout},
		styleSuffix: cfg.ImageGenStyleSuffix,
		logger:      logger.Named("RenderAPIClient"),
	}
}

// renderAPIRequest is the request body for the /generate endpoint.
// Reference images are inlined base64; the API uses them as conditioning
// input for character consistency.
type renderAPIRequest struct {
	Prompt          string   `json:"prompt"`
	ReferenceImages []string `json:"reference_images,omitempty"`
}

func (c *renderAPIClient) Generate(ctx context.Context, prompt string, referenceImages [][]byte) ([]byte, error) {
	log := c.logger.With(zap.Int("reference_count", len(referenceImages)))

	fullPrompt := prompt + c.styleSuffix

	encoded := make([]string, 0, len(referenceImages))
	for _, img := range referenceImages {
		encoded = append(encoded, base64.StdEncoding.EncodeToString(img))
	}
	reqBodyBytes, err := json.Marshal(renderAPIRequest{
		Prompt:          fullPrompt,
		ReferenceImages: encoded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	endpointURL := c.baseURL + "/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(reqBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/*")

	log.Debug("Sending request to image API", zap.String("url", endpointURL))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		aiRequestsTotal.WithLabelValues("image", "error").Inc()
		log.Error("Image API request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: http request failed: %v", ErrImageGenerationFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		aiRequestsTotal.WithLabelValues("image", "error").Inc()
		log.Error("Image API returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", bodyBytes))
		// The upstream message is surfaced verbatim; the operator re-runs manually.
		return nil, fmt.Errorf("%w: API returned status %d: %s", ErrImageGenerationFailed, resp.StatusCode, string(bodyBytes))
	}
	if readErr != nil {
		aiRequestsTotal.WithLabelValues("image", "error").Inc()
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrImageGenerationFailed, readErr)
	}
	if len(bodyBytes) == 0 {
		aiRequestsTotal.WithLabelValues("image", "empty").Inc()
		return nil, fmt.Errorf("%w: API returned empty data", ErrImageGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues("image", "success").Inc()
	aiRequestDuration.WithLabelValues("image").Observe(duration.Seconds())
	log.Info("Image generated", zap.Int("size_bytes", len(bodyBytes)), zap.Duration("duration", duration))
	return bodyBytes, nil
}
