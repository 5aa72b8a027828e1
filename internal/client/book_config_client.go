package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/models"
)

// BookConfigClient reads order data owned by the shop backend: the original
// story content and the customer's uploaded photos. This service never
// mutates them.
type BookConfigClient interface {
	GetStoryContent(ctx context.Context, bookConfigID uuid.UUID) (*models.StoryContent, error)
	GetUploadedImageKeys(ctx context.Context, bookConfigID uuid.UUID) ([]string, error)
}

// Compile-time check to ensure bookConfigHTTPClient implements the interface
var _ BookConfigClient = (*bookConfigHTTPClient)(nil)

type bookConfigHTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBookConfigClient creates an HTTP client for the book-configuration service.
func NewBookConfigClient(baseURL string, timeout time.Duration, logger *zap.Logger) (BookConfigClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL for book config service: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bookConfigHTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("BookConfigClient"),
	}, nil
}

type bookConfigContentResponse struct {
	Content models.StoryContent `json:"content"`
}

func (c *bookConfigHTTPClient) GetStoryContent(ctx context.Context, bookConfigID uuid.UUID) (*models.StoryContent, error) {
	var resp bookConfigContentResponse
	endpoint := fmt.Sprintf("%s/internal/book-configs/%s/content", c.baseURL, bookConfigID)
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp.Content, nil
}

type bookConfigImagesResponse struct {
	ImageKeys []string `json:"imageKeys"`
}

func (c *bookConfigHTTPClient) GetUploadedImageKeys(ctx context.Context, bookConfigID uuid.UUID) ([]string, error) {
	var resp bookConfigImagesResponse
	endpoint := fmt.Sprintf("%s/internal/book-configs/%s/images", c.baseURL, bookConfigID)
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.ImageKeys, nil
}

func (c *bookConfigHTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Book config request failed", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("book config service request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: book configuration", models.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Book config service returned non-OK status",
			zap.String("url", endpoint),
			zap.Int("status_code", resp.StatusCode))
		return fmt.Errorf("book config service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	if readErr != nil {
		return fmt.Errorf("failed to read book config response: %w", readErr)
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode book config response: %w", err)
	}
	return nil
}
