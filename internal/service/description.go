package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-service/internal/models"
)

// HTTPDescriptionGenerator calls an external text-generation endpoint with
// the product name and category and returns the generated description.
type HTTPDescriptionGenerator struct {
	endpoint string
	client   *http.Client
}

func NewHTTPDescriptionGenerator(endpoint string) *HTTPDescriptionGenerator {
	return &HTTPDescriptionGenerator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *HTTPDescriptionGenerator) Generate(ctx context.Context, name string, category models.Category) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"name":     name,
		"category": string(category),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("description request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("description endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode description response: %w", err)
	}
	return body.Description, nil
}
