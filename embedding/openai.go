package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// OpenAIGenerator calls an OpenAI-compatible embeddings endpoint. It fails
// with ErrServiceUnavailable on transport errors and non-2xx responses, and
// with ErrDimensionMismatch when the returned vector's length is wrong.
type OpenAIGenerator struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

func NewOpenAIGenerator(baseURL, apiKey, model string, dimension int, timeout time.Duration) *OpenAIGenerator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &OpenAIGenerator{
		baseURL:   baseURL,
		apiKey:    apiKey,
		model:     model,
		dimension: dimension,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *OpenAIGenerator) Dimension() int {
	return g.dimension
}

type embeddingsRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (g *OpenAIGenerator) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(embeddingsRequest{
		Model: g.model,
		Input: text,
	})

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var result embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrServiceUnavailable)
	}

	embedding := result.Data[0].Embedding
	if len(embedding) != g.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrDimensionMismatch, len(embedding), g.dimension)
	}

	return embedding, nil
}
