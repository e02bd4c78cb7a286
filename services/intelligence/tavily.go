// File: services/intelligence/tavily.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// TavilyClient implements WebSearch against the Tavily search API.
type TavilyClient struct {
	APIKey string
	client *http.Client
}

func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		APIKey: apiKey,
		client: &http.Client{Timeout: 12 * time.Second},
	}
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (c *TavilyClient) Search(ctx context.Context, query string) ([]WebResult, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.APIKey,
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  5,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("tavily decode failed: %w", err)
	}

	results := make([]WebResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, WebResult{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return results, nil
}
