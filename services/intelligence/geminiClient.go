// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	model *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	// Deterministic outputs: identical prompts must yield identical
	// estimates and critique decisions.
	model.SetTemperature(0)
	return &GeminiClient{model: model}
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return collectText(resp), nil
}

// GenerateFromImage runs a vision prompt over an uploaded card or record
// image. mimeType is e.g. "image/jpeg"; Gemini wants the bare subtype.
func (g *GeminiClient) GenerateFromImage(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
	format := strings.TrimPrefix(mimeType, "image/")
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, data))
	if err != nil {
		return "", fmt.Errorf("gemini vision error: %w", err)
	}
	return collectText(resp), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}
