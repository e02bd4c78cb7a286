// File: services/intelligence/interface.go
package ai

import (
	"context"

	"clearcare/models"
)

// Generator is the narrow text-generation capability the pipeline calls.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// VisionGenerator extracts text from an uploaded card or record image.
type VisionGenerator interface {
	GenerateFromImage(ctx context.Context, prompt string, mimeType string, data []byte) (string, error)
}

// ProviderSearch produces candidate providers near a zip code.
// An empty result is a valid outcome, not an error.
type ProviderSearch interface {
	FindProviders(ctx context.Context, zipCode, specialty string, limit int) ([]models.Hospital, error)
}

// WebResult is one hit from a live web search.
type WebResult struct {
	Title   string
	URL     string
	Content string
}

// WebSearch queries the live web; used for insurer directory signals and
// cheaper-alternative lookups.
type WebSearch interface {
	Search(ctx context.Context, query string) ([]WebResult, error)
}

// Synthesizer converts answer text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (audio []byte, contentType string, err error)
}

// UtteranceFields is the typed breakdown of one transcribed utterance.
type UtteranceFields struct {
	InsuranceInput string `json:"insurance_input"`
	CareNeeded     string `json:"care_needed"`
	ZipCode        string `json:"zip_code"`
}
