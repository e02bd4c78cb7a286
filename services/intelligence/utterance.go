// File: services/intelligence/utterance.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const utterancePromptTmpl = `Extract structured fields from this spoken request about medical care. Respond with JSON only, no prose. Use "" for anything not mentioned:
{"insurance_input": "<plan description>", "care_needed": "<procedure or symptom>", "zip_code": "<zip code digits>"}

Utterance: %s`

const cardExtractPrompt = `This image shows a health insurance card. Transcribe the plan details as a single line of text: carrier name, plan name, plan type, and member cost-sharing figures if visible. Respond with the text only, no prose.`

// ClassifyUtterance splits a transcribed request into the typed request
// fields. Fields the speaker never mentioned come back empty.
func ClassifyUtterance(ctx context.Context, gen Generator, text string) (UtteranceFields, error) {
	raw, err := gen.GenerateContent(ctx, fmt.Sprintf(utterancePromptTmpl, text))
	if err != nil {
		return UtteranceFields{}, err
	}

	var fields UtteranceFields
	if err := json.Unmarshal([]byte(StripJSONFences(raw)), &fields); err != nil {
		return UtteranceFields{}, fmt.Errorf("utterance reply unparseable: %w", err)
	}
	return fields, nil
}

// ExtractPlanText reads an insurance card image into plan text.
func ExtractPlanText(ctx context.Context, vision VisionGenerator, mimeType string, data []byte) (string, error) {
	text, err := vision.GenerateFromImage(ctx, cardExtractPrompt, mimeType, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// StripJSONFences removes a markdown code fence around a model reply.
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
