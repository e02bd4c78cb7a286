// File: services/estimate/severity.go
package estimate

import (
	"context"
	"encoding/json"
	"strings"

	ai "clearcare/services/intelligence"
	"clearcare/utils"

	"go.uber.org/zap"

	"clearcare/models"
)

type geminiSeverityAssessor struct {
	gen ai.Generator
}

// NewSeverityAssessor builds the generation-backed urgency classifier.
func NewSeverityAssessor(gen ai.Generator) SeverityAssessor {
	return &geminiSeverityAssessor{gen: gen}
}

// Assess is fail-open: any capability or parse failure yields routine
// urgency with no reason, and the error is returned only for logging.
func (a *geminiSeverityAssessor) Assess(ctx context.Context, careNeeded, medicalHistory string) (models.SeverityAssessment, error) {
	fallback := models.SeverityAssessment{Urgency: models.UrgencyRoutine}

	raw, err := a.gen.GenerateContent(ctx, severityPrompt(careNeeded, medicalHistory))
	if err != nil {
		utils.GetLogger().Warn("Severity assessment unavailable", zap.Error(err))
		return fallback, &CapabilityError{Capability: "severity", Err: err}
	}

	var parsed struct {
		Urgency string `json:"urgency"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(ai.StripJSONFences(raw)), &parsed); err != nil {
		utils.GetLogger().Warn("Severity reply unparseable", zap.Error(err))
		return fallback, &CapabilityError{Capability: "severity", Err: err}
	}

	assessment := models.SeverityAssessment{Urgency: parseUrgency(parsed.Urgency)}
	if reason := strings.TrimSpace(parsed.Reason); reason != "" {
		assessment.Reason = &reason
	}
	return assessment, nil
}

func parseUrgency(s string) models.Urgency {
	switch models.Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case models.UrgencySoon:
		return models.UrgencySoon
	case models.UrgencyUrgent:
		return models.UrgencyUrgent
	default:
		return models.UrgencyRoutine
	}
}
