// File: services/estimate/answer.go
package estimate

import (
	"context"
	"encoding/json"
	"fmt"

	ai "clearcare/services/intelligence"

	"clearcare/models"
)

type geminiAnswerGenerator struct {
	gen ai.Generator
}

// NewAnswerGenerator builds the generation-backed draft writer.
func NewAnswerGenerator(gen ai.Generator) AnswerGenerator {
	return &geminiAnswerGenerator{gen: gen}
}

// Generate drafts the headline, spoken summary and next step from the
// facts. It has no side effects; the same facts and feedback always issue
// the same prompt.
func (g *geminiAnswerGenerator) Generate(ctx context.Context, facts Facts, feedback string) (models.Draft, error) {
	raw, err := g.gen.GenerateContent(ctx, answerPrompt(facts, feedback))
	if err != nil {
		return models.Draft{}, &CapabilityError{Capability: "answer-generation", Err: err}
	}

	var parsed struct {
		Headline      string `json:"headline"`
		SpokenSummary string `json:"spoken_summary"`
		NextStep      string `json:"next_step"`
	}
	if err := json.Unmarshal([]byte(ai.StripJSONFences(raw)), &parsed); err != nil {
		return models.Draft{}, &CapabilityError{Capability: "answer-generation", Err: err}
	}

	draft := models.Draft{
		Headline:      parsed.Headline,
		SpokenSummary: parsed.SpokenSummary,
		NextStep:      parsed.NextStep,
	}
	attachCosts(&draft, facts)
	return draft, nil
}

// fallbackDraft is the templated answer used when generation is down.
// Plain but correct beats eloquent but absent.
func fallbackDraft(facts Facts) models.Draft {
	var draft models.Draft
	attachCosts(&draft, facts)

	switch {
	case len(facts.Hospitals) == 0:
		draft.Headline = fmt.Sprintf("No providers found near %s for %s", facts.ZipCode, facts.CareNeeded)
		draft.SpokenSummary = fmt.Sprintf("I could not find providers for %s near zip code %s. Try a nearby zip code or a broader description of the care you need.", facts.CareNeeded, facts.ZipCode)
		draft.NextStep = "Search again with a different zip code."
	case draft.InNetworkCost != nil:
		draft.Headline = fmt.Sprintf("Estimated out-of-pocket for %s: about $%.0f", facts.CareNeeded, *draft.InNetworkCost)
		draft.SpokenSummary = fmt.Sprintf("Based on your plan, %s should cost you around $%.0f at %s.", facts.CareNeeded, *draft.InNetworkCost, facts.Hospitals[0].Name)
		draft.NextStep = fmt.Sprintf("Call %s to confirm pricing and book.", facts.Hospitals[0].Name)
	default:
		draft.Headline = fmt.Sprintf("Found %d providers for %s, pricing unconfirmed", len(facts.Hospitals), facts.CareNeeded)
		draft.SpokenSummary = fmt.Sprintf("I found %d providers near %s but could not confirm costs. Call ahead to ask for a self-pay or plan-specific estimate.", len(facts.Hospitals), facts.ZipCode)
		draft.NextStep = fmt.Sprintf("Call %s and ask for a cost estimate.", facts.Hospitals[0].Name)
	}
	return draft
}

// attachCosts fills the draft's cost figures from the cheapest resolved
// candidate per network tier plus the alternative, when present.
func attachCosts(draft *models.Draft, facts Facts) {
	for _, h := range facts.Hospitals {
		if h.EstimatedCost == nil {
			continue
		}
		switch h.NetworkStatus {
		case models.NetworkIn, models.NetworkMedicare:
			draft.InNetworkCost = minCost(draft.InNetworkCost, *h.EstimatedCost)
		case models.NetworkOut:
			draft.OutOfNetworkCost = minCost(draft.OutOfNetworkCost, *h.EstimatedCost)
		}
	}
	if facts.Alternative != nil {
		cost := facts.Alternative.EstimatedCost
		desc := facts.Alternative.Description
		draft.AlternativeCost = &cost
		draft.AlternativeDescription = &desc
	}
}

func minCost(current *float64, candidate float64) *float64 {
	if current == nil || candidate < *current {
		return &candidate
	}
	return current
}
