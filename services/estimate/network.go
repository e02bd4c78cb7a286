// File: services/estimate/network.go
package estimate

import (
	"context"
	"fmt"
	"strings"

	ai "clearcare/services/intelligence"

	"clearcare/models"
)

var inNetworkSignals = []string{
	"in-network", "in network", "participating provider",
	"accepts " /* accepts <carrier> */, "covered by", "contracted with",
}

var outNetworkSignals = []string{
	"out-of-network", "out of network", "not in network",
	"does not accept", "doesn't accept", "non-participating",
}

type searchNetworkClassifier struct {
	search ai.WebSearch
}

// NewNetworkClassifier builds the web-search-backed status classifier.
func NewNetworkClassifier(search ai.WebSearch) NetworkClassifier {
	return &searchNetworkClassifier{search: search}
}

// Classify counts in- versus out-of-network signal phrases across search
// snippets for the hospital and plan. Ties or no signal resolve to
// unknown. Medicare-default plans never need the search: essentially all
// US hospitals accept Original Medicare.
func (c *searchNetworkClassifier) Classify(ctx context.Context, plan models.InsurancePlan, hospital models.Hospital) (models.NetworkStatus, error) {
	if plan.IsDefault {
		return models.NetworkMedicare, nil
	}

	planLabel := plan.InsuranceCompany
	if planLabel == "" {
		planLabel = plan.PlanName
	}
	query := fmt.Sprintf("%s %s in network", hospital.Name, planLabel)

	results, err := c.search.Search(ctx, query)
	if err != nil {
		return models.NetworkUnknown, &CapabilityError{Capability: "network-search", Err: err}
	}

	var inCount, outCount int
	for _, r := range results {
		text := strings.ToLower(r.Title + " " + r.Content)
		for _, sig := range outNetworkSignals {
			outCount += strings.Count(text, sig)
			// "not in network" would otherwise also count as an
			// in-network hit below.
			text = strings.ReplaceAll(text, sig, " ")
		}
		for _, sig := range inNetworkSignals {
			inCount += strings.Count(text, sig)
		}
	}

	switch {
	case inCount > outCount:
		return models.NetworkIn, nil
	case outCount > inCount:
		return models.NetworkOut, nil
	default:
		return models.NetworkUnknown, nil
	}
}
